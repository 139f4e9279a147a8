package user

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

type fakeUserRepository struct {
	adapter.UserRepository
	users   map[uuid.UUID]*entity.User
	updates int
}

func (r *fakeUserRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domainerror.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *fakeUserRepository) Update(_ context.Context, u *entity.User) error {
	r.updates++
	r.users[u.ID] = u
	return nil
}

func newRepo() (*fakeUserRepository, *entity.User) {
	u := &entity.User{ID: uuid.New(), Email: "ana@example.com", Name: "Ana"}
	return &fakeUserRepository{users: map[uuid.UUID]*entity.User{u.ID: u}}, u
}

func TestUpdateProfile(t *testing.T) {
	repo, u := newRepo()
	name := "  Ana Maria "
	digest := true

	out, err := NewUpdateProfileUseCase(repo).Execute(context.Background(), UpdateProfileInput{
		UserID:        u.ID,
		Name:          &name,
		InsightDigest: &digest,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", out.Name)
	assert.True(t, out.InsightDigest)
	assert.Equal(t, 1, repo.updates)

	got, err := NewGetProfileUseCase(repo).Execute(context.Background(), GetProfileInput{UserID: u.ID})
	require.NoError(t, err)
	assert.Equal(t, out, got)
}

func TestUpdateProfile_Rejections(t *testing.T) {
	repo, u := newRepo()
	blank := "   "

	_, err := NewUpdateProfileUseCase(repo).Execute(context.Background(), UpdateProfileInput{UserID: u.ID, Name: &blank})
	var authErr *domainerror.AuthError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, domainerror.ErrCodeMissingFields, authErr.Code)
	assert.Equal(t, 0, repo.updates)

	_, err = NewGetProfileUseCase(repo).Execute(context.Background(), GetProfileInput{UserID: uuid.New()})
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, domainerror.ErrCodeUserNotFound, authErr.Code)
}
