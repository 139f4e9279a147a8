package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/ledger/internal/application/usecase/auth"
	"github.com/finance-tracker/ledger/internal/application/usecase/user"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/dto"
)

// UserController handles user management endpoints.
type UserController struct {
	getProfileUseCase    *user.GetProfileUseCase
	updateProfileUseCase *user.UpdateProfileUseCase
	deleteAccountUseCase *auth.DeleteAccountUseCase
}

// NewUserController creates a new user controller instance.
func NewUserController(
	getProfileUseCase *user.GetProfileUseCase,
	updateProfileUseCase *user.UpdateProfileUseCase,
	deleteAccountUseCase *auth.DeleteAccountUseCase,
) *UserController {
	return &UserController{
		getProfileUseCase:    getProfileUseCase,
		updateProfileUseCase: updateProfileUseCase,
		deleteAccountUseCase: deleteAccountUseCase,
	}
}

// GetProfile handles GET /users/me requests.
func (c *UserController) GetProfile(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.getProfileUseCase.Execute(ctx.Request.Context(), user.GetProfileInput{UserID: userID})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProfileResponse(output))
}

// UpdateProfile handles PATCH /users/me requests.
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", err)
		return
	}

	output, err := c.updateProfileUseCase.Execute(ctx.Request.Context(), user.UpdateProfileInput{
		UserID:        userID,
		Name:          req.Name,
		InsightDigest: req.InsightDigest,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProfileResponse(output))
}

// DeleteAccount handles DELETE /users/me requests.
// The user's ledger snapshot is removed together with the user.
func (c *UserController) DeleteAccount(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.DeleteAccountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingFields),
		})
		return
	}

	input := auth.DeleteAccountInput{
		UserID:       userID,
		Password:     req.Password,
		Confirmation: req.Confirmation,
	}

	if _, err := c.deleteAccountUseCase.Execute(ctx.Request.Context(), input); err != nil {
		respondError(ctx, err)
		return
	}

	// Return 204 No Content on successful deletion
	ctx.Status(http.StatusNoContent)
}
