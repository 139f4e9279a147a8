// Package storage implements object storage integrations.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/config"
	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

const (
	backupPrefix    = "backups/"
	backupTimestamp = "20060102T150405.000Z"
)

// objectAPI is the subset of the S3 client the backup store uses.
type objectAPI interface {
	manager.UploadAPIClient
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	CreateBucket(ctx context.Context, params *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
}

// S3BackupStore implements adapter.BackupStore on an S3-compatible bucket (AWS or MinIO).
// Objects are JSON snapshots under backups/<owner>/<timestamp>.json.
type S3BackupStore struct {
	client   objectAPI
	uploader *manager.Uploader
	bucket   string
	now      func() time.Time
}

// NewS3BackupStore creates a backup store from configuration.
func NewS3BackupStore(ctx context.Context, cfg config.S3Config) (*S3BackupStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load s3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})
	return newS3BackupStore(client, cfg.Bucket), nil
}

func newS3BackupStore(client objectAPI, bucket string) *S3BackupStore {
	return &S3BackupStore{
		client:   client,
		uploader: manager.NewUploader(client),
		bucket:   bucket,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// EnsureBucket creates the bucket when it does not exist yet.
func (s *S3BackupStore) EnsureBucket(ctx context.Context) error {
	if _, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)}); err == nil {
		return nil
	}
	if _, err := s.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(s.bucket)}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
	}
	slog.Info("Backup bucket created", "bucket", s.bucket)
	return nil
}

func ownerPrefix(ownerID uuid.UUID) string {
	return backupPrefix + ownerID.String() + "/"
}

// Put uploads the snapshot as a new backup object.
func (s *S3BackupStore) Put(ctx context.Context, ownerID uuid.UUID, snapshot *entity.Snapshot) (*entity.Backup, error) {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}

	createdAt := s.now()
	key := ownerPrefix(ownerID) + createdAt.Format(backupTimestamp) + ".json"
	_, err = s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(payload),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload backup: %w", err)
	}

	return &entity.Backup{
		Key:       key,
		Size:      int64(len(payload)),
		CreatedAt: createdAt,
	}, nil
}

// List returns the owner's backups, newest first.
func (s *S3BackupStore) List(ctx context.Context, ownerID uuid.UUID) ([]*entity.Backup, error) {
	var backups []*entity.Backup
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(ownerPrefix(ownerID)),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list backups: %w", err)
		}
		for _, obj := range page.Contents {
			backups = append(backups, &entity.Backup{
				Key:       aws.ToString(obj.Key),
				Size:      aws.ToInt64(obj.Size),
				CreatedAt: aws.ToTime(obj.LastModified),
			})
		}
	}

	sort.SliceStable(backups, func(i, j int) bool {
		return backups[i].Key > backups[j].Key
	})
	return backups, nil
}

// Get downloads and decodes a backup. Keys outside the owner's prefix are not found.
func (s *S3BackupStore) Get(ctx context.Context, ownerID uuid.UUID, key string) (*entity.Snapshot, error) {
	if !strings.HasPrefix(key, ownerPrefix(ownerID)) || strings.Contains(key, "..") {
		return nil, domainerror.ErrBackupNotFound
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, domainerror.ErrBackupNotFound
		}
		return nil, fmt.Errorf("failed to download backup: %w", err)
	}
	defer out.Body.Close()

	payload, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup: %w", err)
	}
	var snapshot entity.Snapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode backup: %w", err)
	}
	return &snapshot, nil
}

// Ensure S3BackupStore implements BackupStore.
var _ adapter.BackupStore = (*S3BackupStore)(nil)
