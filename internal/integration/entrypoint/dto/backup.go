package dto

import (
	"time"

	"github.com/finance-tracker/ledger/internal/application/usecase/backup"
)

// RestoreBackupRequest represents the request body for restoring a backup.
type RestoreBackupRequest struct {
	Key string `json:"key" binding:"required"`
}

// BackupResponse represents a stored backup.
type BackupResponse struct {
	Key       string    `json:"key"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

// BackupListResponse represents the response for listing backups.
type BackupListResponse struct {
	Backups []BackupResponse `json:"backups"`
}

// RestoreBackupResponse represents the result of a restore.
type RestoreBackupResponse struct {
	Accounts     int  `json:"accounts"`
	Transactions int  `json:"transactions"`
	Consistent   bool `json:"consistent"`
}

// ToBackupResponse converts a backup output to a BackupResponse DTO.
func ToBackupResponse(b *backup.BackupOutput) BackupResponse {
	return BackupResponse{
		Key:       b.Key,
		Size:      b.Size,
		CreatedAt: b.CreatedAt,
	}
}
