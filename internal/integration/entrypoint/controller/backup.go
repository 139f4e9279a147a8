package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/ledger/internal/application/usecase/backup"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/dto"
)

// BackupController handles ledger backup endpoints.
type BackupController struct {
	createUseCase  *backup.CreateBackupUseCase
	listUseCase    *backup.ListBackupsUseCase
	restoreUseCase *backup.RestoreBackupUseCase
}

// NewBackupController creates a new backup controller instance.
func NewBackupController(
	createUseCase *backup.CreateBackupUseCase,
	listUseCase *backup.ListBackupsUseCase,
	restoreUseCase *backup.RestoreBackupUseCase,
) *BackupController {
	return &BackupController{
		createUseCase:  createUseCase,
		listUseCase:    listUseCase,
		restoreUseCase: restoreUseCase,
	}
}

// Create handles POST /backups requests.
func (c *BackupController) Create(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), backup.CreateBackupInput{UserID: userID})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToBackupResponse(output))
}

// List handles GET /backups requests.
func (c *BackupController) List(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), backup.ListBackupsInput{UserID: userID})
	if err != nil {
		respondError(ctx, err)
		return
	}

	backups := make([]dto.BackupResponse, 0, len(output.Backups))
	for _, b := range output.Backups {
		backups = append(backups, dto.ToBackupResponse(b))
	}
	ctx.JSON(http.StatusOK, dto.BackupListResponse{Backups: backups})
}

// Restore handles POST /backups/restore requests.
// The current ledger is replaced wholesale by the backup contents.
func (c *BackupController) Restore(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.RestoreBackupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", err)
		return
	}

	output, err := c.restoreUseCase.Execute(ctx.Request.Context(), backup.RestoreBackupInput{
		UserID: userID,
		Key:    req.Key,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.RestoreBackupResponse{
		Accounts:     output.Accounts,
		Transactions: output.Transactions,
		Consistent:   output.Consistent,
	})
}
