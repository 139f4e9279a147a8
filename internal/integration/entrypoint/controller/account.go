package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/usecase/account"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/dto"
)

// AccountController handles account endpoints.
type AccountController struct {
	listUseCase   *account.ListAccountsUseCase
	createUseCase *account.CreateAccountUseCase
	renameUseCase *account.RenameAccountUseCase
	deleteUseCase *account.DeleteAccountUseCase
}

// NewAccountController creates a new account controller instance.
func NewAccountController(
	listUseCase *account.ListAccountsUseCase,
	createUseCase *account.CreateAccountUseCase,
	renameUseCase *account.RenameAccountUseCase,
	deleteUseCase *account.DeleteAccountUseCase,
) *AccountController {
	return &AccountController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		renameUseCase: renameUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /accounts requests.
func (c *AccountController) List(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), account.ListAccountsInput{UserID: userID})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAccountListResponse(output))
}

// Create handles POST /accounts requests.
func (c *AccountController) Create(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateAccountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", err)
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), account.CreateAccountInput{
		UserID:         userID,
		Name:           req.Name,
		InitialBalance: decimal.NewFromFloat(req.InitialBalance),
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToAccountResponse(output.Account))
}

// Rename handles PATCH /accounts/:id requests.
func (c *AccountController) Rename(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	accountID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.RenameAccountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", err)
		return
	}

	output, err := c.renameUseCase.Execute(ctx.Request.Context(), account.RenameAccountInput{
		UserID:    userID,
		AccountID: accountID,
		Name:      req.Name,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAccountResponse(output.Account))
}

// Delete handles DELETE /accounts/:id requests.
// Transactions that touched the account stay in the ledger as orphaned records.
func (c *AccountController) Delete(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	accountID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	_, err := c.deleteUseCase.Execute(ctx.Request.Context(), account.DeleteAccountInput{
		UserID:    userID,
		AccountID: accountID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
