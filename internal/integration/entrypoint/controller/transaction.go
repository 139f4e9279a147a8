package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/usecase/transaction"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/dto"
)

// TransactionController handles transaction endpoints.
type TransactionController struct {
	listUseCase     *transaction.ListTransactionsUseCase
	flowUseCase     *transaction.RecordFlowUseCase
	transferUseCase *transaction.RecordTransferUseCase
	editUseCase     *transaction.EditTransactionUseCase
	deleteUseCase   *transaction.DeleteTransactionUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	listUseCase *transaction.ListTransactionsUseCase,
	flowUseCase *transaction.RecordFlowUseCase,
	transferUseCase *transaction.RecordTransferUseCase,
	editUseCase *transaction.EditTransactionUseCase,
	deleteUseCase *transaction.DeleteTransactionUseCase,
) *TransactionController {
	return &TransactionController{
		listUseCase:     listUseCase,
		flowUseCase:     flowUseCase,
		transferUseCase: transferUseCase,
		editUseCase:     editUseCase,
		deleteUseCase:   deleteUseCase,
	}
}

// List handles GET /transactions requests.
func (c *TransactionController) List(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	input := transaction.ListTransactionsInput{
		UserID: userID,
		Search: ctx.Query("search"),
	}

	start, end, err := queryDateRange(ctx)
	if err != nil {
		badRequest(ctx, "Invalid date filter", err)
		return
	}
	input.StartDate, input.EndDate = start, end

	if v := ctx.Query("account_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			badRequest(ctx, "Invalid account_id", err)
			return
		}
		input.AccountID = &id
	}
	if v := ctx.Query("category_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			badRequest(ctx, "Invalid category_id", err)
			return
		}
		input.CategoryID = &id
	}
	if v := ctx.Query("type"); v != "" {
		kind := entity.TransactionKind(v)
		if !kind.IsValid() {
			badRequest(ctx, "Invalid type", nil)
			return
		}
		input.Type = &kind
	}

	// Pagination falls back to defaults on unparsable values.
	if page, err := strconv.Atoi(ctx.Query("page")); err == nil {
		input.Page = page
	}
	if limit, err := strconv.Atoi(ctx.Query("limit")); err == nil {
		input.Limit = limit
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(output))
}

// RecordFlow handles POST /transactions/flows requests.
func (c *TransactionController) RecordFlow(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.RecordFlowRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", err)
		return
	}

	accountID, err := uuid.Parse(req.AccountID)
	if err != nil {
		badRequest(ctx, "Invalid account_id", err)
		return
	}
	categoryID, err := parseOptionalID(req.CategoryID)
	if err != nil {
		badRequest(ctx, "Invalid category_id", err)
		return
	}
	date, err := parseOptionalDate(req.Date)
	if err != nil {
		badRequest(ctx, "Invalid date", err)
		return
	}

	output, err := c.flowUseCase.Execute(ctx.Request.Context(), transaction.RecordFlowInput{
		UserID:     userID,
		Type:       entity.TransactionKind(req.Type),
		Amount:     decimal.NewFromFloat(req.Amount),
		AccountID:  accountID,
		Remarks:    req.Remarks,
		CategoryID: categoryID,
		Date:       date,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToTransactionResponse(output.Transaction))
}

// RecordTransfer handles POST /transactions/transfers requests.
func (c *TransactionController) RecordTransfer(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.RecordTransferRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", err)
		return
	}

	fromID, err := uuid.Parse(req.FromAccountID)
	if err != nil {
		badRequest(ctx, "Invalid from_account_id", err)
		return
	}
	toID, err := uuid.Parse(req.ToAccountID)
	if err != nil {
		badRequest(ctx, "Invalid to_account_id", err)
		return
	}
	date, err := parseOptionalDate(req.Date)
	if err != nil {
		badRequest(ctx, "Invalid date", err)
		return
	}

	output, err := c.transferUseCase.Execute(ctx.Request.Context(), transaction.RecordTransferInput{
		UserID:        userID,
		Amount:        decimal.NewFromFloat(req.Amount),
		FromAccountID: fromID,
		ToAccountID:   toID,
		Remarks:       req.Remarks,
		Date:          date,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToTransactionResponse(output.Transaction))
}

// Edit handles PATCH /transactions/:id requests.
func (c *TransactionController) Edit(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	transactionID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.EditTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", err)
		return
	}

	input := transaction.EditTransactionInput{
		UserID:        userID,
		TransactionID: transactionID,
		Remarks:       req.Remarks,
		ClearCategory: req.ClearCategory,
	}
	if req.Amount != nil {
		amount := decimal.NewFromFloat(*req.Amount)
		input.Amount = &amount
	}

	var err error
	if input.Date, err = parseOptionalDate(req.Date); err != nil {
		badRequest(ctx, "Invalid date", err)
		return
	}
	if input.AccountID, err = parseOptionalID(req.AccountID); err != nil {
		badRequest(ctx, "Invalid account_id", err)
		return
	}
	if input.CategoryID, err = parseOptionalID(req.CategoryID); err != nil {
		badRequest(ctx, "Invalid category_id", err)
		return
	}

	output, err := c.editUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(output.Transaction))
}

// Delete handles DELETE /transactions/:id requests.
func (c *TransactionController) Delete(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	transactionID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	_, err := c.deleteUseCase.Execute(ctx.Request.Context(), transaction.DeleteTransactionInput{
		UserID:        userID,
		TransactionID: transactionID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
