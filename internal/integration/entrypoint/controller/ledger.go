package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/ledger/internal/application/usecase/settings"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/dto"
)

// LedgerController handles ledger-wide settings endpoints.
type LedgerController struct {
	overviewUseCase    *settings.GetOverviewUseCase
	setCurrencyUseCase *settings.SetCurrencyUseCase
	resetUseCase       *settings.ResetLedgerUseCase
	verifyUseCase      *settings.VerifyLedgerUseCase
}

// NewLedgerController creates a new ledger controller instance.
func NewLedgerController(
	overviewUseCase *settings.GetOverviewUseCase,
	setCurrencyUseCase *settings.SetCurrencyUseCase,
	resetUseCase *settings.ResetLedgerUseCase,
	verifyUseCase *settings.VerifyLedgerUseCase,
) *LedgerController {
	return &LedgerController{
		overviewUseCase:    overviewUseCase,
		setCurrencyUseCase: setCurrencyUseCase,
		resetUseCase:       resetUseCase,
		verifyUseCase:      verifyUseCase,
	}
}

// Overview handles GET /ledger requests.
func (c *LedgerController) Overview(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.overviewUseCase.Execute(ctx.Request.Context(), settings.GetOverviewInput{UserID: userID})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToLedgerResponse(output))
}

// SetCurrency handles PUT /ledger/currency requests.
func (c *LedgerController) SetCurrency(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.SetCurrencyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", err)
		return
	}

	output, err := c.setCurrencyUseCase.Execute(ctx.Request.Context(), settings.SetCurrencyInput{
		UserID:   userID,
		Currency: req.Currency,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.CurrencyResponse{Currency: output.Currency})
}

// Reset handles DELETE /ledger requests.
func (c *LedgerController) Reset(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.ResetLedgerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", err)
		return
	}

	err := c.resetUseCase.Execute(ctx.Request.Context(), settings.ResetLedgerInput{
		UserID:       userID,
		Confirmation: req.Confirmation,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Verify handles GET /ledger/verify requests.
func (c *LedgerController) Verify(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.verifyUseCase.Execute(ctx.Request.Context(), settings.VerifyLedgerInput{UserID: userID})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToVerifyResponse(output))
}
