package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/ledger/internal/application/usecase/insight"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/dto"
)

// InsightController handles AI insight endpoints.
type InsightController struct {
	generateUseCase *insight.GenerateInsightsUseCase
	emailUseCase    *insight.EmailInsightsUseCase
}

// NewInsightController creates a new insight controller instance.
// emailUseCase may be nil when no email provider is configured.
func NewInsightController(
	generateUseCase *insight.GenerateInsightsUseCase,
	emailUseCase *insight.EmailInsightsUseCase,
) *InsightController {
	return &InsightController{
		generateUseCase: generateUseCase,
		emailUseCase:    emailUseCase,
	}
}

// Generate handles POST /insights requests.
func (c *InsightController) Generate(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	start, end, ok := bindInsightPeriod(ctx)
	if !ok {
		return
	}

	output, err := c.generateUseCase.Execute(ctx.Request.Context(), insight.GenerateInsightsInput{
		UserID:    userID,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.InsightsResponse{
		Insights:         output.Insights,
		Currency:         output.Currency,
		TotalBalance:     output.TotalBalance,
		TransactionCount: output.TransactionCount,
		GeneratedAt:      output.GeneratedAt,
	})
}

// Email handles POST /insights/email requests.
func (c *InsightController) Email(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	if c.emailUseCase == nil {
		respondError(ctx, domainerror.NewEmailError(
			domainerror.ErrCodeEmailNotConfigured,
			"email delivery is not configured",
			domainerror.ErrEmailNotConfigured,
		))
		return
	}

	start, end, ok := bindInsightPeriod(ctx)
	if !ok {
		return
	}

	output, err := c.emailUseCase.Execute(ctx.Request.Context(), insight.EmailInsightsInput{
		UserID:    userID,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusAccepted, dto.InsightEmailResponse{
		SentTo:           output.To,
		MessageID:        output.MessageID,
		TransactionCount: output.TransactionCount,
	})
}

// bindInsightPeriod reads the optional body; an empty body means the whole ledger.
func bindInsightPeriod(ctx *gin.Context) (start, end *time.Time, ok bool) {
	var req dto.InsightsRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			badRequest(ctx, "Invalid request body", err)
			return nil, nil, false
		}
	}

	start, err := parseOptionalDate(req.StartDate)
	if err != nil {
		badRequest(ctx, "Invalid start_date", err)
		return nil, nil, false
	}
	end, err = parseOptionalDate(req.EndDate)
	if err != nil {
		badRequest(ctx, "Invalid end_date", err)
		return nil, nil, false
	}
	if end != nil {
		e := endOfDay(*end)
		end = &e
	}
	return start, end, true
}
