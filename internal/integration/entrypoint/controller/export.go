package controller

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/ledger/internal/application/usecase/export"
)

// ExportController handles data export endpoints.
type ExportController struct {
	exportUseCase *export.ExportCSVUseCase
	location      *time.Location
}

// NewExportController creates a new export controller instance.
// Dates in the file are rendered in location.
func NewExportController(exportUseCase *export.ExportCSVUseCase, location *time.Location) *ExportController {
	if location == nil {
		location = time.UTC
	}
	return &ExportController{
		exportUseCase: exportUseCase,
		location:      location,
	}
}

// CSV handles GET /export/csv requests.
func (c *ExportController) CSV(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	start, end, err := queryDateRange(ctx)
	if err != nil {
		badRequest(ctx, "Invalid date filter", err)
		return
	}

	output, err := c.exportUseCase.Execute(ctx.Request.Context(), export.ExportCSVInput{
		UserID:    userID,
		StartDate: start,
		EndDate:   end,
		Location:  c.location,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", output.Filename))
	ctx.Header("X-Export-Rows", fmt.Sprintf("%d", output.Rows))
	ctx.Data(http.StatusOK, "text/csv; charset=utf-8", output.Content)
}
