package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const probeTimeout = 2 * time.Second

// HealthProbe checks one backing service. Name becomes the response field.
type HealthProbe struct {
	Name  string
	Check func(ctx context.Context) error
}

// HealthController serves GET /health. The API answers "ok" with 200 while
// every probe passes and "degraded" with 503 otherwise.
type HealthController struct {
	probes []HealthProbe
	now    func() time.Time
}

// NewHealthController creates a health controller that runs the given probes.
func NewHealthController(probes ...HealthProbe) *HealthController {
	return &HealthController{probes: probes, now: time.Now}
}

// Check handles GET /health.
func (h *HealthController) Check(c *gin.Context) {
	body := gin.H{"status": "ok"}
	status := http.StatusOK

	for _, p := range h.probes {
		ctx, cancel := context.WithTimeout(c.Request.Context(), probeTimeout)
		err := p.Check(ctx)
		cancel()

		if err != nil {
			body[p.Name] = "disconnected"
			body["status"] = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		body[p.Name] = "connected"
	}
	body["timestamp"] = h.now().UTC().Format(time.RFC3339)

	c.JSON(status, body)
}
