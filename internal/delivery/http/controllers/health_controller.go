package controllers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"meetupservice/internal/delivery/http/helpers"
	"meetupservice/internal/domain"
)

const healthTimeout = 2 * time.Second

// HealthStatus is the data of a healthy /healthz response.
type HealthStatus struct {
	Status string `json:"status"`
}

type HealthController struct {
	Logger  *slog.Logger
	Checker domain.HealthChecker
}

func NewHealthController(logger *slog.Logger, checker domain.HealthChecker) *HealthController {
	return &HealthController{Logger: logger, Checker: checker}
}

// Healthz godoc
// @Summary Store connectivity
// @Tags health
// @Produce json
// @Success 200 {object} helpers.APIResponse "data.status: ok"
// @Failure 503 {object} helpers.APIResponse "error.code: unavailable"
// @Router /healthz [get]
func (c *HealthController) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if c.Checker != nil {
		if err := c.Checker.Ping(ctx); err != nil {
			c.Logger.WarnContext(ctx, "health check failed", "err", err)
			helpers.WriteJSONError(w, http.StatusServiceUnavailable, helpers.ErrCodeUnavailable, "store unreachable")
			return
		}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, HealthStatus{Status: "ok"})
}
