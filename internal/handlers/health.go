package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/GregMSThompson/steps-backend/internal/errs"
	"github.com/GregMSThompson/steps-backend/internal/response"
)

// HealthChecker is a named dependency probe, e.g. a Redis PING.
type HealthChecker struct {
	Name  string
	Check func(ctx context.Context) error
}

type healthHandlers struct {
	ResponseHandler response.ResponseHandler
	Checkers        []HealthChecker
}

func NewHealthHandlers(deps *Deps) *healthHandlers {
	return &healthHandlers{
		ResponseHandler: deps.ResponseHandler,
		Checkers:        deps.HealthCheckers,
	}
}

func (h *healthHandlers) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	for _, c := range h.Checkers {
		if err := c.Check(ctx); err != nil {
			h.ResponseHandler.HandleError(w, r, errs.NewExternalServiceError(c.Name, "health check failed", true, err))
			return
		}
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
