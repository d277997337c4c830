package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/steps-backend/internal/dto"
	"github.com/GregMSThompson/steps-backend/internal/middleware"
	"github.com/GregMSThompson/steps-backend/internal/models"
	"github.com/GregMSThompson/steps-backend/internal/response"
)

type stepsService interface {
	GetToday(ctx context.Context, uid, sessionID string) (dto.TodayProgress, error)
	FetchMonth(ctx context.Context, uid, sessionID string) ([]models.DailySteps, error)
	GetCumulative(ctx context.Context, uid, sessionID string) (dto.CumulativeProgress, error)
	GetSummary(ctx context.Context, uid, sessionID string) (dto.MonthlySummary, error)
}

type stepsHandlers struct {
	ResponseHandler response.ResponseHandler
	StepsSvc        stepsService
}

func NewStepsHandlers(deps *Deps) *stepsHandlers {
	return &stepsHandlers{
		ResponseHandler: deps.ResponseHandler,
		StepsSvc:        deps.StepsSvc,
	}
}

func (h *stepsHandlers) StepsRoutes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.FitSession)
	r.Get("/today", h.GetToday)
	r.Get("/month", h.GetMonth)
	r.Get("/cumulative", h.GetCumulative)
	r.Get("/summary", h.GetSummary)
	return r
}

func (h *stepsHandlers) GetToday(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	today, err := h.StepsSvc.GetToday(ctx, middleware.UID(ctx), middleware.FitSessionID(ctx))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, today)
}

func (h *stepsHandlers) GetMonth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	days, err := h.StepsSvc.FetchMonth(ctx, middleware.UID(ctx), middleware.FitSessionID(ctx))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, days)
}

func (h *stepsHandlers) GetCumulative(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	progress, err := h.StepsSvc.GetCumulative(ctx, middleware.UID(ctx), middleware.FitSessionID(ctx))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, progress)
}

func (h *stepsHandlers) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	summary, err := h.StepsSvc.GetSummary(ctx, middleware.UID(ctx), middleware.FitSessionID(ctx))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, summary)
}
