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

type goalService interface {
	GetGoal(ctx context.Context, uid string) (*models.StepGoal, error)
	SaveGoal(ctx context.Context, uid, input string) (*models.StepGoal, error)
	CheckInput(input string) dto.GoalInputCheck
}

type goalHandlers struct {
	ResponseHandler response.ResponseHandler
	GoalSvc         goalService
}

func NewGoalHandlers(deps *Deps) *goalHandlers {
	return &goalHandlers{
		ResponseHandler: deps.ResponseHandler,
		GoalSvc:         deps.GoalSvc,
	}
}

func (h *goalHandlers) GoalRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.GetGoal)
	r.Put("/", h.SaveGoal)
	r.Post("/validate", h.ValidateGoal)
	return r
}

func (h *goalHandlers) GetGoal(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	goal, err := h.GoalSvc.GetGoal(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, goal)
}

func (h *goalHandlers) SaveGoal(w http.ResponseWriter, r *http.Request) {
	var req dto.SaveGoalRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	uid := middleware.UID(r.Context())
	goal, err := h.GoalSvc.SaveGoal(r.Context(), uid, req.DailyStepGoal)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, goal)
}

// ValidateGoal lets the goal dialog enable or disable its save button.
func (h *goalHandlers) ValidateGoal(w http.ResponseWriter, r *http.Request) {
	var req dto.SaveGoalRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, h.GoalSvc.CheckInput(req.DailyStepGoal))
}
