package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/steps-backend/internal/dto"
	"github.com/GregMSThompson/steps-backend/internal/middleware"
	"github.com/GregMSThompson/steps-backend/internal/response"
)

type sessionService interface {
	StartSession(ctx context.Context, uid string, req dto.FitSessionRequest) (dto.FitSession, error)
	EndSession(ctx context.Context, uid, sessionID string) error
}

type sessionHandlers struct {
	ResponseHandler response.ResponseHandler
	SessionSvc      sessionService
}

func NewSessionHandlers(deps *Deps) *sessionHandlers {
	return &sessionHandlers{
		ResponseHandler: deps.ResponseHandler,
		SessionSvc:      deps.SessionSvc,
	}
}

func (h *sessionHandlers) SessionRoutes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.FitSession)
	r.Post("/", h.StartSession)
	r.Delete("/", h.EndSession)
	return r
}

// StartSession stores the Google access token obtained at sign-in.
func (h *sessionHandlers) StartSession(w http.ResponseWriter, r *http.Request) {
	var req dto.FitSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	uid := middleware.UID(r.Context())
	sess, err := h.SessionSvc.StartSession(r.Context(), uid, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, sess)
}

func (h *sessionHandlers) EndSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.SessionSvc.EndSession(ctx, middleware.UID(ctx), middleware.FitSessionID(ctx)); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}
