package handlers

import (
	"log/slog"

	"firebase.google.com/go/v4/auth"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/GregMSThompson/steps-backend/internal/metrics"
	"github.com/GregMSThompson/steps-backend/internal/response"
)

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	Firebase        *auth.Client
	Metrics         *metrics.Manager
	Registry        prometheus.Gatherer
	StepsSvc        stepsService
	GoalSvc         goalService
	SessionSvc      sessionService
	HealthCheckers  []HealthChecker
}
