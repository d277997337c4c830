package router

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/GregMSThompson/steps-backend/internal/handlers"
	"github.com/GregMSThompson/steps-backend/internal/middleware"
)

func NewRouter(deps *handlers.Deps) chi.Router {
	r := chi.NewRouter()

	lm := middleware.NewLoggerMiddleware(deps.Log)
	mm := middleware.NewMetricsMiddleware(deps.Metrics)
	am := middleware.NewMiddleware(deps.Firebase)

	r.Use(chimiddleware.RequestID)
	r.Use(lm.LoggerMiddleware)
	r.Use(mm.Instrument)

	hh := handlers.NewHealthHandlers(deps)
	sth := handlers.NewStepsHandlers(deps)
	gh := handlers.NewGoalHandlers(deps)
	seh := handlers.NewSessionHandlers(deps)

	r.Get("/healthz", hh.Health)
	r.Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))

	r.Group(func(r chi.Router) {
		r.Use(am.FirebaseAuth)
		r.Mount("/fit/session", seh.SessionRoutes())
		r.Mount("/steps", sth.StepsRoutes())
		r.Mount("/goal", gh.GoalRoutes())
	})
	return r
}
