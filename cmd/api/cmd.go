package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	_ "time/tzdata"

	"github.com/GregMSThompson/steps-backend/internal/bootstrap"
	fitnessclient "github.com/GregMSThompson/steps-backend/internal/client/fitness"
	"github.com/GregMSThompson/steps-backend/internal/config"
	"github.com/GregMSThompson/steps-backend/internal/crypto"
	"github.com/GregMSThompson/steps-backend/internal/handlers"
	"github.com/GregMSThompson/steps-backend/internal/response"
	"github.com/GregMSThompson/steps-backend/internal/router"
	"github.com/GregMSThompson/steps-backend/internal/services"
	"github.com/GregMSThompson/steps-backend/internal/store"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	// bootstrap
	cfg := config.New()
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	// helpers
	sealer := crypto.New(bs.KMS, cfg.KMSKeyName)
	fitAdapter := fitnessclient.NewAdapter(cfg.FitnessEndpoint, cfg.Location)

	// stores
	gstore := store.NewGoalStore(bs.Firestore)
	var sstore store.SessionStore = store.NewMemorySessionStore(cfg.MemoryCacheBytes)
	var checkers []handlers.HealthChecker
	if bs.Redis != nil {
		sstore = store.NewRedisSessionStore(bs.Redis)
		checkers = append(checkers, handlers.HealthChecker{
			Name:  "redis",
			Check: func(ctx context.Context) error { return bs.Redis.Ping(ctx).Err() },
		})
	}

	// services
	tserv := services.NewTokenService(sstore, sealer, cfg.TokenTTL)
	gserv := services.NewGoalService(gstore, cfg.DefaultDailyGoal)
	stserv := services.NewStepsService(fitAdapter, tserv, gserv, bs.Metrics, cfg.Location)

	// response handler
	rh := response.New(bs.Log)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.Firebase = bs.Firebase
	deps.Metrics = bs.Metrics
	deps.Registry = bs.Registry
	deps.StepsSvc = stserv
	deps.GoalSvc = gserv
	deps.SessionSvc = tserv
	deps.HealthCheckers = checkers

	// router
	r := router.NewRouter(deps)
	bs.Log.Info("listening", "port", cfg.Port)
	err = http.ListenAndServe(":"+cfg.Port, r)
	exitOnError("server start failed", err, bs.Log)
}
