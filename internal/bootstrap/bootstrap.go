package bootstrap

import (
	"context"
	"log/slog"

	"cloud.google.com/go/firestore"
	kms "cloud.google.com/go/kms/apiv1"
	"firebase.google.com/go/v4/auth"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/GregMSThompson/steps-backend/internal/config"
	"github.com/GregMSThompson/steps-backend/internal/metrics"
	"github.com/GregMSThompson/steps-backend/pkg/logger"
)

type Bootstrap struct {
	Log       *slog.Logger
	Firestore *firestore.Client
	Firebase  *auth.Client
	KMS       *kms.KeyManagementClient
	Redis     *redis.Client
	Registry  *prometheus.Registry
	Metrics   *metrics.Manager
}

func Run(cfg *config.Config) (*Bootstrap, error) {
	var err error
	applicationCtx := context.Background()
	bs := new(Bootstrap)

	bs.Log = logger.New(cfg.LogLevel, logger.NewCloudRunHandler)
	bs.Registry = metrics.SetupPrometheus()
	bs.Metrics = metrics.NewManager("steps", "api", bs.Registry)

	bs.Firestore, err = InitFirestore(applicationCtx, cfg.ProjectID)
	if err != nil {
		return bs, err
	}
	bs.Firebase, err = InitFirebase(applicationCtx)
	if err != nil {
		return bs, err
	}

	// without a key the tokens are kept unsealed (local development)
	if cfg.KMSKeyName != "" {
		bs.KMS, err = InitKMS(applicationCtx)
		if err != nil {
			return bs, err
		}
	}

	if cfg.SessionBackend == config.SessionRedis {
		var password string
		if cfg.RedisPasswordSecret != "" {
			password, err = ReadSecret(applicationCtx, cfg.ProjectID, cfg.RedisPasswordSecret)
			if err != nil {
				return bs, err
			}
		}
		bs.Redis, err = InitRedis(applicationCtx, cfg.RedisAddr, password, cfg.RedisDB)
		if err != nil {
			return bs, err
		}
	}

	bs.Log.Info("bootstrap complete",
		"project", cfg.ProjectID,
		"session_backend", cfg.SessionBackend,
		"timezone", cfg.Location.String(),
		"kms", bs.KMS != nil)
	return bs, nil
}

func (bs *Bootstrap) Close() {
	if bs.Firestore != nil {
		bs.Firestore.Close()
	}
	if bs.KMS != nil {
		bs.KMS.Close()
	}
	if bs.Redis != nil {
		bs.Redis.Close()
	}
}
