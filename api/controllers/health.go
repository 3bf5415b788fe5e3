package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/leafline/leafline-backend/api/responses"
	"github.com/leafline/leafline-backend/pkg/config"
	"github.com/leafline/leafline-backend/pkg/db"
	pkgerrors "github.com/leafline/leafline-backend/pkg/errors"
	"github.com/leafline/leafline-backend/pkg/logger"
	"github.com/leafline/leafline-backend/pkg/redis"
)

const readinessTimeout = 2 * time.Second

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Leafline-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the database and redis before reporting ready. A nil
// pinger is treated as not wired and skipped.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Leafline-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		checks := map[string]string{}
		failed := false

		if dbP != nil {
			if err := dbP.Ping(ctx); err != nil {
				checks["db"] = "down"
				failed = true
			} else {
				checks["db"] = "up"
			}
		}
		if redisP != nil {
			if err := redisP.Ping(ctx); err != nil {
				checks["redis"] = "down"
				failed = true
			} else {
				checks["redis"] = "up"
			}
		}

		if failed {
			err := pkgerrors.New(pkgerrors.CodeDependency, "dependency unavailable").WithDetails(checks)
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payload := map[string]any{"status": "ready"}
		if len(checks) > 0 {
			payload["checks"] = checks
		}
		responses.WriteSuccess(w, payload)
	}
}
