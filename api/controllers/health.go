package controllers

import (
	"net/http"

	"github.com/facilityhub/maintenance-backend/api/responses"
	"github.com/facilityhub/maintenance-backend/pkg/db"
	pkgerrors "github.com/facilityhub/maintenance-backend/pkg/errors"
	"github.com/facilityhub/maintenance-backend/pkg/logger"
)

type healthStatus struct {
	Status string `json:"status"`
}

// HealthLive reports process liveness.
func HealthLive() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, healthStatus{Status: "ok"})
	}
}

// HealthReady reports readiness, gated on database connectivity.
func HealthReady(pinger db.Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := pinger.Ping(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unavailable"))
			return
		}
		responses.WriteSuccess(w, healthStatus{Status: "ready"})
	}
}
