package controllers

import (
	"net/http"
	"time"

	"github.com/facilityhub/maintenance-backend/api/responses"
	"github.com/facilityhub/maintenance-backend/api/validators"
	"github.com/facilityhub/maintenance-backend/internal/dashboard"
	"github.com/facilityhub/maintenance-backend/pkg/logger"
)

// DashboardStats serves the open and high-priority counters.
func DashboardStats(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := svc.Stats(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stats)
	}
}

// DashboardFlow serves the 30-day created/completed series. The window
// ends at the optional reference query date, defaulting to today.
func DashboardFlow(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reference, err := validators.ParseQueryDate(r, "reference", time.Now())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		buckets, err := svc.Flow(r.Context(), reference)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, buckets)
	}
}
