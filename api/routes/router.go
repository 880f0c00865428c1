package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/facilityhub/maintenance-backend/api/controllers"
	"github.com/facilityhub/maintenance-backend/api/middleware"
	"github.com/facilityhub/maintenance-backend/internal/dashboard"
	"github.com/facilityhub/maintenance-backend/internal/maintenance"
	"github.com/facilityhub/maintenance-backend/pkg/config"
	"github.com/facilityhub/maintenance-backend/pkg/db"
	"github.com/facilityhub/maintenance-backend/pkg/logger"
	"github.com/facilityhub/maintenance-backend/pkg/metrics"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	httpMetrics *metrics.HTTPMetrics,
	metricsHandler http.Handler,
	maintenanceService maintenance.Service,
	dashboardService dashboard.Service,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, httpMetrics),
		middleware.CORS(cfg.HTTP.CORSOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive())
		r.Get("/ready", controllers.HealthReady(dbP, logg))
	})

	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	r.Method(http.MethodGet, "/metrics", metricsHandler)

	r.Route("/maintenance", func(r chi.Router) {
		r.Get("/", controllers.MaintenanceList(maintenanceService, logg))
		r.Post("/", controllers.MaintenanceCreate(maintenanceService, logg))
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", controllers.MaintenanceGet(maintenanceService, logg))
			r.Put("/", controllers.MaintenanceUpdate(maintenanceService, logg))
			r.Delete("/", controllers.MaintenanceDelete(maintenanceService, logg))
		})
	})

	r.Route("/dashboard", func(r chi.Router) {
		r.Get("/stats", controllers.DashboardStats(dashboardService, logg))
		r.Get("/flow", controllers.DashboardFlow(dashboardService, logg))
	})

	return r
}
