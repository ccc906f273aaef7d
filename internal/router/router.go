package router

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/patasfelizes/clinic-api/internal/handler/appointment"
	"github.com/patasfelizes/clinic-api/internal/handler/audit"
	"github.com/patasfelizes/clinic-api/internal/handler/auth"
	"github.com/patasfelizes/clinic-api/internal/handler/dashboard"
	"github.com/patasfelizes/clinic-api/internal/handler/health"
	"github.com/patasfelizes/clinic-api/internal/handler/inventory"
	"github.com/patasfelizes/clinic-api/internal/handler/medical"
	"github.com/patasfelizes/clinic-api/internal/handler/notification"
	"github.com/patasfelizes/clinic-api/internal/handler/patient"
	"github.com/patasfelizes/clinic-api/internal/handler/sale"
	"github.com/patasfelizes/clinic-api/internal/handler/tutor"
	"github.com/patasfelizes/clinic-api/internal/middleware"
	"github.com/patasfelizes/clinic-api/internal/model"
	"github.com/patasfelizes/clinic-api/pkg/metrics"
)

type Handlers struct {
	Health       *health.Handler
	Auth         *auth.Handler
	Tutor        *tutor.Handler
	Patient      *patient.Handler
	Appointment  *appointment.Handler
	Medical      *medical.Handler
	Inventory    *inventory.Handler
	Sale         *sale.Handler
	Notification *notification.Handler
	Dashboard    *dashboard.Handler
	Audit        *audit.Handler
}

type Config struct {
	RateLimit  rate.Limit
	RateBurst  int
	CORSConfig middleware.CORSConfig
	Timeout    time.Duration
}

type Router struct {
	engine   *gin.Engine
	auth     *middleware.AuthMiddleware
	handlers Handlers
	metrics  *metrics.Metrics
}

func NewRouter(authMw *middleware.AuthMiddleware, handlers Handlers, m *metrics.Metrics, config Config) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	r := &Router{
		engine:   engine,
		auth:     authMw,
		handlers: handlers,
		metrics:  m,
	}

	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}

	engine.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.ErrorHandler(),
		r.metricsMiddleware(),
		middleware.SecurityHeaders(middleware.DefaultSecurityConfig()),
		middleware.Timeout(config.Timeout),
		middleware.CORS(config.CORSConfig),
	)

	if config.RateLimit > 0 {
		engine.Use(middleware.RateLimit(config.RateLimit, config.RateBurst))
	}

	return r
}

// Setup mounts every route group. Visibility follows the sidebar
// matrix: clinical roles see patients and appointments, only
// veterinarians and admins read medical records, inventory belongs to
// admin and stockkeeper, sales and the audit trail to admin alone.
func (r *Router) Setup() {
	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.engine.Group("/api/v1")

	r.handlers.Health.RegisterRoutes(api)
	r.handlers.Auth.RegisterRoutes(api)

	protected := api.Group("")
	protected.Use(r.auth.Authenticate())

	r.handlers.Auth.RegisterProtectedRoutes(protected)
	r.handlers.Dashboard.RegisterRoutes(protected)
	r.handlers.Notification.RegisterRoutes(protected)

	clinical := protected.Group("")
	clinical.Use(r.auth.RequireRole(model.RoleReceptionist, model.RoleVeterinarian, model.RoleAdmin))
	r.handlers.Tutor.RegisterRoutes(clinical)
	r.handlers.Patient.RegisterRoutes(clinical)
	r.handlers.Appointment.RegisterRoutes(clinical)

	records := protected.Group("")
	records.Use(r.auth.RequireRole(model.RoleVeterinarian, model.RoleAdmin))
	r.handlers.Medical.RegisterRoutes(records)
	r.handlers.Patient.RegisterRecordRoutes(records)

	stock := protected.Group("")
	stock.Use(r.auth.RequireRole(model.RoleAdmin, model.RoleStockkeeper))
	r.handlers.Inventory.RegisterRoutes(stock)

	admin := protected.Group("")
	admin.Use(r.auth.RequireRole(model.RoleAdmin))
	r.handlers.Sale.RegisterRoutes(admin)
	r.handlers.Audit.RegisterRoutes(admin)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		r.metrics.RequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		r.metrics.RequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
		if c.Writer.Status() >= 400 {
			r.metrics.ErrorsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		}
	}
}
