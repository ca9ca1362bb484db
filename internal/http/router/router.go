package router

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/rogerio-castellano/appointment-tracker/api/docs"
	"github.com/rogerio-castellano/appointment-tracker/internal/auth"
	"github.com/rogerio-castellano/appointment-tracker/internal/http/ban"
	"github.com/rogerio-castellano/appointment-tracker/internal/http/handlers"
	mw "github.com/rogerio-castellano/appointment-tracker/internal/http/middleware"
	rl "github.com/rogerio-castellano/appointment-tracker/internal/http/rate_limiter"
	"github.com/rogerio-castellano/appointment-tracker/internal/metrics"
)

type Deps struct {
	Server      *handlers.Server
	Issuer      *auth.Issuer
	Limiter     *rl.Limiter
	Guard       *ban.Guard
	Logger      *slog.Logger
	CORSOrigins []string
	// TrustProxy lets X-Forwarded-For and X-Real-IP decide the client address
	// used by rate limiting and bans.
	TrustProxy  bool
}

func NewRouter(d Deps) http.Handler {
	s := d.Server
	origins := d.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(mw.Recoverer(d.Logger), chimw.RequestID)
	if d.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(
		chimw.URLFormat,
		metrics.InstrumentHandler,
		cors.Handler(cors.Options{
			AllowedOrigins: origins,
			AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
			ExposedHeaders: []string{"Retry-After"},
			MaxAge:         300,
		}),
		mw.Logging(d.Logger),
	)

	r.Get("/healthz", s.HealthHandler)
	r.Handle("/metrics", metrics.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Group(func(r chi.Router) {
		r.Use(mw.RateLimit(d.Limiter, d.Guard))

		r.Post("/sessions", s.LoginHandler)
		r.Post("/sessions/refresh", s.RefreshHandler)

		r.Group(func(r chi.Router) {
			r.Use(mw.Authenticate(d.Issuer))

			r.Delete("/sessions", s.LogoutHandler)
			r.Get("/metrics/dashboard", s.GetDashboardMetricsHandler)

			r.Route("/roles", func(r chi.Router) {
				r.Get("/", s.GetRolesHandler)
				r.Get("/{id}", s.GetRoleByIDHandler)
				r.With(mw.AdminOnly).Post("/", s.CreateRoleHandler)
				r.With(mw.AdminOnly).Put("/{id}", s.UpdateRoleHandler)
				r.With(mw.AdminOnly).Delete("/{id}", s.DeleteRoleHandler)
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", s.GetEmployeesHandler)
				r.Get("/{id}", s.GetEmployeeByIDHandler)
				r.With(mw.AdminOnly).Post("/", s.CreateEmployeeHandler)
				r.With(mw.AdminOnly).Put("/{id}", s.UpdateEmployeeHandler)
				r.With(mw.AdminOnly).Delete("/{id}", s.DeleteEmployeeHandler)
			})

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", s.GetCategoriesHandler)
				r.Get("/{id}", s.GetCategoryByIDHandler)
				r.With(mw.AdminOnly).Post("/", s.CreateCategoryHandler)
				r.With(mw.AdminOnly).Put("/{id}", s.UpdateCategoryHandler)
				r.With(mw.AdminOnly).Delete("/{id}", s.DeleteCategoryHandler)
			})

			r.Route("/products", func(r chi.Router) {
				r.Get("/", s.GetProductsHandler)
				r.Post("/", s.CreateProductHandler)
				r.Get("/search", s.FilterProductsHandler)
				r.With(mw.AdminOnly).Post("/import", s.ImportProductsHandler)
				r.Get("/{id}", s.GetProductByIDHandler)
				r.Put("/{id}", s.UpdateProductHandler)
				r.Delete("/{id}", s.DeleteProductHandler)
				r.Post("/{id}/adjust", s.AdjustQuantityHandler)
				r.Get("/{id}/movements", s.GetMovementsHandler)
				r.Get("/{id}/movements/export", s.ExportMovementsHandler)
			})

			r.Route("/services", func(r chi.Router) {
				r.Get("/", s.GetServicesHandler)
				r.Post("/", s.CreateServiceHandler)
				r.Get("/{id}", s.GetServiceByIDHandler)
				r.Put("/{id}", s.UpdateServiceHandler)
				r.Delete("/{id}", s.DeleteServiceHandler)
			})

			r.Route("/appointments", func(r chi.Router) {
				r.Get("/", s.GetAppointmentsHandler)
				r.Post("/", s.CreateAppointmentHandler)
				r.Get("/availability", s.AvailabilityHandler)
				r.Get("/{id}", s.GetAppointmentByIDHandler)
				r.Put("/{id}", s.UpdateAppointmentHandler)
				r.Delete("/{id}", s.DeleteAppointmentHandler)
			})
		})
	})

	return r
}
