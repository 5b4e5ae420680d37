package rest

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/hr-management/internal/admin"
	"github.com/frahmantamala/hr-management/internal/attendance"
	"github.com/frahmantamala/hr-management/internal/auth"
	"github.com/frahmantamala/hr-management/internal/employee"
	"github.com/frahmantamala/hr-management/internal/leave"
	"github.com/frahmantamala/hr-management/internal/team"
	"github.com/frahmantamala/hr-management/internal/transport/middleware"
	"github.com/frahmantamala/hr-management/internal/transport/swagger"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

type Handlers struct {
	Auth       *auth.Handler
	Admin      *admin.Handler
	Team       *team.Handler
	Employee   *employee.Handler
	Attendance *attendance.Handler
	Leave      *leave.Handler
}

type Options struct {
	AllowedOrigins  []string
	OpenAPIPath     string
	OpenAPIDocument *openapi3.T
	// HealthComponent names the database in /health responses.
	HealthComponent string
	// AccessLog enables request/response logging. Tests usually leave it off.
	AccessLog bool
}

func RegisterAllRoutes(router *chi.Mux, db Pinger, h Handlers, opts Options, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db, opts.HealthComponent)

	router.Use(middleware.CORS(opts.AllowedOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	if opts.AccessLog {
		router.Use(middleware.LoggingMiddleware(logger))
	}
	router.Use(middleware.RecoveryMiddleware(logger))

	if opts.OpenAPIPath != "" {
		router.Get(swagger.DocumentURL, swagger.DocumentHandler(opts.OpenAPIPath, opts.OpenAPIDocument))
		router.Handle("/swagger/*", swagger.Handler())
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(ar chi.Router) {
			ar.Post("/admin/login", h.Auth.LoginAdmin)
			ar.Post("/employee/login", h.Auth.LoginEmployee)
		})

		// admin only
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.RequireAdmin)
			pr.Use(middleware.PrincipalContext)

			pr.Post("/admins", h.Admin.CreateAdmin)
			pr.Get("/admins/me", h.Admin.GetMe)

			pr.Route("/teams", func(tr chi.Router) {
				tr.Get("/", h.Team.ListTeams)
				tr.Post("/", h.Team.CreateTeam)
				tr.Get("/audit", h.Team.Audit)
				tr.Get("/{id}", h.Team.GetTeam)
				tr.Put("/{id}", h.Team.RenameTeam)
				tr.Delete("/{id}", h.Team.DeleteTeam)
				tr.Post("/{id}/reconcile", h.Team.Reconcile)
			})

			pr.Get("/employees", h.Employee.ListEmployees)
			pr.Post("/employees", h.Employee.CreateEmployee)
			pr.Get("/employees/{id}", h.Employee.GetEmployee)
			pr.Put("/employees/{id}", h.Employee.UpdateEmployee)
			pr.Put("/employees/{id}/team", h.Employee.AssignTeam)
			pr.Delete("/employees/{id}", h.Employee.DeleteEmployee)
			pr.Get("/employees/{id}/attendance-logs", h.Attendance.GetEmployeeAttendance)

			pr.Get("/attendance-logs/range", h.Attendance.GetAttendanceInRange)
			pr.Get("/daily-leave-records/range", h.Leave.GetDailyLeaveInRange)
			pr.Get("/hourly-leave-records/range", h.Leave.GetHourlyLeaveInRange)
		})

		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.RequireEmployee)
			pr.Use(middleware.PrincipalContext)

			pr.Get("/employees/me", h.Employee.GetMe)
		})

		// employees write their own records, admins write anyone's
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.RequireAdminOrEmployee)
			pr.Use(middleware.PrincipalContext)

			pr.Post("/attendance-logs", h.Attendance.CreateAttendanceLog)
			pr.Post("/daily-leave-records", h.Leave.CreateDailyLeave)
			pr.Post("/hourly-leave-records", h.Leave.CreateHourlyLeave)
		})
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"type":"NOT_FOUND","code":"ROUTE_NOT_FOUND","message":"Route not found"}}`))
	})
}
