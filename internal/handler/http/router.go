package http

import (
	"log/slog"
	"os"

	"github.com/apexhr/hrm-backend-go/internal/handler/http/middleware"
	"github.com/apexhr/hrm-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	jwtService jwt.Service,
	authHandler AuthHandler,
	employeeHandler EmployeeHandler,
	attendanceHandler AttendanceHandler,
	leaveHandler LeaveHandler,
	salaryHandler SalaryHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "apexhr"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
			r.Post("/logout", authHandler.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", employeeHandler.List)
				r.Get("/{id}", employeeHandler.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.HROnly)
					r.Post("/", employeeHandler.Create)
					r.Put("/{id}", employeeHandler.Update)
					r.Delete("/{id}", employeeHandler.Delete)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/check-in", attendanceHandler.CheckIn)
				r.Post("/check-out", attendanceHandler.CheckOut)
				r.With(middleware.HROnly).Get("/{employeeId}/summary", attendanceHandler.PeriodSummary)
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Post("/", leaveHandler.Create)
				r.Get("/employee/{employeeId}", leaveHandler.ListByEmployee)

				r.Group(func(r chi.Router) {
					r.Use(middleware.HROnly)
					r.Put("/{id}/approve", leaveHandler.Approve)
					r.Put("/{id}/reject", leaveHandler.Reject)
				})
			})

			// Payroll configuration and lifecycle, HR only
			r.Route("/salary", func(r chi.Router) {
				r.Use(middleware.HROnly)

				r.Route("/components", func(r chi.Router) {
					r.Get("/", salaryHandler.ListComponentRules)
					r.Post("/", salaryHandler.CreateComponentRule)
					r.Get("/{id}", salaryHandler.GetComponentRule)
					r.Put("/{id}", salaryHandler.UpdateComponentRule)
					r.Delete("/{id}", salaryHandler.DeleteComponentRule)
				})

				r.Post("/calculate", salaryHandler.CalculatePreview)

				r.Route("/structures", func(r chi.Router) {
					r.Post("/", salaryHandler.CreateStructure)
					r.Get("/employee/{employeeId}", salaryHandler.ListStructuresByEmployee)
					r.Get("/{id}", salaryHandler.GetStructure)
					r.Get("/{id}/validate", salaryHandler.ValidateStructure)
					r.Post("/{id}/recalculate", salaryHandler.Recalculate)
				})

				r.Route("/slips", func(r chi.Router) {
					r.Get("/", salaryHandler.ListSlips)
					r.Post("/generate", salaryHandler.GenerateSlip)
					r.Get("/{id}", salaryHandler.GetSlip)
					r.Put("/{id}/approve", salaryHandler.ApproveSlip)
					r.Put("/{id}/mark-paid", salaryHandler.MarkSlipPaid)
					r.Post("/{id}/cancel", salaryHandler.CancelSlip)
				})
			})
		})
	})

	return r
}
