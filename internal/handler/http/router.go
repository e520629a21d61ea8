package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// RouterOptions carries the deployment-specific settings of the HTTP surface.
type RouterOptions struct {
	AllowedOrigins []string
	Env            string
	Version        string
	LogLevel       slog.Level
}

type Handlers struct {
	Attendance   AttendanceHandler
	WorkLocation WorkLocationHandler
	Leave        LeaveHandler
	Salary       SalaryHandler
}

func NewRouter(JWTService jwt.Service, opts RouterOptions, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(opts.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       opts.LogLevel,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hris-attendance"),
		slog.String("version", opts.Version),
		slog.String("env", opts.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RequestID)
	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Route("/locations", func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionLocationManage))
					r.Post("/", h.WorkLocation.Add)
					r.Get("/", h.WorkLocation.List)
				})

				r.With(middleware.RequirePermission(user.PermissionAttendanceCreate)).Post("/check-in", h.Attendance.CheckIn)
				r.With(middleware.RequirePermission(user.PermissionAttendanceCreate)).Post("/check-out", h.Attendance.CheckOut)
				r.With(middleware.RequirePermission(user.PermissionAttendanceViewOwn)).Get("/my", h.Attendance.GetMyAttendance)
				r.With(middleware.RequirePermission(user.PermissionAttendanceCreate)).Post("/request", h.Attendance.RequestCorrection)

				r.With(middleware.RequirePermission(user.PermissionAttendanceApprove)).Get("/requests/pending", h.Attendance.ListPendingCorrections)
				r.With(middleware.RequirePermission(user.PermissionAttendanceApprove)).Post("/request/decide", h.Attendance.DecideCorrection)
				r.With(middleware.RequirePermission(user.PermissionAttendanceViewAll)).Get("/employee/{id}", h.Attendance.GetEmployeeAttendance)
				r.With(middleware.RequirePermission(user.PermissionAttendanceViewAll)).Get("/company", h.Attendance.ListCompany)
				r.With(middleware.RequirePermission(user.PermissionAttendanceEdit)).Put("/{id}", h.Attendance.Update)
			})

			r.Route("/leave", func(r chi.Router) {
				r.Route("/policies", func(r chi.Router) {
					r.Get("/", h.Leave.ListPolicies)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequirePermission(user.PermissionLeaveManagePolicies))
						r.Post("/", h.Leave.CreatePolicy)
						r.Patch("/{id}", h.Leave.UpdatePolicy)
					})
				})

				r.With(middleware.RequirePermission(user.PermissionLeaveCreate)).Post("/apply", h.Leave.Apply)
				r.With(middleware.RequirePermission(user.PermissionLeaveViewOwn)).Get("/my", h.Leave.GetMyApplications)
				r.With(middleware.RequirePermission(user.PermissionLeaveViewOwn)).Get("/balance", h.Leave.GetMyBalances)

				r.With(middleware.RequirePermission(user.PermissionLeaveViewAll)).Get("/pending", h.Leave.ListPending)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionLeaveApprove))
					r.Patch("/{id}/approve", h.Leave.Approve)
					r.Patch("/{id}/reject", h.Leave.Reject)
				})
			})

			r.Route("/salary", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionSalaryManage)).Post("/", h.Salary.Upsert)
				r.With(middleware.RequirePermission(user.PermissionSalaryViewAll)).Get("/employee/{id}", h.Salary.GetEmployeeSalary)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionSalaryViewOwn))
					r.Get("/my", h.Salary.GetMySalary)
					r.Get("/payslip/my", h.Salary.GetMyPayslip)
					r.Get("/payslip/my/pdf", h.Salary.GetMyPayslipPDF)
				})
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})

	return r
}
