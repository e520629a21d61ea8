package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/config"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/location"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/payroll"
	appHTTP "github.com/cmlabs-hris/hris-attendance-go/internal/handler/http"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-attendance-go/internal/repository/memory"
	"github.com/cmlabs-hris/hris-attendance-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/hris-attendance-go/internal/service/attendance"
	leaveService "github.com/cmlabs-hris/hris-attendance-go/internal/service/leave"
	locationService "github.com/cmlabs-hris/hris-attendance-go/internal/service/location"
	payrollService "github.com/cmlabs-hris/hris-attendance-go/internal/service/payroll"
	"github.com/go-chi/httplog/v3"
)

const version = "v1.0.0"

type repositories struct {
	tx           database.Transactor
	employee     employee.EmployeeRepository
	workLocation location.WorkLocationRepository
	attendance   attendance.AttendanceRepository
	policy       leave.LeavePolicyRepository
	application  leave.LeaveApplicationRepository
	salary       payroll.SalaryRepository
	close        func()
}

func openRepositories(ctx context.Context, cfg *config.Config) (repositories, error) {
	if cfg.Database.Driver == config.DriverMemory {
		slog.Warn("using in-memory storage, data is lost on restart")
		store := memory.NewStore()
		if cfg.Database.SeedFile != "" {
			seed, err := memory.LoadSeedFile(ctx, store, cfg.Database.SeedFile)
			if err != nil {
				return repositories{}, err
			}
			slog.Info("memory store seeded", "file", cfg.Database.SeedFile, "employees", len(seed.Employees), "work_locations", len(seed.WorkLocations))
		}
		return repositories{
			tx:           memory.NewTransactor(store),
			employee:     memory.NewEmployeeRepository(store),
			workLocation: memory.NewWorkLocationRepository(store),
			attendance:   memory.NewAttendanceRepository(store),
			policy:       memory.NewLeavePolicyRepository(store),
			application:  memory.NewLeaveApplicationRepository(store),
			salary:       memory.NewSalaryRepository(store),
			close:        func() {},
		}, nil
	}

	if cfg.Database.SeedFile != "" {
		slog.Warn("MEMORY_SEED_FILE is ignored by the postgres driver")
	}

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), cfg.Database.MaxConns, cfg.Database.MinConns)
	if err != nil {
		return repositories{}, fmt.Errorf("connect to database: %w", err)
	}

	if cfg.Database.MigrateOnStart {
		if err := database.Migrate(ctx, db); err != nil {
			db.Close()
			return repositories{}, err
		}
	}

	return repositories{
		tx:           postgresql.NewTransactor(db),
		employee:     postgresql.NewEmployeeRepository(db),
		workLocation: postgresql.NewWorkLocationRepository(db),
		attendance:   postgresql.NewAttendanceRepository(db),
		policy:       postgresql.NewLeavePolicyRepository(db),
		application:  postgresql.NewLeaveApplicationRepository(db),
		salary:       postgresql.NewSalaryRepository(db),
		close:        db.Close,
	}, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.LogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})))

	loc, err := cfg.Location()
	if err != nil {
		slog.Error("invalid timezone", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize storage", "driver", cfg.Database.Driver, "error", err)
		os.Exit(1)
	}
	defer repos.close()

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	attendanceSvc := attendanceService.NewAttendanceService(
		repos.attendance,
		repos.employee,
		repos.workLocation,
		attendanceService.Config{
			Location:     loc,
			LateCutoff:   cfg.Attendance.LateCutoff,
			HistoryLimit: cfg.Attendance.HistoryLimit,
		},
	)
	workLocationSvc := locationService.NewWorkLocationService(repos.workLocation, repos.employee)
	leaveSvc := leaveService.NewLeaveService(repos.tx, repos.policy, repos.application, repos.employee, loc, nil)
	payrollSvc := payrollService.NewPayrollService(repos.tx, repos.salary, repos.application, repos.employee, loc, nil)

	router := appHTTP.NewRouter(
		JWTService,
		appHTTP.RouterOptions{
			AllowedOrigins: cfg.App.AllowedOrigins,
			Env:            cfg.App.Env,
			Version:        version,
			LogLevel:       cfg.LogLevel(),
		},
		appHTTP.Handlers{
			Attendance:   appHTTP.NewAttendanceHandler(attendanceSvc),
			WorkLocation: appHTTP.NewWorkLocationHandler(workLocationSvc),
			Leave:        appHTTP.NewLeaveHandler(leaveSvc),
			Salary:       appHTTP.NewSalaryHandler(payrollSvc),
		},
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server running", "addr", server.Addr, "env", cfg.App.Env, "timezone", loc.String(), "late_cutoff", cfg.Attendance.LateCutoff.String())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
	slog.Info("server stopped")
}
