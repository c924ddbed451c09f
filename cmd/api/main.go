package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/apexhr/hrm-backend-go/internal/config"
	appHTTP "github.com/apexhr/hrm-backend-go/internal/handler/http"
	"github.com/apexhr/hrm-backend-go/internal/pkg/database"
	"github.com/apexhr/hrm-backend-go/internal/pkg/jwt"
	"github.com/apexhr/hrm-backend-go/internal/repository/postgresql"
	attendanceService "github.com/apexhr/hrm-backend-go/internal/service/attendance"
	authService "github.com/apexhr/hrm-backend-go/internal/service/auth"
	employeeService "github.com/apexhr/hrm-backend-go/internal/service/employee"
	leaveService "github.com/apexhr/hrm-backend-go/internal/service/leave"
	salaryService "github.com/apexhr/hrm-backend-go/internal/service/salary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.App.LogLevel),
	})).With(
		slog.String("app", "apexhr"),
		slog.String("env", cfg.App.Env),
	)

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	componentRuleRepo := postgresql.NewComponentRuleRepository(db)
	structureRepo := postgresql.NewStructureRepository(db)
	slipRepo := postgresql.NewSlipRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	authSvc := authService.NewAuthService(userRepo, jwtService, logger)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, logger)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, logger)
	leaveSvc := leaveService.NewLeaveService(leaveRepo, logger)
	salarySvc := salaryService.NewSalaryService(db, componentRuleRepo, structureRepo, slipRepo, employeeRepo, logger)

	router := appHTTP.NewRouter(
		jwtService,
		appHTTP.NewAuthHandler(authSvc, jwtService),
		appHTTP.NewEmployeeHandler(employeeSvc),
		appHTTP.NewAttendanceHandler(attendanceSvc),
		appHTTP.NewLeaveHandler(leaveSvc),
		appHTTP.NewSalaryHandler(salarySvc),
	)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	logger.Info("server starting", "addr", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
