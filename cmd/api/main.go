package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/httplog/v3"

	"github.com/peoplemesh/hrms-backend-go/internal/config"
	appHTTP "github.com/peoplemesh/hrms-backend-go/internal/handler/http"
	"github.com/peoplemesh/hrms-backend-go/internal/pkg/clock"
	"github.com/peoplemesh/hrms-backend-go/internal/pkg/cron"
	"github.com/peoplemesh/hrms-backend-go/internal/pkg/database"
	"github.com/peoplemesh/hrms-backend-go/internal/pkg/jwt"
	"github.com/peoplemesh/hrms-backend-go/internal/pkg/oauth"
	"github.com/peoplemesh/hrms-backend-go/internal/repository/postgresql"
	attendanceService "github.com/peoplemesh/hrms-backend-go/internal/service/attendance"
	authService "github.com/peoplemesh/hrms-backend-go/internal/service/auth"
	employeeService "github.com/peoplemesh/hrms-backend-go/internal/service/employee"
	leaveService "github.com/peoplemesh/hrms-backend-go/internal/service/leave"
	"github.com/peoplemesh/hrms-backend-go/internal/service/master"
	payrollService "github.com/peoplemesh/hrms-backend-go/internal/service/payroll"
	reportService "github.com/peoplemesh/hrms-backend-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hrms-backend"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), database.Options{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	departmentRepo := postgresql.NewDepartmentRepository(db)
	positionRepo := postgresql.NewPositionRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	leaveBalanceRepo := postgresql.NewLeaveBalanceRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	var googleService oauth.GoogleService
	if cfg.OAuth2Google.ClientID != "" {
		googleService = oauth.NewGoogleService(
			cfg.OAuth2Google.ClientID,
			cfg.OAuth2Google.ClientSecret,
			cfg.OAuth2Google.RedirectURL,
			cfg.OAuth2Google.Scopes,
		)
	}

	clk := clock.System()

	auth := authService.NewAuthService(userRepo, jwtService, clk)
	employees := employeeService.NewEmployeeService(employeeRepo, leaveBalanceRepo, clk)
	attendance, err := attendanceService.NewAttendanceService(
		attendanceRepo,
		employeeRepo,
		clk,
		cfg.Attendance.WorkStartTime,
		cfg.Attendance.StandardWorkMinutes,
	)
	if err != nil {
		log.Fatal("Error building attendance service: ", err)
	}
	leaves := leaveService.NewLeaveService(leaveRequestRepo, leaveBalanceRepo, employeeRepo, clk)
	payrolls := payrollService.NewPayrollService(payrollRepo, employeeRepo, attendanceRepo, clk, logger)
	reports := reportService.NewReportService(attendanceRepo, employeeRepo, clk)
	masters := master.NewMasterService(departmentRepo, positionRepo, clk)

	scheduler := cron.NewScheduler(logger)
	cron.RegisterMonthlyPayroll(scheduler, payrolls, logger)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(jwtService, logger, []string{cfg.App.FrontendURL}, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(auth, jwtService, googleService),
		Employee:   appHTTP.NewEmployeeHandler(employees),
		Attendance: appHTTP.NewAttendanceHandler(attendance),
		Leave:      appHTTP.NewLeaveHandler(leaves),
		Payroll:    appHTTP.NewPayrollHandler(payrolls),
		Master:     appHTTP.NewMasterHandler(masters),
		Report:     appHTTP.NewReportHandler(reports),
	})

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	logger.Info("server listening", slog.String("addr", addr))
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal("Server error: ", err)
	}
}
