package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/shiftcore-hq/shiftcore-backend-go/internal/config"
	appHTTP "github.com/shiftcore-hq/shiftcore-backend-go/internal/handler/http"
	"github.com/shiftcore-hq/shiftcore-backend-go/internal/pkg/cron"
	"github.com/shiftcore-hq/shiftcore-backend-go/internal/pkg/database"
	"github.com/shiftcore-hq/shiftcore-backend-go/internal/pkg/devicecloud"
	"github.com/shiftcore-hq/shiftcore-backend-go/internal/pkg/jwt"
	"github.com/shiftcore-hq/shiftcore-backend-go/internal/repository/postgresql"
	attendanceService "github.com/shiftcore-hq/shiftcore-backend-go/internal/service/attendance"
	scheduleService "github.com/shiftcore-hq/shiftcore-backend-go/internal/service/schedule"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	deviceRepo := postgresql.NewDeviceRepository(db)
	assignmentRepo := postgresql.NewScheduleAssignmentRepository(db)
	punchRepo := postgresql.NewPunchEventRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret)

	schedSvc := scheduleService.NewScheduleService(postgresql.NewTxRunner(db), assignmentRepo, employeeRepo, shiftRepo)
	attSvc := attendanceService.NewAttendanceService(
		punchRepo,
		employeeRepo,
		assignmentRepo,
		shiftRepo,
		attendanceService.NewNearestWindowResolver(),
	)

	scheduler := cron.NewScheduler()
	if cfg.DeviceCloud.SyncEnabled {
		cloud := devicecloud.NewClient(
			cfg.DeviceCloud.BaseURL,
			cfg.DeviceCloud.ClientID,
			cfg.DeviceCloud.ClientSecret,
			cfg.DeviceCloud.TokenURL,
		)
		cron.NewPunchSyncJobs(cloud, deviceRepo, attSvc).RegisterJobs(scheduler, cfg.DeviceCloud.SyncInterval)
	}
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(appHTTP.RouterDeps{
		JWTService:        JWTService,
		DeviceRepo:        deviceRepo,
		ScheduleHandler:   appHTTP.NewScheduleHandler(schedSvc),
		AttendanceHandler: appHTTP.NewAttendanceHandler(attSvc),
		EmployeeHandler:   appHTTP.NewEmployeeHandler(employeeRepo),
		ShiftHandler:      appHTTP.NewShiftHandler(shiftRepo),
		AllowedOrigins:    cfg.App.AllowedOrigins,
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		slog.Info("Server starting", "port", cfg.App.Port, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down")
	if err := server.Close(); err != nil {
		slog.Error("Server close failed", "error", err)
	}
}
