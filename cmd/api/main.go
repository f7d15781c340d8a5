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

	"github.com/nexografix/timesheet-bff/internal/config"
	"github.com/nexografix/timesheet-bff/internal/domain/preference"
	"github.com/nexografix/timesheet-bff/internal/domain/session"
	appHTTP "github.com/nexografix/timesheet-bff/internal/handler/http"
	"github.com/nexografix/timesheet-bff/internal/pkg/cron"
	"github.com/nexografix/timesheet-bff/internal/pkg/database"
	"github.com/nexografix/timesheet-bff/internal/pkg/jwt"
	"github.com/nexografix/timesheet-bff/internal/pkg/sse"
	"github.com/nexografix/timesheet-bff/internal/pkg/storage"
	"github.com/nexografix/timesheet-bff/internal/repository/file"
	"github.com/nexografix/timesheet-bff/internal/repository/memory"
	"github.com/nexografix/timesheet-bff/internal/repository/postgresql"
	"github.com/nexografix/timesheet-bff/internal/repository/rest"
	attendanceService "github.com/nexografix/timesheet-bff/internal/service/attendance"
	serviceAuth "github.com/nexografix/timesheet-bff/internal/service/auth"
	employeeService "github.com/nexografix/timesheet-bff/internal/service/employee"
	leaveService "github.com/nexografix/timesheet-bff/internal/service/leave"
	preferenceService "github.com/nexografix/timesheet-bff/internal/service/preference"
	reportService "github.com/nexografix/timesheet-bff/internal/service/report"
	timesheetService "github.com/nexografix/timesheet-bff/internal/service/timesheet"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logOpts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.IsProduction() {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, logOpts)))
	} else {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, logOpts)))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Sessions and preferences live in Postgres when configured
	var (
		sessionRepo    session.SessionRepository
		preferenceRepo preference.PreferenceRepository
	)
	if cfg.UsesDatabase() {
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer db.Close()
		if err := postgresql.Migrate(ctx, db); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}
		sessionRepo = postgresql.NewSessionRepository(db)
		preferenceRepo = postgresql.NewPreferenceRepository(db)
	} else {
		slog.Warn("DB_HOST not set, sessions and preferences are kept in memory")
		sessionRepo = memory.NewSessionRepository()
		preferenceRepo = memory.NewPreferenceRepository()
	}

	holidays, err := file.NewHolidayRepository(cfg.Holidays.File).Load(ctx)
	if err != nil {
		return fmt.Errorf("load holidays: %w", err)
	}

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}

	client := rest.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout)
	hub := sse.NewHub()
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	timesheetSvc := timesheetService.NewTimesheetService(
		rest.NewTimesheetGateway(client),
		rest.NewReopenGateway(client),
		rest.NewWeekendGateway(client),
		holidays,
		hub,
		cfg.App.Timezone,
	)
	authSvc := serviceAuth.NewAuthService(rest.NewAuthenticator(client), sessionRepo, JWTService, timesheetSvc, cfg.Session.TTL)
	attendanceSvc := attendanceService.NewAttendanceService(rest.NewAttendanceGateway(client), rest.NewDirectory(client), cfg.App.Timezone)
	leaveSvc := leaveService.NewLeaveService(rest.NewLeaveGateway(client), hub)
	reportSvc := reportService.NewReportService(attendanceSvc, timesheetSvc, fileStorage, cfg.App.Timezone)
	employeeSvc := employeeService.NewEmployeeService(rest.NewDirectory(client))
	preferenceSvc := preferenceService.NewPreferenceService(preferenceRepo)

	scheduler := cron.NewScheduler()
	cron.NewSessionJobs(sessionRepo, timesheetSvc).RegisterJobs(scheduler, cfg.Session.SyncInterval)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	router := appHTTP.NewRouter(appHTTP.RouterOptions{
		Env:         cfg.App.Env,
		FrontendURL: cfg.App.FrontendURL,
		LogLevel:    cfg.SlogLevel(),
		ExportsDir:  cfg.Storage.BasePath,
	}, JWTService, authSvc, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(authSvc),
		Timesheet:  appHTTP.NewTimesheetHandler(timesheetSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Leave:      appHTTP.NewLeaveHandler(leaveSvc),
		Report:     appHTTP.NewReportHandler(reportSvc),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Preference: appHTTP.NewPreferenceHandler(preferenceSvc),
		Stream:     appHTTP.NewStreamHandler(JWTService, authSvc, hub),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "upstream", cfg.Upstream.BaseURL, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
