package http

import (
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/nexografix/timesheet-bff/internal/handler/http/middleware"
	"github.com/nexografix/timesheet-bff/internal/pkg/jwt"
)

type RouterOptions struct {
	Env         string
	FrontendURL string
	LogLevel    slog.Level
	// ExportsDir is served under /exports when set.
	ExportsDir string
}

type Handlers struct {
	Auth       AuthHandler
	Timesheet  TimesheetHandler
	Attendance AttendanceHandler
	Leave      LeaveHandler
	Report     ReportHandler
	Employee   EmployeeHandler
	Preference PreferenceHandler
	Stream     StreamHandler
}

func NewRouter(opts RouterOptions, JWTService jwt.Service, sessions middleware.SessionResolver, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(opts.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       opts.LogLevel,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "timesheet-bff"),
		slog.String("version", "v1.0.0"),
		slog.String("env", opts.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{opts.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	// Archived workbooks are admin data
	if opts.ExportsDir != "" {
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService, sessions))
			r.Use(middleware.PasswordChangeCleared)
			r.Use(middleware.AdminOnly)
			r.Handle("/exports/*", http.StripPrefix("/exports/", noListing(http.FileServer(http.Dir(opts.ExportsDir)))))
		})
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", h.Auth.Login)
		r.Get("/stream", h.Stream.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService, sessions))

			r.Route("/auth", func(r chi.Router) {
				r.Post("/logout", h.Auth.Logout)
				r.Post("/change-password", h.Auth.ChangePassword)
				r.Get("/me", h.Auth.Me)
				r.With(middleware.PasswordChangeCleared).Post("/sse-token", h.Auth.SSEToken)
			})

			// Everything else waits for a forced password change
			r.Group(func(r chi.Router) {
				r.Use(middleware.PasswordChangeCleared)

				r.Get("/holidays", h.Timesheet.Holidays)

				r.Route("/timesheet", func(r chi.Router) {
					r.Route("/week", func(r chi.Router) {
						r.Get("/", h.Timesheet.GetWeek)
						r.Post("/shift", h.Timesheet.ShiftWeek)
						r.Post("/current", h.Timesheet.CurrentWeek)
						r.Post("/save", h.Timesheet.SaveAll)
					})

					r.Route("/days/{date}", func(r chi.Router) {
						r.Put("/", h.Timesheet.UpdateDay)
						r.Post("/draft", h.Timesheet.SaveDraft)
						r.Post("/submit", h.Timesheet.SubmitDay)
						r.Post("/reopen", h.Timesheet.OpenReopen)
					})

					r.Route("/reopen-requests", func(r chi.Router) {
						r.Get("/", h.Timesheet.ListReopenRequests)
						r.Post("/", h.Timesheet.SendReopen)

						// Admin only
						r.With(middleware.AdminOnly).Put("/{id}", h.Timesheet.ReviewReopen)
					})

					r.Route("/weekend", func(r chi.Router) {
						r.Post("/", h.Timesheet.ApplyWeekendWorking)
						r.Get("/options", h.Timesheet.WeekendOptions)
					})

					r.Get("/history", h.Timesheet.History)
				})

				r.Route("/attendance", func(r chi.Router) {
					r.Get("/today", h.Attendance.Today)
					r.Post("/clock-in", h.Attendance.ClockIn)
					r.Post("/break-in", h.Attendance.BreakIn)
					r.Post("/break-out", h.Attendance.BreakOut)
					r.Post("/clock-out", h.Attendance.ClockOut)

					r.With(middleware.AdminOnly).Get("/matrix", h.Report.AttendanceMatrix)
				})

				r.Route("/leaves", func(r chi.Router) {
					r.Get("/types", h.Leave.Types)
					r.Post("/", h.Leave.Apply)
					r.Get("/mine", h.Leave.ListMine)

					r.Route("/approvals", func(r chi.Router) {
						r.Get("/", h.Leave.ListApprovals)
						r.Put("/", h.Leave.BulkReview)
						r.Put("/{id}", h.Leave.Review)
					})
				})

				r.Route("/reports", func(r chi.Router) {
					r.Get("/timesheet.xlsx", h.Report.TimesheetWorkbook)

					// Admin only
					r.Group(func(r chi.Router) {
						r.Use(middleware.AdminOnly)
						r.Get("/attendance.xlsx", h.Report.AttendanceWorkbook)
						r.Post("/attendance", h.Report.ArchiveAttendance)
					})
				})

				r.With(middleware.AdminOnly).Get("/employees", h.Employee.List)

				r.Route("/preferences", func(r chi.Router) {
					r.Get("/", h.Preference.List)
					r.Get("/{key}", h.Preference.Get)
					r.Put("/{key}", h.Preference.Set)
				})
			})
		})
	})
	return r
}

// noListing hides directory indexes of the export tree.
func noListing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}
