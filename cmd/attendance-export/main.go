// Command attendance-export logs in to the HR API as an admin and writes the
// attendance matrix for a date range to an xlsx workbook.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/nexografix/timesheet-bff/internal/domain/attendance"
	"github.com/nexografix/timesheet-bff/internal/domain/session"
	"github.com/nexografix/timesheet-bff/internal/repository/rest"
	attendanceService "github.com/nexografix/timesheet-bff/internal/service/attendance"
	reportService "github.com/nexografix/timesheet-bff/internal/service/report"
	"github.com/spf13/cobra"
)

const defaultBaseURL = "https://nexografix-srv.onrender.com/api"

type options struct {
	baseURL  string
	username string
	password string
	timezone string
	timeout  time.Duration
	outDir   string
	req      attendance.MatrixRequest
}

func main() {
	_ = godotenv.Load()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	var opts options
	cmd := &cobra.Command{
		Use:   "attendance-export",
		Short: "Export the attendance matrix to an Excel workbook",
		Long: "Logs in to the HR API with an admin account and writes\n" +
			"Attendance_<start>_to_<end>.xlsx for the requested range.\n" +
			"The range defaults to the last seven days.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.password == "" {
				opts.password = os.Getenv("HR_PASSWORD")
			}
			if opts.username == "" || opts.password == "" {
				return errors.New("--username and --password (or HR_PASSWORD) are required")
			}
			path, err := export(cmd.Context(), opts)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.baseURL, "base-url", envOr("UPSTREAM_BASE_URL", defaultBaseURL), "HR API base URL")
	cmd.Flags().StringVarP(&opts.username, "username", "u", os.Getenv("HR_USERNAME"), "Admin username")
	cmd.Flags().StringVarP(&opts.password, "password", "p", "", "Admin password (default $HR_PASSWORD)")
	cmd.Flags().StringVar(&opts.timezone, "timezone", envOr("APP_TIMEZONE", "UTC"), "Timezone for clock columns")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "Upstream request timeout")
	cmd.Flags().StringVarP(&opts.outDir, "out", "o", ".", "Output directory")
	cmd.Flags().StringVar(&opts.req.Start, "start", "", "First day, YYYY-MM-DD")
	cmd.Flags().StringVar(&opts.req.End, "end", "", "Last day, YYYY-MM-DD")
	cmd.Flags().StringVar(&opts.req.Search, "search", "", "Only employees whose name contains this text")

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func export(ctx context.Context, opts options) (string, error) {
	loc, err := time.LoadLocation(opts.timezone)
	if err != nil {
		return "", fmt.Errorf("invalid timezone: %w", err)
	}

	client := rest.NewClient(strings.TrimRight(opts.baseURL, "/"), opts.timeout)
	up, err := rest.NewAuthenticator(client).Login(ctx, opts.username, opts.password)
	if err != nil {
		return "", fmt.Errorf("login: %w", err)
	}

	role := ""
	if up.Role != nil {
		role = *up.Role
	}
	ctx = session.WithSession(ctx, session.Session{
		Username:      opts.username,
		Role:          session.ParseRole(role),
		UpstreamToken: up.Token,
	})

	attendanceSvc := attendanceService.NewAttendanceService(rest.NewAttendanceGateway(client), rest.NewDirectory(client), loc)
	reports := reportService.NewReportService(attendanceSvc, nil, nil, loc)

	file, err := reports.AttendanceWorkbook(ctx, opts.req)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	path := filepath.Join(opts.outDir, file.Name)
	if err := os.WriteFile(path, file.Data, 0o644); err != nil {
		return "", fmt.Errorf("write workbook: %w", err)
	}
	slog.Info("Attendance exported", "path", path, "bytes", len(file.Data))
	return path, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
