package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"dispatch/cmd"
	httpin "dispatch/internal/adapters/in/http"
	"dispatch/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

func main() {
	configs := getConfigs()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	gormDB, err := cmd.NewGormDB(configs)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := cmd.MigrateDB(gormDB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		log.Fatalf("Failed to build application: %v", err)
	}
	defer app.Broker().Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	startParticipants(ctx, &app, logger)

	jobManager := startJobs(&app, configs, logger)
	defer jobManager.StopAll()

	startWebServer(ctx, &app, configs.HTTPPort, logger)
}

// startParticipants launches the courier agents and the stats listener.
// They run until the root context is cancelled.
func startParticipants(ctx context.Context, app *cmd.CompositionRoot, logger *slog.Logger) {
	agents, err := app.CreateCourierAgents()
	if err != nil {
		log.Fatalf("Failed to create courier agents: %v", err)
	}

	for _, agent := range agents {
		go func() {
			if err := agent.Run(ctx); err != nil {
				logger.Error("Courier agent stopped", "courier_id", agent.ID().String(), "error", err)
			}
		}()
	}
	logger.Info("Courier agents started", "count", len(agents))

	listener := app.CreateStatsListener()
	go func() {
		if err := listener.Run(ctx); err != nil {
			logger.Error("Stats listener stopped", "error", err)
		}
	}()
}

func startJobs(app *cmd.CompositionRoot, configs cmd.Config, logger *slog.Logger) *jobs.JobManager {
	announcementJob := jobs.NewCourseAnnouncementJob(
		app.CreateAnnounceCourseCommandHandler(),
		configs.AnnounceInterval,
		logger,
	)
	pruneJob := jobs.NewEarningsPruneJob(
		app.CreatePruneEarningsCommandHandler(),
		configs.EarningsRetention,
		logger,
	)

	jobManager := jobs.NewJobManager(announcementJob, pruneJob)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	return jobManager
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, port string, logger *slog.Logger) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpin.NewServer(
		app.CreateAnnounceCourseCommandHandler(),
		app.CreateGetCourierStatsQueryHandler(),
		app.CreateGetCompletedCoursesQueryHandler(),
		app.Roster(),
		logger,
	)
	server.RegisterRoutes(e)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown failed", "error", err)
		}
	}()

	if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && err != http.ErrServerClosed {
		e.Logger.Fatal(err)
	}
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:   goDotEnvVariable("HTTP_PORT"),
		DBHost:     goDotEnvVariable("DB_HOST"),
		DBPort:     goDotEnvVariable("DB_PORT"),
		DBUser:     goDotEnvVariable("DB_USER"),
		DBPassword: goDotEnvVariable("DB_PASSWORD"),
		DBName:     goDotEnvVariable("DB_NAME"),
		DBSslMode:  goDotEnvVariable("DB_SSLMODE"),

		OrdersFeedPath: goDotEnvVariable("ORDERS_FEED_PATH"),
		RosterPath:     goDotEnvVariable("ROSTER_PATH"),

		BidWindow:          durationVariable("BID_WINDOW", 5*time.Second),
		ConfirmationWindow: durationVariable("CONFIRMATION_WINDOW", 5*time.Second),
		AnnounceInterval:   durationVariable("ANNOUNCE_INTERVAL", 10*time.Second),
		EarningsRetention:  durationVariable("EARNINGS_RETENTION", 36*time.Hour),
		BidProbability:     floatVariable("BID_PROBABILITY", 0.8),
		CourierCount:       intVariable("COURIER_COUNT", 0),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func durationVariable(key string, fallback time.Duration) time.Duration {
	raw := goDotEnvVariable(key)
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		log.Fatalf("Invalid duration for %s: %v", key, err)
	}
	return value
}

func floatVariable(key string, fallback float64) float64 {
	raw := goDotEnvVariable(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Fatalf("Invalid number for %s: %v", key, err)
	}
	return value
}

func intVariable(key string, fallback int) int {
	raw := goDotEnvVariable(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("Invalid number for %s: %v", key, err)
	}
	return value
}
