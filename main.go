package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/survey-insights/cliparse"
	"github.com/danielhkuo/survey-insights/db"
	"github.com/danielhkuo/survey-insights/middleware"
	"github.com/danielhkuo/survey-insights/render"
	"github.com/danielhkuo/survey-insights/router"
	"github.com/danielhkuo/survey-insights/session"
	"github.com/danielhkuo/survey-insights/sheet"
	"github.com/danielhkuo/survey-insights/submit"
)

// How often idle sessions are swept
const sweepInterval = time.Minute

func main() {
	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Submission log is optional
	var store *submit.Store
	if cfg.DatabaseURL != "" {
		dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
		if err != nil {
			slog.Error("database connection failed", "error", err)
			os.Exit(1)
		}
		defer dbConn.Close()

		if err := db.CreateSchema(dbConn); err != nil {
			slog.Error("schema creation failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Database schema ready", "type", cfg.DatabaseType)
		store = submit.NewStore(dbConn)
	} else {
		slog.Info("No DATABASE_URL, questions will not be logged")
	}

	var forwarder *submit.Forwarder
	if cfg.SubmitURL != "" {
		forwarder = submit.NewForwarder(cfg.SubmitURL, cfg.FetchTimeout)
	} else {
		slog.Warn("No SUBMIT_URL, question form is disabled")
	}

	renderer, err := render.New()
	if err != nil {
		slog.Error("template parsing failed", "error", err)
		os.Exit(1)
	}

	source := sheet.NewHTTPSource(cfg.SheetURL, cfg.FetchTimeout)
	sessions := session.NewManager(source, session.Options{
		Scheduler:       render.TickerScheduler{},
		InsightQuestion: cfg.InsightQuestion,
		InsightInterval: cfg.InsightInterval,
		TTL:             cfg.SessionTTL,
		MaxSessions:     cfg.MaxSessions,
	})

	// Create router
	mux := router.NewRouter(router.Services{
		Source:    source,
		Sessions:  sessions,
		Renderer:  renderer,
		Forwarder: forwarder,
		Store:     store,
	}, cfg)

	// Create server
	server := &http.Server{
		Handler:           middleware.Recover(middleware.CORS(mux)),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	// Start server
	g.Go(func() error {
		slog.Info("Listening", "port", cfg.Port, "sheet", cfg.SheetURL)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return sessions.Run(ctx, sweepInterval)
	})

	// Wait for Ctrl-C signal
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("Server closed", "error", err)
		os.Exit(1)
	}
	slog.Info("Server closed")
}
