package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mind-engage/quizsheet/internal/activity"
	api "github.com/mind-engage/quizsheet/internal/api/http"
	"github.com/mind-engage/quizsheet/internal/applog"
	"github.com/mind-engage/quizsheet/internal/auth"
	"github.com/mind-engage/quizsheet/internal/catalog"
	"github.com/mind-engage/quizsheet/internal/config"
	"github.com/mind-engage/quizsheet/internal/db"
	"github.com/mind-engage/quizsheet/internal/generator"
	"github.com/mind-engage/quizsheet/internal/grading"
	"github.com/mind-engage/quizsheet/internal/session"
	"github.com/mind-engage/quizsheet/internal/sheet"
	"github.com/mind-engage/quizsheet/internal/stats"
	"github.com/mind-engage/quizsheet/internal/storage"
)

func main() {
	cfg := config.FromEnv()

	ring := applog.NewRing()
	logger := applog.NewLogger(os.Stderr, applog.ParseLevel(cfg.LogLevel), ring)
	slog.SetDefault(logger)

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		fatal("db open failed", err)
	}

	bs, err := storage.NewFSStore(cfg.BlobBasePath)
	if err != nil {
		fatal("blob store", err)
	}

	topics := catalog.Default()
	if cfg.TopicsFile != "" {
		if topics, err = catalog.Load(cfg.TopicsFile); err != nil {
			fatal("load topics", err)
		}
	}

	parentHash, err := auth.ParentHash(cfg.ParentPassHash)
	if err != nil {
		fatal("parent password", err)
	}
	if cfg.ParentPassHash == "" {
		logger.Warn("PARENT_PASS_HASH not set, using the default parent password")
	}

	hc := &http.Client{Timeout: cfg.FetchTimeout}
	fetcher := &sheet.Fetcher{
		HTTP:            hc,
		Blobs:           bs,
		Local:           cfg.LocalWorksheets,
		MasterConfigURL: cfg.MasterConfigURL,
		Log:             logger.With("component", "sheets"),
	}

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	api.Mount(r, api.Deps{
		QuizDeps: api.QuizDeps{
			Catalog:  topics,
			Source:   fetcher,
			Sessions: session.NewManager(),
			Grader:   grading.NewDefaultGrader(),
			Stats:    stats.NewSQLStore(dbh),
			Activity: activity.NewRepo(dbh),
			Log:      logger.With("component", "quiz"),
		},
		Master: fetcher,
		Generator: &generator.Client{
			HTTP:    &http.Client{Timeout: 2 * time.Minute},
			APIKey:  cfg.GeminiAPIKey,
			Model:   cfg.GeminiModel,
			BaseURL: cfg.GeminiBaseURL,
			Log:     logger.With("component", "generator"),
		},
		Blobs:      bs,
		Ring:       ring,
		Auth:       auth.NewAuthService(cfg.AuthHMACSecret),
		ParentHash: parentHash,

		RequestTimeout: 30 * time.Second,
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := dbh.PingContext(r.Context()); err != nil {
			http.Error(w, "db unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(200)
	})

	logger.Info("listening", "addr", cfg.HTTPAddr, "mode", cfg.Mode, "db", cfg.DBDriver, "topics", len(topics.Topics))
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		fatal("server stopped", err)
	}
}

func fatal(msg string, err error) {
	slog.Error(msg, "err", err)
	os.Exit(1)
}
