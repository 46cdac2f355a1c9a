package http

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mind-engage/quizsheet/internal/applog"
	"github.com/mind-engage/quizsheet/internal/auth"
	"github.com/mind-engage/quizsheet/internal/rbac"
	"github.com/mind-engage/quizsheet/internal/storage"
)

// Deps wires the API to its backing services.
type Deps struct {
	QuizDeps
	Master     MasterSource
	Generator  Generator
	Blobs      storage.BlobStore
	Ring       *applog.Ring
	Auth       *auth.AuthService
	ParentHash []byte

	// RequestTimeout bounds every route except the log stream. Zero means
	// no limit.
	RequestTimeout time.Duration
}

// Mount registers every /api route on r. Everything except login sits
// behind the JWT middleware and an RBAC permission.
func Mount(r chi.Router, d Deps) {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Log == nil {
		d.Log = slog.Default()
	}

	r.Route("/api", func(ar chi.Router) {
		// Long-lived, so it sits outside the request timeout.
		ar.With(auth.JWTMiddleware(d.Auth), rbac.Require("logs:view")).Get("/logs/stream", StreamLogsHandler(d.Ring))

		ar.Group(func(tr chi.Router) {
			if d.RequestTimeout > 0 {
				tr.Use(middleware.Timeout(d.RequestTimeout))
			}
			mountTimed(tr, d)
		})
	})
}

func mountTimed(ar chi.Router, d Deps) {
	ar.Post("/auth/player", auth.PlayerLoginHandler(d.Auth))
	ar.Post("/auth/parent", auth.ParentLoginHandler(d.Auth, d.ParentHash, d.Log))

	ar.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(d.Auth))

		pr.With(rbac.Require("topic:view")).Get("/topics", ListTopicsHandler(d.Catalog))
		pr.With(rbac.Require("topic:view")).Get("/topics/{topicID}/questions", TopicQuestionsHandler(d.Catalog, d.Source))
		pr.With(rbac.Require("topic:view")).Get("/worksheets", ListWorksheetsHandler(d.Master))
		pr.With(rbac.RequireAny("topic:view", "worksheet:edit")).Get("/files/*", WorksheetFileHandler(d.Blobs))

		pr.With(rbac.Require("quiz:start")).Post("/sessions", StartSessionHandler(d.QuizDeps))
		pr.With(rbac.Require("quiz:play")).Get("/sessions/{sessionID}", GetSessionHandler(d.QuizDeps))
		pr.With(rbac.Require("quiz:play")).Post("/sessions/{sessionID}/answer", AnswerHandler(d.QuizDeps))
		pr.With(rbac.Require("quiz:play")).Post("/sessions/{sessionID}/know-more", KnowMoreHandler(d.QuizDeps))
		pr.With(rbac.Require("quiz:play")).Post("/sessions/{sessionID}/next", NextQuestionHandler(d.QuizDeps))

		pr.With(rbac.Require("check:answer")).Post("/check", CheckAnswerHandler())
		pr.With(rbac.Require("check:answer")).Post("/check/multi", CheckMultiHandler())
		pr.With(rbac.Require("check:answer")).Post("/check/sequence", CheckSequenceHandler())
		pr.With(rbac.Require("check:answer")).Post("/check/match", CheckMatchHandler())

		pr.With(rbac.Require("stats:view-own")).Get("/stats", GetStatsHandler(d.Stats))
		pr.With(rbac.Require("stats:view-own")).Post("/stats/visit", VisitHandler(d.Stats, d.Now))
		pr.With(rbac.Require("stats:view-own")).Get("/review", ReviewHandler(d.Stats))
		pr.With(rbac.Require("progress:view")).Get("/progress", GetProgressHandler(d.Stats))
		pr.With(rbac.Require("progress:save")).Put("/progress", SaveProgressHandler(d.Stats, d.Now))
		pr.With(rbac.Require("progress:save")).Delete("/progress", ClearProgressHandler(d.Stats))

		pr.With(rbac.Require("leaderboard:view")).Get("/leaderboard", LeaderboardHandler(d.Master))
		pr.With(rbac.Require("topic:view")).Get("/topic-config", TopicConfigHandler(d.Master))

		pr.With(rbac.Require("worksheet:edit")).Post("/qa/parse", ParseQAHandler())
		pr.With(rbac.Require("worksheet:edit")).Post("/qa/format", FormatQAHandler())
		pr.With(rbac.Require("worksheet:edit")).Post("/sheets/parse", ParseSheetHandler())
		pr.With(rbac.Require("worksheet:edit")).Post("/sheets/xlsx", ParseXLSXHandler())
		pr.With(rbac.Require("worksheet:generate")).Post("/worksheets/generate", GenerateWorksheetHandler(d.Generator))
		pr.With(rbac.Require("worksheet:edit")).Post("/worksheets/export", ExportWorksheetHandler(d.Blobs))
		pr.With(rbac.Require("worksheet:edit")).Post("/worksheets/import", ImportWorksheetHandler())
		pr.With(rbac.Require("worksheet:edit")).Post("/worksheets/from-sheet", WorksheetFromSheetHandler(d.Generator))
		pr.With(rbac.Require("worksheet:edit")).Post("/worksheets/qti/export", ExportQTIHandler())
		pr.With(rbac.Require("worksheet:edit")).Post("/worksheets/qti/import", ImportQTIHandler())
		pr.With(rbac.Require("worksheet:edit")).Post("/files/{name}", UploadWorksheetFileHandler(d.Blobs))

		if d.Activity != nil {
			pr.With(rbac.Require("activity:view")).Get("/activity", ActivityHandler(d.Activity))
		}

		pr.With(rbac.Require("logs:view")).Get("/logs", ListLogsHandler(d.Ring))
		pr.With(rbac.Require("logs:clear")).Delete("/logs", ClearLogsHandler(d.Ring))
	})
}
