package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	api "github.com/memorylane-care/memorylane/internal/api/http"
	auth "github.com/memorylane-care/memorylane/internal/auth/middleware"
	"github.com/memorylane-care/memorylane/internal/card"
	"github.com/memorylane-care/memorylane/internal/config"
	"github.com/memorylane-care/memorylane/internal/db"
	"github.com/memorylane-care/memorylane/internal/eventlog"
	"github.com/memorylane-care/memorylane/internal/game"
	"github.com/memorylane-care/memorylane/internal/progress"
	"github.com/memorylane-care/memorylane/internal/rbac"
	"github.com/memorylane-care/memorylane/internal/storage"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	cards := card.NewSQLStore(dbh)
	summaries := progress.NewSQLStore(dbh)
	events := eventlog.NewRepo(dbh)
	sessions := game.NewRegistry()

	authSvc := auth.NewAuthService(cfg.AuthSecret)

	bs, err := storage.NewFSStore(cfg.MediaBasePath)
	if err != nil {
		log.Fatalf("media store: %v", err)
	}

	deps := api.SessionDeps{
		Cards:       cards,
		Sessions:    sessions,
		Progress:    summaries,
		Events:      events,
		QuestionCap: cfg.QuestionCap,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	origins := cfg.CORSOriginsLocal
	if cfg.Mode == config.ModeHosted {
		origins = cfg.CORSOriginsHosted
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/login", auth.LoginHandler(authSvc, dbh, cfg.AdminUser, cfg.AdminPassHash))

	// Protected API (JWT → role in context → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))

		pr.With(rbac.Require("asset:upload")).
			Post("/assets/{patientID}", api.UploadAssetHandler(bs))
		pr.With(rbac.RequireAny("asset:view", "asset:upload")).
			Get("/assets/*", api.GetAssetHandler(bs))

		// Caregiver: manage the card pool
		pr.With(rbac.Require("card:create")).
			Post("/cards", api.CreateCardHandler(cards))
		pr.With(rbac.Require("card:view")).
			Get("/cards", api.ListCardsHandler(cards))
		pr.With(rbac.Require("card:delete")).
			Delete("/cards/{cardID}", api.DeleteCardHandler(cards))

		// Patient: play recall games
		pr.With(rbac.Require("session:play")).
			Post("/sessions", api.StartSessionHandler(deps))
		pr.With(rbac.Require("session:play")).
			Get("/sessions/{sessionID}", api.GetSessionHandler(deps))
		pr.With(rbac.Require("session:play")).
			Post("/sessions/{sessionID}/answer", api.AnswerHandler(deps))
		pr.With(rbac.Require("session:play")).
			Post("/sessions/{sessionID}/skip", api.SkipHandler(deps))
		pr.With(rbac.Require("session:play")).
			Post("/sessions/{sessionID}/next", api.NextRoundHandler(deps))

		// Caregiver: analytics and accounts
		pr.With(rbac.Require("progress:view")).
			Get("/progress", api.ListSummariesHandler(summaries))
		pr.With(rbac.Require("progress:view")).
			Get("/progress/stats", api.StatsHandler(summaries))
		pr.With(rbac.Require("users:manage")).
			Post("/users", api.UpsertUserHandler(dbh))
		pr.With(rbac.Require("users:manage")).
			Get("/users", api.ListUsersHandler(dbh))
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("memorylane gateway listening on %s (mode=%s, db=%s)", cfg.HTTPAddr, cfg.Mode, cfg.DBDriver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
