// Package server sets up the HTTP server, router, and all route
// definitions. It is the composition root: the database, repositories,
// services, guard, and handlers are all wired here, each layer receiving
// only the interfaces it needs.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/notasapp/notas/internal/config"
	"github.com/notasapp/notas/internal/handler"
	"github.com/notasapp/notas/internal/middleware"
	sqliteRepo "github.com/notasapp/notas/internal/repository/sqlite"
	"github.com/notasapp/notas/internal/service"
)

// Server owns the router and the database connection; the connection is
// closed during graceful shutdown.
type Server struct {
	router *chi.Mux
	cfg    config.ServerConfig
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New opens the database and assembles the full dependency chain:
// repositories → services → guard → handlers → routes.
func New(cfg config.ServerConfig, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		cfg:    cfg,
		logger: logger,
		db:     db,
	}

	s.setupRoutes()

	return s, nil
}

func (s *Server) setupRoutes() {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	userService := service.NewUserService(sqliteRepo.NewUserRepo(s.db), s.logger)
	noteService := service.NewNoteService(sqliteRepo.NewNoteRepo(s.db), s.logger)
	guard := service.NewGuard(userService, noteService, s.logger)

	userHandler := handler.NewUserHandler(userService, guard, s.logger)
	noteHandler := handler.NewNoteHandler(noteService, userService, guard, s.logger)

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/users", userHandler.HandleLogin)

		r.Route("/users/{username}", func(r chi.Router) {
			r.Get("/statuses", userHandler.HandleListStatuses)
			r.Post("/statuses", userHandler.HandleAddStatus)
			r.Delete("/statuses/{status}", userHandler.HandleRemoveStatus)

			r.Get("/notes", noteHandler.HandleList)
			r.Post("/notes", noteHandler.HandleCreate)
			r.Get("/notes/{id}", noteHandler.HandleGet)
			r.Put("/notes/{id}", noteHandler.HandleUpdate)
			r.Put("/notes/{id}/status", noteHandler.HandleRetag)
			r.Delete("/notes/{id}", noteHandler.HandleDelete)
		})
	})
}

// Handler exposes the assembled router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, give in-flight requests 30
// seconds, close the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.cfg.Port),
			slog.String("database", s.cfg.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
