// Package server is the composition root: it opens the database, builds the
// services and handlers, mounts the routes and runs the HTTP server.
//
//	config → sqlite.DB → UserService / CourseService → handlers → chi router
package server

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

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/vmccready/techdegree-project-9/internal/auth"
	"github.com/vmccready/techdegree-project-9/internal/config"
	"github.com/vmccready/techdegree-project-9/internal/handler"
	"github.com/vmccready/techdegree-project-9/internal/middleware"
	sqliteRepo "github.com/vmccready/techdegree-project-9/internal/repository/sqlite"
	"github.com/vmccready/techdegree-project-9/internal/service"
	"github.com/vmccready/techdegree-project-9/internal/validate"
)

// Server owns the database connection; Start closes it on the way out.
type Server struct {
	router *chi.Mux
	config *config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New opens (and migrates) the database and wires every route.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(ctx, cfg.DBPath, logger)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}
	s.setupRoutes()
	return s, nil
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close releases the database. Start calls it itself; call it only when a
// Server is built but never started.
func (s *Server) Close() error {
	return s.db.Close()
}

// setupRoutes mounts:
//
//	GET    /                   welcome
//	GET    /api/users          current user        (auth)
//	POST   /api/users          register
//	GET    /api/courses        list
//	GET    /api/courses/{id}   get
//	POST   /api/courses        create              (auth)
//	PUT    /api/courses/{id}   update, owner only  (auth)
//	DELETE /api/courses/{id}   delete, owner only  (auth)
//
// Authentication is attached per route with r.With so the public reads
// never touch the user table.
func (s *Server) setupRoutes() {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(middleware.Recover(s.logger))
	s.router.Use(cors.New(cors.Options{
		AllowedOrigins: s.config.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		// the client follows Location after a create
		ExposedHeaders: []string{"Location"},
	}).Handler)

	s.router.NotFound(handler.HandleNotFound)
	s.router.MethodNotAllowed(handler.HandleMethodNotAllowed)

	v := validate.New()
	passwords := auth.NewPasswordService(s.config.BcryptCost)
	users := s.db.Users()

	userService := service.NewUserService(users, passwords, v, validate.UserRules, s.logger)
	courseService := service.NewCourseService(s.db.Courses(), v, validate.CourseRules, validate.CourseOptionalFields, s.logger)

	userHandler := handler.NewUserHandler(userService, s.logger)
	courseHandler := handler.NewCourseHandler(courseService, s.logger)

	requireUser := auth.RequireUser(auth.NewAuthenticator(users, passwords), s.logger)

	s.router.Get("/", handler.HandleWelcome)

	s.router.Route("/api", func(r chi.Router) {
		r.With(requireUser).Get("/users", userHandler.HandleCurrent)
		r.Post("/users", userHandler.HandleRegister)

		r.Get("/courses", courseHandler.HandleList)
		r.Get("/courses/{id}", courseHandler.HandleGet)
		r.With(requireUser).Post("/courses", courseHandler.HandleCreate)
		r.With(requireUser).Put("/courses/{id}", courseHandler.HandleUpdate)
		r.With(requireUser).Delete("/courses/{id}", courseHandler.HandleDelete)
	})
}

// Start serves until ctx is cancelled or SIGINT/SIGTERM arrives, then drains
// in-flight requests for up to ShutdownTimeout and closes the database.
func (s *Server) Start(ctx context.Context) error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         s.config.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  60 * time.Second,
		ErrorLog:     slog.NewLogLogger(s.logger.Handler(), slog.LevelWarn),
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		s.logger.Info("shutdown requested")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}
	return nil
}
