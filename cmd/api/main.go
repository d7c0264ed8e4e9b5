package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/campdir/campdir-api/internal/config"
	"github.com/campdir/campdir-api/internal/handler"
	"github.com/campdir/campdir-api/internal/mailer"
	"github.com/campdir/campdir-api/internal/middleware"
	"github.com/campdir/campdir-api/internal/repository"
	"github.com/campdir/campdir-api/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := repository.NewDB(cfg.DatabaseDSN)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	smtp, err := mailer.NewSMTPMailer(cfg)
	if err != nil {
		slog.Error("smtp client setup failed", "error", err)
		os.Exit(1)
	}

	userRepo := repository.NewUserRepository(db)
	bootcampRepo := repository.NewBootcampRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	authService := service.NewAuthService(userRepo, smtp, cfg.JWTSecret, cfg.JWTExpiry, cfg.PublicURL)
	bootcampService := service.NewBootcampService(bootcampRepo)
	courseService := service.NewCourseService(courseRepo, bootcampRepo)
	reviewService := service.NewReviewService(reviewRepo, bootcampRepo, bootcampRepo)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.RateLimit(100, 10*time.Minute))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Mount("/api/v1", handler.Routes(handler.Deps{
		Auth:      handler.NewAuthHandler(authService, cfg.CookieExpiry, cfg.IsProduction()),
		Bootcamps: handler.NewBootcampHandler(bootcampService),
		Courses:   handler.NewCourseHandler(courseService),
		Reviews:   handler.NewReviewHandler(reviewService),
		JWTSecret: cfg.JWTSecret,
		Users:     userRepo,
	}))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
