package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"lecture-backend/config"
	"lecture-backend/controller"
	"lecture-backend/logging"
	"lecture-backend/middleware"
	"lecture-backend/storage"
	"lecture-backend/token"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, closeLog, err := logging.Init(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatal(err)
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	client, err := storage.Connect(connectCtx, cfg.MongoURI)
	if err != nil {
		logger.Fatalw("mongo connect", "err", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Errorw("mongo disconnect", "err", err)
		}
	}()

	db := client.Database(cfg.DBName)
	users := storage.NewUserStore(db)
	lectures := storage.NewLectureStore(db)
	tokens := token.NewService(cfg.JWTSecret, cfg.TokenTTL)

	authController := controller.NewAuthController(users, tokens, logger)
	lectureController := controller.NewLectureController(lectures, logger)
	authenticate := middleware.Authenticate(tokens, users, logger)

	router := chi.NewRouter()
	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)

	router.Route("/auth", func(r chi.Router) {
		r.Post("/register", authController.HandleRegister)
		r.Post("/login", authController.HandleLogin)
		r.With(authenticate).Get("/user", authController.HandleCurrentUser)
	})
	router.Route("/lectures", func(r chi.Router) {
		r.Use(authenticate)
		r.Post("/create", lectureController.HandleCreate)
		r.Get("/", lectureController.HandleList)
		r.Get("/{id}", lectureController.HandleGet)
		r.Put("/{id}", lectureController.HandleUpdate)
		r.Delete("/{id}", lectureController.HandleDelete)
	})

	server := &http.Server{Addr: cfg.HTTPAddr, Handler: router}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Errorw("server shutdown", "err", err)
		}
	}()

	logger.Infow("server started", "addr", cfg.HTTPAddr, "db", cfg.DBName)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalw("server stopped", "err", err)
	}
	logger.Infow("server stopped")
}
