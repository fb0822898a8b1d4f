package main

import (
	"log"
	"log/slog"
	"os"

	"threadbox/internal/auth"
	"threadbox/internal/config"
	"threadbox/internal/db"
	"threadbox/internal/middleware"
	"threadbox/internal/router"
	"threadbox/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	// Refuses to start without JWT_SECRET and DATABASE_URL.
	cfg := config.MustLoad()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// Initialize Database
	db.Init(cfg.DB.DatabaseURL)

	// Services
	authService := auth.NewService(db.DB, cfg.Auth)
	commentService := services.NewCommentService(db.DB)
	reactionService := services.NewReactionService(db.DB)

	// Initialize Gin
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(cors.Default())

	router.RegisterRoutes(r, authService, commentService, reactionService, logger)

	logger.Info("threadbox server starting", slog.String("addr", cfg.HTTP.Addr()))
	if err := r.Run(cfg.HTTP.Addr()); err != nil {
		log.Fatal(err)
	}
}
