package router

import (
	"log/slog"

	"threadbox/internal/auth"
	"threadbox/internal/handlers"
	"threadbox/internal/middleware"
	"threadbox/internal/services"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, authService *auth.Service, comments *services.CommentService, reactions *services.ReactionService, logger *slog.Logger) {
	authHandler := handlers.NewAuthHandler(authService, logger)
	commentHandler := handlers.NewCommentHandler(comments, reactions, logger)

	// Public routes
	r.POST("/auth/register", authHandler.Register)
	r.POST("/auth/login", authHandler.Login)

	// Protected routes
	api := r.Group("/api")
	api.Use(middleware.AuthRequired(authService))
	{
		api.GET("/comments", commentHandler.List)
		api.POST("/comments", commentHandler.Create)
		api.PUT("/comments/:id", commentHandler.Update)
		api.DELETE("/comments/:id", commentHandler.Delete)

		api.POST("/comments/:id/like", commentHandler.Like)
		api.POST("/comments/:id/dislike", commentHandler.Dislike)
		api.GET("/comments/:id/likes", commentHandler.Likes)
	}
}
