package api

import (
	"net/http"
	"time"

	"github.com/VitaminP8/articlery/internal/article"
	"github.com/VitaminP8/articlery/internal/auth"
	"github.com/VitaminP8/articlery/internal/engagement"
	"github.com/VitaminP8/articlery/internal/subscription"
	"github.com/VitaminP8/articlery/internal/user"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// NewRouter собирает gin-роутер со всеми маршрутами и middleware
func NewRouter(
	articles article.ArticleStorage,
	users user.UserStorage,
	service *engagement.Service,
	manager subscription.Manager,
	log zerolog.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	router.Use(recoveryMiddleware(log))
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())
	router.Use(auth.Middleware())

	authHandler := NewAuthHandler(users)
	articleHandler := NewArticleHandler(articles, service)
	engagementHandler := NewEngagementHandler(service, manager)

	router.GET("/health", healthCheck)

	api := router.Group("/api")
	{
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)

		articles := api.Group("/articles")
		{
			articles.GET("", articleHandler.List)
			articles.POST("", articleHandler.Create)
			articles.GET("/:id", articleHandler.Get)
			articles.PUT("/:id", articleHandler.Update)
			articles.DELETE("/:id", articleHandler.Delete)
			articles.POST("/:id/like", articleHandler.Like)

			articles.GET("/:id/comments", engagementHandler.ListComments)
			articles.POST("/:id/comments", engagementHandler.CreateComment)
			articles.GET("/:id/comments/mine", engagementHandler.OwnComments)
			articles.GET("/:id/comments/stream", engagementHandler.StreamComments)

			articles.PUT("/:id/comments/:commentId", engagementHandler.EditComment)
			articles.DELETE("/:id/comments/:commentId", engagementHandler.DeleteComment)
			articles.POST("/:id/comments/:commentId/like", engagementHandler.LikeComment)
			articles.POST("/:id/comments/:commentId/replies", engagementHandler.CreateReply)

			articles.PUT("/:id/comments/:commentId/replies/:replyId", engagementHandler.EditReply)
			articles.DELETE("/:id/comments/:commentId/replies/:replyId", engagementHandler.DeleteReply)
			articles.POST("/:id/comments/:commentId/replies/:replyId/like", engagementHandler.LikeReply)
		}
	}

	return router
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "articlery",
	})
}

// recoveryMiddleware перехватывает паники
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// requestIDMiddleware присваивает каждому запросу id (или берет из заголовка)
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

// loggingMiddleware логирует запросы
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Str("request_id", c.GetString("request_id")).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// corsMiddleware обрабатывает CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
