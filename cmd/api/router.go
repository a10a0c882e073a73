package api

import (
	"blog-backend/internal/auth/delivery"
	authUsecase "blog-backend/internal/auth/usecase"
	postDelivery "blog-backend/internal/post/delivery"
	postUsecase "blog-backend/internal/post/usecase"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, authUc authUsecase.AuthUsecase, postUc postUsecase.PostUsecase) {
	authHandler := delivery.NewAuthHandler(authUc)
	postHandler := postDelivery.NewPostHandler(postUc)

	r.NoRoute(NoRouteHandler())

	api := r.Group("/api/v1")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// Post routes; the feed and single-post reads are public,
		// everything that writes or is user-scoped requires a bearer token
		posts := api.Group("/posts")
		{
			posts.GET("", postHandler.GetAllPosts)
			posts.GET("/me", delivery.AuthMiddleware(authUc), postHandler.GetMyPosts)
			posts.GET("/:id", postHandler.GetPostByID)
			posts.POST("", delivery.AuthMiddleware(authUc), postHandler.CreatePost)
			posts.PUT("/:id", delivery.AuthMiddleware(authUc), postHandler.UpdatePost)
			posts.DELETE("/:id", delivery.AuthMiddleware(authUc), postHandler.DeletePost)
		}
	}
}
