package api

import (
	authUsecase "blog-backend/internal/auth/usecase"
	postUsecase "blog-backend/internal/post/usecase"
	"blog-backend/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	authUsecase authUsecase.AuthUsecase
	postUsecase postUsecase.PostUsecase
	config      *config.Config
	log         *logrus.Logger
}

func NewHandler(authUc authUsecase.AuthUsecase, postUc postUsecase.PostUsecase, cfg *config.Config, log *logrus.Logger) *Handler {
	return &Handler{
		authUsecase: authUc,
		postUsecase: postUc,
		config:      cfg,
		log:         log,
	}
}

func (h *Handler) Start(addr string) error {
	if h.config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	r.Use(ErrorHandler(h.log, h.config))

	SetupRoutes(r, h.authUsecase, h.postUsecase)

	return r.Run(addr)
}
