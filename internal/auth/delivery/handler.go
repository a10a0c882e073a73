package delivery

import (
	authdto "blog-backend/internal/auth/dto"
	"blog-backend/internal/auth/usecase"
	"blog-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUsecase usecase.AuthUsecase
}

func NewAuthHandler(authUsecase usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
	}
}

// Register creates a new account.
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req authdto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(err)
		return
	}

	user, err := h.authUsecase.Register(&req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Created(c, user)
}

// Login checks credentials and returns the user with a token.
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req authdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(err)
		return
	}

	result, err := h.authUsecase.Login(&req)
	if err != nil {
		c.Error(err)
		return
	}

	response.OK(c, result)
}
