package usecase

import (
	authdomain "blog-backend/internal/auth/domain"
	authdto "blog-backend/internal/auth/dto"
)

// AuthUsecase defines the interface for authentication business logic
type AuthUsecase interface {
	// Register creates a new user with a hashed password
	Register(req *authdto.RegisterRequest) (*authdomain.User, error)

	// Login checks credentials and returns the user with a signed token
	Login(req *authdto.LoginRequest) (*authdto.LoginResponse, error)

	// GenerateToken issues a signed, time-limited token for the user
	GenerateToken(user *authdomain.User) (string, error)

	// VerifyToken checks signature and expiry, returning the embedded user ID
	VerifyToken(token string) (string, error)

	// ResolveUser verifies a token and loads the live user it refers to
	ResolveUser(token string) (*authdomain.User, error)
}
