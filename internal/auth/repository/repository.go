package repository

import authdomain "blog-backend/internal/auth/domain"

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create inserts a new user
	Create(user *authdomain.User) error

	// FindByEmail finds a user by email, returning nil when absent
	FindByEmail(email string) (*authdomain.User, error)

	// FindByID finds a user by ID, returning nil when absent
	FindByID(id string) (*authdomain.User, error)
}
