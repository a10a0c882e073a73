package usecase

import (
	"errors"
	"time"

	authdomain "blog-backend/internal/auth/domain"
	authdto "blog-backend/internal/auth/dto"
	"blog-backend/internal/auth/repository"
	"blog-backend/pkg/apperror"
	"blog-backend/pkg/config"

	"github.com/golang-jwt/jwt/v5"
)

// authUsecase implements AuthUsecase interface
type authUsecase struct {
	userRepo repository.UserRepository
	config   *config.Config
}

// NewAuthUsecase creates a new instance of authUsecase
func NewAuthUsecase(userRepo repository.UserRepository, cfg *config.Config) AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		config:   cfg,
	}
}

func (u *authUsecase) Register(req *authdto.RegisterRequest) (*authdomain.User, error) {
	existing, err := u.userRepo.FindByEmail(req.Email)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		return nil, apperror.NewDuplicate("The provided email is already in use.")
	}

	hashedPassword, err := repository.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &authdomain.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashedPassword,
	}

	// The unique index on email is the backstop for concurrent registrations;
	// a duplicate slipping past the pre-check surfaces as gorm.ErrDuplicatedKey.
	if err := u.userRepo.Create(user); err != nil {
		return nil, err
	}

	return user, nil
}

func (u *authUsecase) Login(req *authdto.LoginRequest) (*authdto.LoginResponse, error) {
	user, err := u.userRepo.FindByEmail(req.Email)
	if err != nil {
		return nil, err
	}

	// Same failure for unknown email and wrong password
	if user == nil || !repository.CheckPasswordHash(req.Password, user.Password) {
		return nil, apperror.NewAuthentication("Invalid email or password")
	}

	token, err := u.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	return &authdto.LoginResponse{
		User:  user,
		Token: token,
	}, nil
}

func (u *authUsecase) GenerateToken(user *authdomain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(u.config.JWTExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(u.config.JWTSecret))
}

func (u *authUsecase) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(u.config.JWTSecret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", apperror.NewTokenExpired()
		}
		return "", apperror.NewTokenInvalid()
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", apperror.NewTokenInvalid()
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", apperror.NewTokenInvalid()
	}

	return userID, nil
}

func (u *authUsecase) ResolveUser(tokenString string) (*authdomain.User, error) {
	userID, err := u.VerifyToken(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := u.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	if user == nil {
		return nil, apperror.NewAuthentication("User belonging to this token no longer exists.")
	}

	return user, nil
}
