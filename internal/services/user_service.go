package services

import (
	"context"
	"strings"

	"video-backend/internal/apperrors"
	"video-backend/internal/auth"
	"video-backend/internal/cache"
	"video-backend/internal/models"
	"video-backend/internal/repositories"
)

type UserService struct {
	UserRepo *repositories.UserRepository
	JWT      *auth.JWTManager
}

func NewUserService(userRepo *repositories.UserRepository, jwt *auth.JWTManager) *UserService {
	return &UserService{UserRepo: userRepo, JWT: jwt}
}

// Signup registers a staff account and returns it logged in.
func (s *UserService) Signup(ctx context.Context, req *models.SignupRequest) (*models.LoginResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperrors.Validation("name is required")
	}
	if !strings.Contains(req.Email, "@") {
		return nil, apperrors.Validation("email is invalid")
	}
	if len(req.Password) < 8 {
		return nil, apperrors.Validation("password must be at least 8 characters")
	}
	role := req.Role
	switch role {
	case "":
		role = "clerk"
	case "clerk", "manager":
	default:
		return nil, apperrors.Validation("role must be 'clerk' or 'manager'")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.UserRepo.Create(ctx, req.Name, email, hash, role)
	if err != nil {
		return nil, err
	}

	token, err := s.JWT.GenerateToken(user)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return &models.LoginResponse{Token: token, User: user}, nil
}

// Login checks credentials and mints a token. A Redis hit on the credential
// hash skips the bcrypt comparison.
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, apperrors.Validation("email and password are required")
	}

	if userID, ok := cache.GetCachedAuth(ctx, email, req.Password); ok {
		user, err := s.UserRepo.Get(ctx, int(userID))
		if err == nil && user.IsActive {
			return s.issueToken(user)
		}
		cache.InvalidateAuth(ctx, email, req.Password)
	}

	user, err := s.UserRepo.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.IsKind(err, apperrors.KindNotFound) {
			return nil, apperrors.Validation("invalid email or password")
		}
		return nil, err
	}
	if !auth.VerifyPassword(user.PasswordHash, req.Password) {
		return nil, apperrors.Validation("invalid email or password")
	}
	if !user.IsActive {
		return nil, apperrors.InvalidState("account is deactivated", "user", int64(user.ID))
	}

	cache.CacheAuth(ctx, email, req.Password, int64(user.ID))
	return s.issueToken(user)
}

func (s *UserService) Get(ctx context.Context, userID int) (*models.User, error) {
	return s.UserRepo.Get(ctx, userID)
}

func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	return s.UserRepo.List(ctx)
}

func (s *UserService) issueToken(user *models.User) (*models.LoginResponse, error) {
	token, err := s.JWT.GenerateToken(user)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return &models.LoginResponse{Token: token, User: user}, nil
}
