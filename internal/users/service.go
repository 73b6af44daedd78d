package users

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/sahana-dev/daansetu/pkg/common"
	"github.com/sahana-dev/daansetu/pkg/config"
	"github.com/sahana-dev/daansetu/pkg/logger"
	"github.com/sahana-dev/daansetu/pkg/middleware"
)

// Service handles account business logic
type Service struct {
	repo      RepositoryInterface
	jwtSecret string
	jwtExpiry time.Duration
}

// NewService creates a new users service
func NewService(repo RepositoryInterface, cfg *config.JWTConfig) *Service {
	expiry := 24 * time.Hour
	secret := ""
	if cfg != nil {
		secret = cfg.Secret
		if cfg.Expiration > 0 {
			expiry = time.Duration(cfg.Expiration) * time.Hour
		}
	}

	return &Service{
		repo:      repo,
		jwtSecret: secret,
		jwtExpiry: expiry,
	}
}

// Register creates a new account with all ledger counters at zero
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return nil, common.NewBadRequestError("email already registered", nil)
	} else if !errors.Is(err, ErrNotFound) {
		return nil, common.NewInternalError("failed to check email", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, common.NewInternalError("failed to hash password", err)
	}

	user := &User{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hash),
		Role:         middleware.RoleDonor,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		// The pre-check above races with concurrent registrations; the
		// unique index is the authority.
		if errors.Is(err, ErrEmailTaken) {
			return nil, common.NewBadRequestError("email already registered", err)
		}
		return nil, common.NewInternalError("failed to create user", err)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, common.NewInternalError("failed to issue token", err)
	}

	logger.WithContext(ctx).Info("user registered",
		zap.String("user_id", user.ID.String()))

	return &AuthResponse{Token: token, User: user}, nil
}

// Login authenticates a user and issues a JWT carrying the role claim
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, common.NewBadRequestError("invalid email or password", nil)
		}
		return nil, common.NewInternalError("failed to get user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, common.NewBadRequestError("invalid email or password", nil)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, common.NewInternalError("failed to issue token", err)
	}

	return &AuthResponse{Token: token, User: user}, nil
}

// GetProfile returns a user with their current ledger balances
func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (*User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, common.NewNotFoundError("user not found")
		}
		return nil, common.NewInternalError("failed to get user", err)
	}
	return user, nil
}

func (s *Service) issueToken(user *User) (string, error) {
	now := time.Now()
	claims := &middleware.Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
