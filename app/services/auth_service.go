package services

import (
	"context"
	"errors"
	"time"

	"github.com/shashiranjanraj/automart/app/models"
	"github.com/shashiranjanraj/automart/app/repositories"
	"github.com/shashiranjanraj/automart/pkg/apperr"
	"github.com/shashiranjanraj/automart/pkg/auth"
	"github.com/shashiranjanraj/automart/pkg/cache"
	"github.com/shashiranjanraj/automart/pkg/logger"
	"github.com/shashiranjanraj/automart/pkg/metrics"
)

var (
	// ErrInvalidCredentials is the single answer for an unknown username and
	// for a wrong password.
	ErrInvalidCredentials = apperr.Unauthenticated("Invalid credentials")

	// ErrInvalidRefresh hides why a refresh token was refused.
	ErrInvalidRefresh = apperr.Unauthenticated("Token is invalid or expired")

	// ErrLogout is the single answer for any unusable token on logout.
	ErrLogout = apperr.BadRequest("Token is invalid or expired")
)

type RegisterClientInput struct {
	Username    string `json:"username"     validate:"required,max=150"`
	Email       string `json:"email"        validate:"nullable,email,max=254"`
	Password    string `json:"password"     validate:"required,min=8,max=128"`
	FirstName   string `json:"first_name"   validate:"nullable,max=150"`
	LastName    string `json:"last_name"    validate:"nullable,max=150"`
	PhoneNumber string `json:"phone_number" validate:"nullable,max=32"`
	Age         *int   `json:"age"          validate:"nullable,between=15,80"`
}

type RegisterOwnerInput struct {
	Username    string `json:"username"     validate:"required,max=150"`
	Email       string `json:"email"        validate:"nullable,email,max=254"`
	Password    string `json:"password"     validate:"required,min=8,max=128"`
	FirstName   string `json:"first_name"   validate:"nullable,max=150"`
	LastName    string `json:"last_name"    validate:"nullable,max=150"`
	PhoneNumber string `json:"phone_number" validate:"nullable,max=32"`
	OwnerName   string `json:"owner_name"   validate:"required,max=32"`
	Location    string `json:"location"     validate:"nullable,max=64"`
}

// AuthResult is a user together with a freshly issued token pair.
type AuthResult struct {
	User   models.User
	Tokens auth.TokenPair
}

type AuthService struct {
	users  *repositories.UserRepository
	tokens *repositories.TokenRepository
	now    func() time.Time
}

func NewAuthService() *AuthService {
	return &AuthService{
		users:  repositories.NewUserRepository(),
		tokens: repositories.NewTokenRepository(),
		now:    time.Now,
	}
}

func (s *AuthService) RegisterClient(ctx context.Context, in RegisterClientInput) (AuthResult, error) {
	user := models.User{
		Username:    in.Username,
		Email:       in.Email,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		PhoneNumber: in.PhoneNumber,
		Role:        models.RoleClient,
		Client:      &models.ClientProfile{Age: age(in.Age)},
	}
	return s.register(ctx, &user, in.Password)
}

func (s *AuthService) RegisterOwner(ctx context.Context, in RegisterOwnerInput) (AuthResult, error) {
	user := models.User{
		Username:    in.Username,
		Email:       in.Email,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		PhoneNumber: in.PhoneNumber,
		Role:        models.RoleOwner,
		Owner:       &models.OwnerProfile{OwnerName: in.OwnerName, Location: in.Location},
	}
	return s.register(ctx, &user, in.Password)
}

func (s *AuthService) register(ctx context.Context, user *models.User, password string) (AuthResult, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return AuthResult{}, apperr.Internal(err)
	}
	user.Password = hash

	if err := s.users.Create(ctx, user); err != nil {
		return AuthResult{}, err
	}
	metrics.Registrations.WithLabelValues(user.Role).Inc()
	logger.WithCtx(ctx).Info("user registered", "user_id", user.ID, "role", user.Role)

	return s.issue(*user)
}

// Login authenticates username and password. Both failure modes return
// ErrInvalidCredentials after a full bcrypt comparison.
func (s *AuthService) Login(ctx context.Context, username, password string) (AuthResult, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil && !apperr.Is(err, apperr.KindNotFound) {
		return AuthResult{}, err
	}

	if !auth.CheckPasswordTiming(user.Password, password) {
		metrics.Logins.WithLabelValues("failure").Inc()
		return AuthResult{}, ErrInvalidCredentials
	}

	metrics.Logins.WithLabelValues("success").Inc()
	return s.issue(user)
}

func (s *AuthService) issue(user models.User) (AuthResult, error) {
	pair, err := auth.IssuePair(user.ID, user.Role)
	if err != nil {
		return AuthResult{}, apperr.Internal(err)
	}
	return AuthResult{User: user, Tokens: pair}, nil
}

// Refresh mints a new access token from a valid, unrevoked refresh token.
// The role is read from the current user row.
func (s *AuthService) Refresh(ctx context.Context, refresh string) (string, error) {
	claims, err := auth.ValidateRefresh(refresh)
	if err != nil {
		return "", ErrInvalidRefresh
	}

	revoked, err := s.IsRevoked(ctx, claims.ID)
	if err != nil {
		return "", err
	}
	if revoked {
		return "", ErrInvalidRefresh
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return "", ErrInvalidRefresh
		}
		return "", err
	}

	access, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return "", apperr.Internal(err)
	}
	return access, nil
}

// Logout adds the refresh token to the revocation ledger. Any token that
// cannot be revoked, including one already revoked, yields ErrLogout.
func (s *AuthService) Logout(ctx context.Context, refresh string) error {
	claims, err := auth.ValidateRefresh(refresh)
	if err != nil || claims.ID == "" || claims.ExpiresAt == nil {
		return ErrLogout
	}

	err = s.tokens.Revoke(ctx, &models.RevokedToken{
		JTI:       claims.ID,
		UserID:    claims.UserID,
		ExpiresAt: claims.ExpiresAt.Time,
	})
	if errors.Is(err, repositories.ErrAlreadyRevoked) {
		return ErrLogout
	}
	if err != nil {
		return err
	}

	if ttl := claims.ExpiresAt.Time.Sub(s.now()); ttl > 0 {
		if err := cache.Set(ctx, revokedKey(claims.ID), true, ttl); err != nil {
			logger.WithCtx(ctx).Warn("auth: cache revoked token", "error", err)
		}
	}
	metrics.TokensRevoked.Inc()
	return nil
}

// IsRevoked checks Redis first and falls back to the ledger when the key is
// absent or Redis cannot answer.
func (s *AuthService) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if exists, answered := cache.Has(ctx, revokedKey(jti)); answered && exists {
		return true, nil
	}
	return s.tokens.IsRevoked(ctx, jti)
}

// PurgeExpiredTokens trims the ledger of rows whose token has expired.
func (s *AuthService) PurgeExpiredTokens(ctx context.Context) (int64, error) {
	n, err := s.tokens.PurgeExpired(ctx, s.now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		logger.Info("auth: purged expired revoked tokens", "count", n)
	}
	return n, nil
}

func revokedKey(jti string) string { return "auth:revoked:" + jti }

func age(v *int) *uint8 {
	if v == nil {
		return nil
	}
	a := uint8(*v)
	return &a
}
