// Package service implements the application's business logic.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"likewire/internal/config"
	"likewire/internal/email"
	"likewire/internal/middleware"
	"likewire/internal/models"
	"likewire/internal/observability"
	"likewire/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenIssuer   = "likewire-api"
	tokenAudience = "likewire-client"
)

// AuthService implements registration, credential authentication and bearer
// token issuance/resolution.
type AuthService struct {
	userRepo repository.UserRepository
	verifier email.Verifier
	secret   []byte
	method   jwt.SigningMethod
	lifetime time.Duration
}

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Username string
	Email    string
	FullName string
	Password string
}

// NewAuthService creates an AuthService from the application config.
func NewAuthService(userRepo repository.UserRepository, verifier email.Verifier, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		verifier: verifier,
		secret:   []byte(cfg.JWTSecret),
		method:   signingMethod(cfg.JWTAlgorithm),
		lifetime: cfg.TokenLifetime(),
	}
}

func signingMethod(name string) jwt.SigningMethod {
	switch name {
	case "HS384":
		return jwt.SigningMethodHS384
	case "HS512":
		return jwt.SigningMethodHS512
	default:
		return jwt.SigningMethodHS256
	}
}

// Register creates a new user after the address passes external verification.
// The password is stored only as a bcrypt hash.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)

	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, models.NewBadRequestError("Username, email, and password are required")
	}

	// Check for duplicates before the external verification call so known
	// conflicts don't spend verifier quota. Create still maps the unique
	// violation for the racing case.
	existing, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		if existing, err = s.userRepo.GetByUsername(ctx, in.Username); err != nil {
			return nil, err
		}
	}
	if existing != nil {
		observability.Registrations.WithLabelValues("conflict").Inc()
		return nil, models.NewConflictError("This username or email already registered")
	}

	if err := s.verifier.Verify(ctx, in.Email); err != nil {
		observability.Registrations.WithLabelValues("rejected").Inc()
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username: in.Username,
		Email:    in.Email,
		FullName: in.FullName,
		Password: string(hashed),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		observability.Registrations.WithLabelValues("conflict").Inc()
		return nil, err
	}

	observability.Registrations.WithLabelValues("created").Inc()
	return user, nil
}

// Authenticate verifies a username/password pair. Both "unknown user" and
// "wrong password" surface the same message so callers cannot probe which
// half was wrong; the distinction is kept in logs only.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		middleware.Logger.InfoContext(ctx, "authentication failed: unknown username")
		return nil, models.NewUnauthorizedError("Incorrect username or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		middleware.Logger.InfoContext(ctx, "authentication failed: password mismatch")
		return nil, models.NewUnauthorizedError("Incorrect username or password")
	}

	return user, nil
}

// IssueToken signs a bearer token for the user. A zero lifetime uses the
// configured default.
func (s *AuthService) IssueToken(user *models.User, lifetime time.Duration) (string, time.Time, error) {
	if len(s.secret) == 0 {
		return "", time.Time{}, fmt.Errorf("JWT secret not configured")
	}
	if lifetime <= 0 {
		lifetime = s.lifetime
	}

	now := time.Now()
	expiry := now.Add(lifetime)
	claims := jwt.MapClaims{
		"sub": user.Username,
		"iss": tokenIssuer,
		"aud": tokenAudience,
		"exp": expiry.Unix(),
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"jti": uuid.New().String(),
	}

	token, err := jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiry, nil
}

// ResolveToken verifies signature and expiry and resolves the subject to an
// existing user.
func (s *AuthService) ResolveToken(ctx context.Context, tokenString string) (*models.User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if token.Method.Alg() != s.method.Alg() {
			return nil, fmt.Errorf("unexpected signing method %q", token.Method.Alg())
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, models.NewUnauthorizedError("Could not validate credentials")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, models.NewUnauthorizedError("Could not validate credentials")
	}

	username, ok := claims["sub"].(string)
	if !ok || username == "" {
		return nil, models.NewUnauthorizedError("Could not validate credentials")
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Could not validate credentials")
	}

	return user, nil
}

// RequireActive rejects disabled accounts.
func (s *AuthService) RequireActive(user *models.User) error {
	if user.Disabled {
		return models.NewForbiddenError("Inactive user")
	}
	return nil
}
