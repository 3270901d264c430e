package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/reading-service/internal/auth"
	"github.com/spec-kit/reading-service/internal/config"
	"github.com/spec-kit/reading-service/internal/domain"
	"github.com/spec-kit/reading-service/internal/repository"
	apperrors "github.com/spec-kit/reading-service/pkg/util"
)

// AuthService coordinates registration, login, and token issuance.
type AuthService struct {
	accounts   repository.AccountRepository
	tokens     repository.DeviceTokenRepository
	resolver   *auth.Resolver
	issuer     *auth.TokenIssuer
	validator  *auth.TokenValidator
	cache      *auth.TokenCache
	bcryptCost int
	logger     *zap.Logger
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	AccountRepo repository.AccountRepository
	TokenRepo   repository.DeviceTokenRepository
	TokenCache  *auth.TokenCache
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies, logger *zap.Logger) *AuthService {
	signer := auth.NewFallbackSigner(cfg.Auth.TokenSecret, cfg.Auth.FallbackMaxAge())
	return &AuthService{
		accounts:   deps.AccountRepo,
		tokens:     deps.TokenRepo,
		resolver:   auth.NewResolver(deps.AccountRepo),
		issuer:     auth.NewTokenIssuer(deps.TokenRepo, signer, logger),
		validator:  auth.NewTokenValidator(deps.TokenRepo, deps.AccountRepo, signer, deps.TokenCache),
		cache:      deps.TokenCache,
		bcryptCost: cfg.Auth.BcryptCost,
		logger:     logger,
	}
}

// Register creates a new account and issues its first token.
// Uniqueness of email and username is enforced at write time by the
// storage layer; a violation surfaces as a conflict.
func (s *AuthService) Register(ctx context.Context, email, username, password string) (*domain.Account, string, error) {
	email = strings.TrimSpace(email)
	username = strings.TrimSpace(username)
	if email == "" || username == "" || password == "" {
		return nil, "", apperrors.NewValidationError("email, username, password required", nil)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", err
	}

	account := &domain.Account{
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		Active:       true,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, "", apperrors.NewConflict("email or username already registered", nil)
		}
		return nil, "", err
	}

	token, err := s.issuer.Issue(ctx, account.ID)
	if err != nil {
		return nil, "", err
	}
	return account, token, nil
}

// Login authenticates by email or username and returns a device token.
func (s *AuthService) Login(ctx context.Context, login, password string) (*domain.Account, string, error) {
	account, err := s.resolver.Resolve(ctx, login, password)
	if err != nil {
		if errors.Is(err, auth.ErrAuthFailed) {
			return nil, "", apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", err
	}

	token, err := s.issuer.Issue(ctx, account.ID)
	if err != nil {
		return nil, "", err
	}
	return account, token, nil
}

// Logout revokes the account's persisted token and evicts the cache
// entry for the presented credential.
func (s *AuthService) Logout(ctx context.Context, accountID int64, token string) error {
	if err := s.tokens.DeleteByAccount(ctx, accountID); err != nil {
		return err
	}
	s.cache.Delete(ctx, token)
	return nil
}

// Validator exposes the token validator for middleware usage.
func (s *AuthService) Validator() *auth.TokenValidator {
	return s.validator
}
