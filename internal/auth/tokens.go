package auth

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/reading-service/internal/domain"
)

// TokenStore is the persisted key-value capability backing device tokens.
type TokenStore interface {
	// GetOrCreate returns the existing key for the account, inserting the
	// provided candidate key when none exists yet.
	GetOrCreate(ctx context.Context, accountID int64, key string) (string, error)
	// FindAccountID resolves a key to its account, pgx.ErrNoRows when absent.
	FindAccountID(ctx context.Context, key string) (int64, error)
	// DeleteByAccount revokes the account's persisted token.
	DeleteByAccount(ctx context.Context, accountID int64) error
}

// TokenIssuer hands out opaque tokens for authenticated accounts.
type TokenIssuer struct {
	store  TokenStore
	signer *FallbackSigner
	logger *zap.Logger
}

// NewTokenIssuer builds an issuer.
func NewTokenIssuer(store TokenStore, signer *FallbackSigner, logger *zap.Logger) *TokenIssuer {
	return &TokenIssuer{store: store, signer: signer, logger: logger}
}

// Issue returns the account's persisted token key, creating it lazily.
// Repeated calls return the same key until it is revoked. When the
// persistence layer fails, a signed fallback token is issued instead;
// signing errors propagate as they indicate misconfiguration.
func (i *TokenIssuer) Issue(ctx context.Context, accountID int64) (string, error) {
	key, err := i.store.GetOrCreate(ctx, accountID, uuid.NewString())
	if err == nil {
		return key, nil
	}

	i.logger.Warn("device token storage unavailable; issuing signed fallback",
		zap.Int64("account_id", accountID), zap.Error(err))
	return i.signer.Sign(accountID)
}

// TokenValidator resolves a presented token string to an active account.
type TokenValidator struct {
	store    TokenStore
	accounts AccountSource
	signer   *FallbackSigner
	cache    *TokenCache
}

// NewTokenValidator builds a validator. The cache may be nil.
func NewTokenValidator(store TokenStore, accounts AccountSource, signer *FallbackSigner, cache *TokenCache) *TokenValidator {
	return &TokenValidator{store: store, accounts: accounts, signer: signer, cache: cache}
}

// Validate returns the account bound to the token or ErrAuthFailed.
// Persisted keys are checked first since they are the common case and
// cheaper to reject; fallback parsing runs only after that lookup fails,
// so a malformed string wastes at most one signature verification.
func (v *TokenValidator) Validate(ctx context.Context, token string) (*domain.Account, error) {
	if token == "" {
		return nil, ErrAuthFailed
	}

	if accountID, ok := v.cache.Get(ctx, token); ok {
		if account, err := v.activeAccount(ctx, accountID); err == nil {
			return account, nil
		}
	}

	accountID, err := v.store.FindAccountID(ctx, token)
	if err == nil {
		account, err := v.activeAccount(ctx, accountID)
		if err != nil {
			return nil, ErrAuthFailed
		}
		v.cache.Set(ctx, token, accountID)
		return account, nil
	}
	// Not found and storage trouble land here alike; the signed fallback
	// form is the remaining interpretation either way.
	accountID, err = v.signer.Verify(token)
	if err != nil {
		return nil, ErrAuthFailed
	}
	account, err := v.activeAccount(ctx, accountID)
	if err != nil {
		return nil, ErrAuthFailed
	}
	return account, nil
}

func (v *TokenValidator) activeAccount(ctx context.Context, id int64) (*domain.Account, error) {
	account, err := v.accounts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !account.CanAuthenticate() {
		return nil, ErrAuthFailed
	}
	return account, nil
}
