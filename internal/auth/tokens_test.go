package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/reading-service/internal/domain"
)

type fakeTokenStore struct {
	getOrCreateFunc   func(ctx context.Context, accountID int64, key string) (string, error)
	findAccountIDFunc func(ctx context.Context, key string) (int64, error)
	deleteFunc        func(ctx context.Context, accountID int64) error
}

func (f *fakeTokenStore) GetOrCreate(ctx context.Context, accountID int64, key string) (string, error) {
	if f.getOrCreateFunc != nil {
		return f.getOrCreateFunc(ctx, accountID, key)
	}
	return "", errors.New("not implemented")
}

func (f *fakeTokenStore) FindAccountID(ctx context.Context, key string) (int64, error) {
	if f.findAccountIDFunc != nil {
		return f.findAccountIDFunc(ctx, key)
	}
	return 0, pgx.ErrNoRows
}

func (f *fakeTokenStore) DeleteByAccount(ctx context.Context, accountID int64) error {
	if f.deleteFunc != nil {
		return f.deleteFunc(ctx, accountID)
	}
	return nil
}

func memoryTokenStore() *fakeTokenStore {
	byAccount := map[int64]string{}
	byKey := map[string]int64{}
	return &fakeTokenStore{
		getOrCreateFunc: func(_ context.Context, accountID int64, key string) (string, error) {
			if existing, ok := byAccount[accountID]; ok {
				return existing, nil
			}
			byAccount[accountID] = key
			byKey[key] = accountID
			return key, nil
		},
		findAccountIDFunc: func(_ context.Context, key string) (int64, error) {
			if id, ok := byKey[key]; ok {
				return id, nil
			}
			return 0, pgx.ErrNoRows
		},
	}
}

func TestIssuer_RepeatedIssuanceReturnsSameKey(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer(memoryTokenStore(), NewFallbackSigner("secret", 0), zap.NewNop())

	first, err := issuer.Issue(context.Background(), 1)
	require.NoError(t, err)
	second, err := issuer.Issue(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, first, second)

	other, err := issuer.Issue(context.Background(), 2)
	require.NoError(t, err)
	require.NotEqual(t, first, other)
}

func TestIssuer_FallsBackWhenStorageFails(t *testing.T) {
	t.Parallel()

	store := &fakeTokenStore{
		getOrCreateFunc: func(context.Context, int64, string) (string, error) {
			return "", errors.New("database unavailable")
		},
	}
	signer := NewFallbackSigner("secret", 0)
	issuer := NewTokenIssuer(store, signer, zap.NewNop())

	token, err := issuer.Issue(context.Background(), 42)
	require.NoError(t, err)

	accountID, err := signer.Verify(token)
	require.NoError(t, err)
	require.EqualValues(t, 42, accountID)
}

func TestValidator_PersistedTokenPath(t *testing.T) {
	t.Parallel()

	store := memoryTokenStore()
	signer := NewFallbackSigner("secret", 0)
	accounts := &fakeAccountSource{accounts: []domain.Account{
		{ID: 1, Email: "reader@example.com", Username: "reader", Active: true},
	}}

	issuer := NewTokenIssuer(store, signer, zap.NewNop())
	token, err := issuer.Issue(context.Background(), 1)
	require.NoError(t, err)

	validator := NewTokenValidator(store, accounts, signer, nil)
	account, err := validator.Validate(context.Background(), token)
	require.NoError(t, err)
	require.EqualValues(t, 1, account.ID)
}

func TestValidator_FallbackTokenPath(t *testing.T) {
	t.Parallel()

	signer := NewFallbackSigner("secret", 0)
	accounts := &fakeAccountSource{accounts: []domain.Account{
		{ID: 5, Email: "mobile@example.com", Username: "mobile", Active: true},
	}}
	validator := NewTokenValidator(&fakeTokenStore{}, accounts, signer, nil)

	token, err := signer.Sign(5)
	require.NoError(t, err)

	account, err := validator.Validate(context.Background(), token)
	require.NoError(t, err)
	require.EqualValues(t, 5, account.ID)
}

func TestValidator_InactiveAccountRejected(t *testing.T) {
	t.Parallel()

	store := memoryTokenStore()
	signer := NewFallbackSigner("secret", 0)
	accounts := &fakeAccountSource{accounts: []domain.Account{
		{ID: 1, Email: "gone@example.com", Username: "gone", Active: false},
	}}

	issuer := NewTokenIssuer(store, signer, zap.NewNop())
	token, err := issuer.Issue(context.Background(), 1)
	require.NoError(t, err)

	validator := NewTokenValidator(store, accounts, signer, nil)
	_, err = validator.Validate(context.Background(), token)
	require.ErrorIs(t, err, ErrAuthFailed)

	fallback, err := signer.Sign(1)
	require.NoError(t, err)
	_, err = validator.Validate(context.Background(), fallback)
	require.ErrorIs(t, err, ErrAuthFailed)
}

func TestValidator_GarbageRejected(t *testing.T) {
	t.Parallel()

	validator := NewTokenValidator(&fakeTokenStore{}, &fakeAccountSource{}, NewFallbackSigner("secret", 0), nil)

	for _, token := range []string{"", "nope", "11111111-2222-3333-4444-555555555555"} {
		_, err := validator.Validate(context.Background(), token)
		require.ErrorIs(t, err, ErrAuthFailed)
	}
}

func TestValidator_FallbackForMissingAccount(t *testing.T) {
	t.Parallel()

	signer := NewFallbackSigner("secret", 0)
	validator := NewTokenValidator(&fakeTokenStore{}, &fakeAccountSource{}, signer, nil)

	token, err := signer.Sign(99)
	require.NoError(t, err)

	_, err = validator.Validate(context.Background(), token)
	require.ErrorIs(t, err, ErrAuthFailed)
}
