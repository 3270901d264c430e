package auth

import (
	"context"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/reading-service/internal/domain"
)

// fakeAccountSource serves accounts from memory with the same contract
// as the Postgres repository: case-insensitive match, ascending id.
type fakeAccountSource struct {
	accounts []domain.Account
}

func (f *fakeAccountSource) FindByEmail(_ context.Context, email string) ([]domain.Account, error) {
	var out []domain.Account
	for _, acc := range f.accounts {
		if strings.EqualFold(acc.Email, email) {
			out = append(out, acc)
		}
	}
	return out, nil
}

func (f *fakeAccountSource) FindByUsername(_ context.Context, username string) ([]domain.Account, error) {
	var out []domain.Account
	for _, acc := range f.accounts {
		if strings.EqualFold(acc.Username, username) {
			out = append(out, acc)
		}
	}
	return out, nil
}

func (f *fakeAccountSource) GetByID(_ context.Context, id int64) (*domain.Account, error) {
	for _, acc := range f.accounts {
		if acc.ID == id {
			found := acc
			return &found, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestResolver_ByEmailCaseInsensitive(t *testing.T) {
	t.Parallel()

	source := &fakeAccountSource{accounts: []domain.Account{
		{ID: 1, Email: "reader@example.com", Username: "reader", PasswordHash: mustHash(t, "secret"), Active: true},
	}}
	resolver := NewResolver(source)

	account, err := resolver.Resolve(context.Background(), "Reader@Example.COM", "secret")
	require.NoError(t, err)
	require.EqualValues(t, 1, account.ID)
}

func TestResolver_FallsBackToUsername(t *testing.T) {
	t.Parallel()

	source := &fakeAccountSource{accounts: []domain.Account{
		{ID: 7, Email: "reader@example.com", Username: "Reader", PasswordHash: mustHash(t, "secret"), Active: true},
	}}
	resolver := NewResolver(source)

	account, err := resolver.Resolve(context.Background(), "reader", "secret")
	require.NoError(t, err)
	require.EqualValues(t, 7, account.ID)
}

func TestResolver_DuplicateCandidates(t *testing.T) {
	t.Parallel()

	// Legacy rows that predate the uniqueness constraint: same email in
	// different cases, different passwords. The password decides which
	// candidate wins, not row order alone.
	source := &fakeAccountSource{accounts: []domain.Account{
		{ID: 1, Email: "dup@example.com", Username: "first", PasswordHash: mustHash(t, "alpha"), Active: true},
		{ID: 2, Email: "DUP@example.com", Username: "second", PasswordHash: mustHash(t, "beta"), Active: true},
	}}
	resolver := NewResolver(source)

	account, err := resolver.Resolve(context.Background(), "dup@example.com", "beta")
	require.NoError(t, err)
	require.EqualValues(t, 2, account.ID)

	// With the same password on both rows, the lowest id wins.
	source.accounts[1].PasswordHash = mustHash(t, "alpha")
	account, err = resolver.Resolve(context.Background(), "dup@example.com", "alpha")
	require.NoError(t, err)
	require.EqualValues(t, 1, account.ID)
}

func TestResolver_FailurePathsCollapse(t *testing.T) {
	t.Parallel()

	source := &fakeAccountSource{accounts: []domain.Account{
		{ID: 1, Email: "reader@example.com", Username: "reader", PasswordHash: mustHash(t, "secret"), Active: true},
		{ID: 2, Email: "inactive@example.com", Username: "ghost", PasswordHash: mustHash(t, "secret"), Active: false},
	}}
	resolver := NewResolver(source)

	for _, tc := range []struct {
		name                 string
		identifier, password string
	}{
		{"empty identifier", "", "secret"},
		{"empty password", "reader@example.com", ""},
		{"unknown identifier", "nobody@example.com", "secret"},
		{"wrong password", "reader@example.com", "wrong"},
		{"inactive account", "inactive@example.com", "secret"},
	} {
		_, err := resolver.Resolve(context.Background(), tc.identifier, tc.password)
		require.ErrorIs(t, err, ErrAuthFailed, tc.name)
	}
}
