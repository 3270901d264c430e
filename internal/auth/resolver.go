package auth

import (
	"context"
	"errors"

	"github.com/spec-kit/reading-service/internal/domain"
)

// ErrAuthFailed is the single outcome for every authentication failure:
// unknown identifier, wrong password, inactive account. Callers must not
// surface which path failed.
var ErrAuthFailed = errors.New("authentication failed")

// AccountSource is the read-only account lookup capability the resolver
// and validator need. Find methods match case-insensitively and return
// rows ordered by ascending id.
type AccountSource interface {
	FindByEmail(ctx context.Context, email string) ([]domain.Account, error)
	FindByUsername(ctx context.Context, username string) ([]domain.Account, error)
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
}

// Resolver authenticates an account by email or username plus password.
type Resolver struct {
	accounts AccountSource
}

// NewResolver builds a resolver over the given account source.
func NewResolver(accounts AccountSource) *Resolver {
	return &Resolver{accounts: accounts}
}

// Resolve returns the matching active account or ErrAuthFailed.
//
// Case-insensitive matching can return more than one row in data sets
// that predate the uniqueness constraint, so the password is checked
// against every candidate, oldest id first, rather than assuming the
// first row is correct.
func (r *Resolver) Resolve(ctx context.Context, identifier, password string) (*domain.Account, error) {
	if identifier == "" || password == "" {
		return nil, ErrAuthFailed
	}

	candidates, err := r.accounts.FindByEmail(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		candidates, err = r.accounts.FindByUsername(ctx, identifier)
		if err != nil {
			return nil, err
		}
	}

	for i := range candidates {
		candidate := &candidates[i]
		if !candidate.CanAuthenticate() {
			continue
		}
		if err := ComparePassword(candidate.PasswordHash, password); err == nil {
			return candidate, nil
		}
	}
	return nil, ErrAuthFailed
}
