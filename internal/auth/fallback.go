package auth

import (
	"strconv"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// FallbackPurpose separates fallback tokens from any other signed material
// produced with the same secret.
const FallbackPurpose = "mobile-auth-fallback"

// DefaultFallbackMaxAge is how long a signed fallback token stays valid.
const DefaultFallbackMaxAge = 30 * 24 * time.Hour

// FallbackSigner issues and verifies self-contained signed tokens used
// when persistent token storage is unavailable. Expiry is enforced at
// verification time from the embedded issuance timestamp.
type FallbackSigner struct {
	secret []byte
	maxAge time.Duration
	now    func() time.Time
}

// NewFallbackSigner builds a signer. A non-positive maxAge falls back to
// the 30-day default.
func NewFallbackSigner(secret string, maxAge time.Duration) *FallbackSigner {
	if maxAge <= 0 {
		maxAge = DefaultFallbackMaxAge
	}
	return &FallbackSigner{secret: []byte(secret), maxAge: maxAge, now: time.Now}
}

type fallbackClaims struct {
	jwt.RegisteredClaims
}

// Sign produces a signed token bound to the account id. Signing failures
// indicate a configuration error and propagate to the caller.
func (s *FallbackSigner) Sign(accountID int64) (string, error) {
	claims := fallbackClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  strconv.FormatInt(accountID, 10),
			Audience: jwt.ClaimStrings{FallbackPurpose},
			IssuedAt: jwt.NewNumericDate(s.now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks signature, purpose, and age, returning the bound account
// id. Any defect collapses to ErrAuthFailed.
func (s *FallbackSigner) Verify(tokenStr string) (int64, error) {
	claims := &fallbackClaims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrAuthFailed
		}
		return s.secret, nil
	}, jwt.WithAudience(FallbackPurpose))
	if err != nil || !parsed.Valid {
		return 0, ErrAuthFailed
	}

	if claims.IssuedAt == nil || s.now().Sub(claims.IssuedAt.Time) > s.maxAge {
		return 0, ErrAuthFailed
	}

	accountID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || accountID <= 0 {
		return 0, ErrAuthFailed
	}
	return accountID, nil
}
