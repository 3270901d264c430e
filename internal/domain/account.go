package domain

import "time"

// Account is the domain model for platform members.
type Account struct {
	ID           int64
	Email        string
	Username     string
	PasswordHash string
	Active       bool
	Premium      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CanAuthenticate reports whether the account may log in.
func (a *Account) CanAuthenticate() bool {
	return a != nil && a.Active
}
