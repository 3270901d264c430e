package dto

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest payload for login. Login accepts email or username.
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token string `json:"token"`
}

// AccountSummary is the public view of an account.
type AccountSummary struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Premium  bool   `json:"premium"`
}

// ProfileResponse is returned by GET /me.
type ProfileResponse struct {
	Account AccountSummary `json:"account"`
	Points  int            `json:"points"`
}
