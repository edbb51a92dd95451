package dto

// LoginRequest body for POST /api/auth/login. The shop runs on a single
// operator PIN, not per-user accounts.
type LoginRequest struct {
	PIN string `json:"pin"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"` // seconds
}
