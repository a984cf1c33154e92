package models

// LoginRequest represents the admin login form.
// Example: {"id": "admin", "pass": "admin"}
type LoginRequest struct {
	ID   string `json:"id"`
	Pass string `json:"pass"`
}

// LoginResponse carries the session token on success
type LoginResponse struct {
	OK      bool   `json:"ok"`
	Token   string `json:"token,omitempty"`
	Message string `json:"message,omitempty"`
}

// SessionResponse reports whether a session token is still valid
type SessionResponse struct {
	LoggedIn bool `json:"loggedIn"`
}
