package controller

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"

	"readora-admin/models"
)

// AuthController implements the single-credential admin login. Tokens live
// in process memory only; a restart logs everyone out.
// WARNING: this mirrors simple local/admin tooling and is NOT secure for
// production use.
type AuthController struct {
	adminID   string
	adminPass string

	mu     sync.Mutex
	tokens map[string]bool
}

// NewAuthController creates a new AuthController
func NewAuthController(adminID, adminPass string) *AuthController {
	if adminID == "" {
		adminID = "admin"
	}
	if adminPass == "" {
		adminPass = "admin"
	}
	return &AuthController{
		adminID:   adminID,
		adminPass: adminPass,
		tokens:    make(map[string]bool),
	}
}

// Login handles POST /admin/login
// Example request: {"id": "admin", "pass": "admin"}
// Example response: {"ok": true, "token": "3f1a..."}
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Login: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		log.Printf("❌ Login: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Login: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if req.ID != c.adminID || req.Pass != c.adminPass {
		log.Printf("❌ Login: Invalid credentials for id=%s", req.ID)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(models.LoginResponse{OK: false, Message: "Invalid credentials"})
		return
	}

	token, err := newToken()
	if err != nil {
		log.Printf("❌ Login: Failed to generate token: %v", err)
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	c.mu.Lock()
	c.tokens[token] = true
	c.mu.Unlock()

	log.Printf("✅ Login: Admin logged in")

	writeJSON(w, models.LoginResponse{OK: true, Token: token}, "Login")
}

// Logout handles POST /admin/logout. Unknown tokens are ignored.
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Logout: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		log.Printf("❌ Logout: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	token := bearerToken(r)
	c.mu.Lock()
	delete(c.tokens, token)
	c.mu.Unlock()

	log.Printf("✅ Logout: Session discarded")

	w.WriteHeader(http.StatusNoContent)
}

// Session handles GET /admin/session
// Example response: {"loggedIn": true}
func (c *AuthController) Session(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Session: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		log.Printf("❌ Session: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	token := bearerToken(r)
	c.mu.Lock()
	loggedIn := c.tokens[token]
	c.mu.Unlock()

	writeJSON(w, models.SessionResponse{LoggedIn: loggedIn}, "Session")
}

// bearerToken extracts the session token from the Authorization header
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	return strings.TrimPrefix(auth, "Bearer ")
}

func newToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
