package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

// DefaultParentPassword guards the settings screen until PARENT_PASS_HASH is set.
const DefaultParentPassword = "Superdad"

const maxNameLen = 40

// ParentHash returns configured, or a fresh bcrypt hash of the default
// password when nothing is configured.
func ParentHash(configured string) ([]byte, error) {
	if configured != "" {
		return []byte(configured), nil
	}
	return bcrypt.GenerateFromPassword([]byte(DefaultParentPassword), bcrypt.DefaultCost)
}

// POST /api/auth/player  { "name": "...", "mascot": "unicorn" }
func PlayerLoginHandler(a *AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name   string `json:"name"`
			Mascot string `json:"mascot"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		name := strings.TrimSpace(req.Name)
		if name == "" || utf8.RuneCountInString(name) > maxNameLen {
			http.Error(w, "name must be 1-40 characters", http.StatusBadRequest)
			return
		}
		mascot := req.Mascot
		if mascot == "" {
			mascot = "unicorn"
		}
		tok, err := a.IssueJWT(name, RolePlayer, mascot)
		if err != nil {
			http.Error(w, "issue token", http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": tok, "name": name, "mascot": mascot})
	}
}

// POST /api/auth/parent  { "password": "..." }
func ParentLoginHandler(a *AuthService, hash []byte, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if bcrypt.CompareHashAndPassword(hash, []byte(req.Password)) != nil {
			log.Warn("parent login rejected", "remote", r.RemoteAddr)
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		tok, err := a.IssueJWT("parent", RoleParent, "")
		if err != nil {
			http.Error(w, "issue token", http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": tok})
	}
}
