package auth

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"
)

// LoginHandler checks credentials against the users table and issues a
// JWT. An admin account configured via env (username + bcrypt hash)
// works even on an empty database, so first-run setup is possible.
func LoginHandler(a *AuthService, db *sql.DB, adminUser, adminPassHash string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if req.Username == "" || req.Password == "" {
			http.Error(w, "username and password required", http.StatusBadRequest)
			return
		}

		role, err := authenticate(db, req.Username, req.Password, adminUser, adminPassHash)
		if err != nil {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		tok, err := a.IssueJWT(req.Username, role)
		if err != nil {
			http.Error(w, "issue token", http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": tok, "role": role})
	}
}

func authenticate(db *sql.DB, username, password, adminUser, adminPassHash string) (string, error) {
	if username == adminUser && adminPassHash != "" {
		if bcrypt.CompareHashAndPassword([]byte(adminPassHash), []byte(password)) == nil {
			return "admin", nil
		}
	}
	var role, hash string
	err := db.QueryRow(`SELECT role, pass_hash FROM users WHERE username=$1`, username).Scan(&role, &hash)
	if err != nil {
		return "", errors.New("unknown user")
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return "", errors.New("bad password")
	}
	return role, nil
}
