package http

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type userRow struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"` // "caregiver" or "patient"
	Password string `json:"password,omitempty"`
}

// UpsertUserHandler creates or updates an account. Caregivers use it
// to set up patient logins for the play-mode device.
func UpsertUserHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var u userRow
		if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if u.Username == "" || u.Password == "" {
			http.Error(w, "username and password required", http.StatusBadRequest)
			return
		}
		if u.Role != "caregiver" && u.Role != "patient" {
			http.Error(w, "role must be caregiver or patient", http.StatusBadRequest)
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			http.Error(w, "hash error", http.StatusInternalServerError)
			return
		}
		if u.ID == "" {
			u.ID = uuid.NewString()
		}
		_, err = db.ExecContext(r.Context(),
			`INSERT INTO users (id,username,role,pass_hash,created_at) VALUES ($1,$2,$3,$4,$5)
			 ON CONFLICT (username) DO UPDATE SET role=EXCLUDED.role, pass_hash=EXCLUDED.pass_hash`,
			u.ID, u.Username, u.Role, string(hash), time.Now().Unix())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		u.Password = ""
		_ = json.NewEncoder(w).Encode(u)
	}
}

func ListUsersHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := db.QueryContext(r.Context(), `SELECT id,username,role FROM users ORDER BY username`)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		defer rows.Close()
		out := []userRow{}
		for rows.Next() {
			var u userRow
			if err := rows.Scan(&u.ID, &u.Username, &u.Role); err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			out = append(out, u)
		}
		if err := rows.Err(); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(out)
	}
}
