package middleware

import (
	"encoding/json"
	"log"
	"net/http"

	"golang.org/x/crypto/bcrypt"
)

// AdminPasswordHeader carries the admin password
const AdminPasswordHeader = "X-Admin-Password"

// AdminGate checks the admin password against a bcrypt hash. With no hash configured
// the admin endpoints are disabled.
type AdminGate struct {
	hash []byte
}

// NewAdminGate creates an AdminGate for a bcrypt hash
func NewAdminGate(passwordHash string) *AdminGate {
	return &AdminGate{hash: []byte(passwordHash)}
}

// Enabled reports whether a password hash is configured
func (g *AdminGate) Enabled() bool {
	return len(g.hash) > 0
}

// Wrap protects next
func (g *AdminGate) Wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !g.Enabled() {
			writeGateError(w, http.StatusServiceUnavailable, "admin endpoints are disabled")
			return
		}
		password := r.Header.Get(AdminPasswordHeader)
		if password == "" {
			writeGateError(w, http.StatusUnauthorized, "admin password required")
			return
		}
		if err := bcrypt.CompareHashAndPassword(g.hash, []byte(password)); err != nil {
			log.Printf("⚠️  Rejected admin request %s %s cid=%s", r.Method, r.URL.Path, GetCorrelationID(r.Context()))
			writeGateError(w, http.StatusUnauthorized, "invalid admin password")
			return
		}
		next(w, r)
	}
}

func writeGateError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
