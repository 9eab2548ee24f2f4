package controller

import (
	"log"
	"net/http"

	"bar-council-campaign/config"
)

// FirebaseController exposes the public Firebase web app settings
type FirebaseController struct {
	cfg config.FirebaseConfig
}

// NewFirebaseController creates a new FirebaseController
func NewFirebaseController(cfg config.FirebaseConfig) *FirebaseController {
	return &FirebaseController{cfg: cfg}
}

// Config handles GET /api/firebase-config
// Example response:
//
//	{
//	  "apiKey": "...",
//	  "authDomain": "bar-council.firebaseapp.com",
//	  "projectId": "bar-council",
//	  "storageBucket": "bar-council.appspot.com",
//	  "messagingSenderId": "1234",
//	  "appId": "1:1234:web:abcd",
//	  "vapidKey": "..."
//	}
func (c *FirebaseController) Config(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "FirebaseConfig", r)
		return
	}
	if c.cfg.APIKey == "" || c.cfg.ProjectID == "" {
		log.Printf("⚠️  FirebaseConfig: FIREBASE_API_KEY or FIREBASE_PROJECT_ID not set")
		writeJSONError(w, http.StatusServiceUnavailable, "Firebase is not configured")
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=3600")
	writeJSON(w, http.StatusOK, map[string]string{
		"apiKey":            c.cfg.APIKey,
		"authDomain":        c.cfg.ProjectID + ".firebaseapp.com",
		"projectId":         c.cfg.ProjectID,
		"storageBucket":     c.cfg.ProjectID + ".appspot.com",
		"messagingSenderId": c.cfg.MessagingSenderID,
		"appId":             c.cfg.AppID,
		"vapidKey":          c.cfg.VAPIDKey,
	})
}
