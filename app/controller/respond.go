package controller

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"
	"strings"
)

// maxBodyBytes bounds every decoded request body
const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("❌ Error encoding response: %v", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{"success": false, "error": message})
}

func mediaType(r *http.Request) string {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return ""
	}
	return mt
}

// decodeJSON decodes a JSON body. An empty body leaves v untouched.
func decodeJSON(r *http.Request, v interface{}) error {
	err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(v)
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// decodeBeacon accepts either a JSON body or a form whose "data" field holds JSON,
// the shape navigator.sendBeacon posts with FormData
func decodeBeacon(r *http.Request, v interface{}) error {
	switch mediaType(r) {
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxBodyBytes); err != nil {
			return fmt.Errorf("invalid multipart body: %w", err)
		}
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return fmt.Errorf("invalid form body: %w", err)
		}
	default:
		return decodeJSON(r, v)
	}
	data := r.FormValue("data")
	if strings.TrimSpace(data) == "" {
		return fmt.Errorf("data field is required")
	}
	if err := json.Unmarshal([]byte(data), v); err != nil {
		return fmt.Errorf("invalid data field: %w", err)
	}
	return nil
}

// isForm reports whether the request carries an HTML form body
func isForm(r *http.Request) bool {
	mt := mediaType(r)
	return mt == "application/x-www-form-urlencoded" || mt == "multipart/form-data"
}

func methodNotAllowed(w http.ResponseWriter, handler string, r *http.Request) {
	log.Printf("❌ %s: Method not allowed: %s", handler, r.Method)
	http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
}
