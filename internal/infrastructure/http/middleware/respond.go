package middleware

import (
	"encoding/json"
	"net/http"
)

// writeFailed sends the failure body shape shared with the handlers package:
// {"status":"failed","message":...}.
func writeFailed(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "failed", "message": message})
}
