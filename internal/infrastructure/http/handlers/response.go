package handlers

import (
	"encoding/json"
	"net/http"
)

// writeSuccess sends {"status":"success", ...fields}.
func writeSuccess(w http.ResponseWriter, code int, fields map[string]interface{}) {
	body := map[string]interface{}{"status": "success"}
	for k, v := range fields {
		body[k] = v
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}

// writeFailed sends {"status":"failed","message":message}.
func writeFailed(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"status": "failed", "message": message})
}

// writeFailedList sends the failure shape with a message array, used when
// several validation problems are reported at once.
func writeFailedList(w http.ResponseWriter, code int, messages []string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"status": "failed", "message": messages})
}
