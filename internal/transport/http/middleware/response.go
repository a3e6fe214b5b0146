package middleware

import (
	"encoding/json"
	"net/http"
)

// writeJSONError writes the standard error envelope. The code values match
// the ones handlers produce so clients see one vocabulary.
func writeJSONError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error":   code,
		"message": msg,
	})
}
