package response

import (
	"encoding/json"
	"net/http"

	"github.com/futig/multimodal-rag/internal/entity"
)

// ErrorResponse is the error body of the query endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}

// JSON writes a JSON response
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		// Headers are already sent, nothing more can be reported to the client.
		_ = json.NewEncoder(w).Encode(data)
	}
}

// Error writes an {"error": message} response
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, ErrorResponse{Error: message})
}

// StatusError writes a {"status": "error", "message": message} response
func StatusError(w http.ResponseWriter, status int, message string) {
	JSON(w, status, entity.StatusErrorResponse{
		Status:  entity.IngestStatusError,
		Message: message,
	})
}

// Success writes a 200 OK response
func Success(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}
