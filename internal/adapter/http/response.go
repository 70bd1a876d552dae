package http

import (
	"encoding/json"
	"net/http"

	apperror "github.com/sentinel/sentinel/pkg/error"
)

// Envelope is the body of every API response
type Envelope struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
	Code    string      `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, statusCode int, envelope Envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(envelope)
}

func writeSuccessResponse(w http.ResponseWriter, statusCode int, message string, data interface{}) {
	writeJSON(w, statusCode, Envelope{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

func writeErrorResponse(w http.ResponseWriter, statusCode int, code, message string) {
	writeJSON(w, statusCode, Envelope{
		Status:  false,
		Message: message,
		Data:    nil,
		Code:    code,
	})
}

// writeAppError renders err through the domain error mapping
func writeAppError(w http.ResponseWriter, err error) {
	appErr := apperror.MapError(err)
	writeErrorResponse(w, appErr.Status, appErr.Code, appErr.Message)
}

// decodeJSON decodes the request body into dst and writes a 400 on failure
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if err := decoder.Decode(dst); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return false
	}
	return true
}
