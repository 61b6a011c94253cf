package utils

import (
	"encoding/json"
	"net/http"
)

type Response struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

func RespondWithJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func RespondWithError(w http.ResponseWriter, status int, message string) {
	RespondWithJSON(w, status, Response{Message: message})
}

// RespondWithErrorCode attaches a stable machine-readable kind to the error
// body so clients can branch without parsing messages.
func RespondWithErrorCode(w http.ResponseWriter, status int, code, message string) {
	RespondWithJSON(w, status, Response{Code: code, Message: message})
}
