package handler

import (
	"encoding/json"
	"net/http"
)

// errorResponse is the wire shape for all non-validation failures.
type errorResponse struct {
	Detail string `json:"detail"`
}

// fieldError carries field-level validation detail.
type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type validationErrorResponse struct {
	Detail []fieldError `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}

func writeValidationErrors(w http.ResponseWriter, errs []fieldError) {
	writeJSON(w, http.StatusUnprocessableEntity, validationErrorResponse{Detail: errs})
}
