package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/HadiRehman/NLSA-USA/internal/constants"
	"github.com/HadiRehman/NLSA-USA/internal/domain"

	"github.com/rs/zerolog"
)

type messageResponse struct {
	Message string   `json:"message"`
	Missing []string `json:"missing,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, messageResponse{Message: message})
}

// respondError maps domain errors onto status codes. Anything unrecognised
// is logged and reported as a 500 without detail.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		respondJSON(w, http.StatusBadRequest, messageResponse{Message: ve.Reason, Missing: ve.Fields})
	case errors.Is(err, domain.ErrNotFound):
		respondMessage(w, http.StatusNotFound, "Record not found")
	case errors.Is(err, domain.ErrDuplicate):
		respondMessage(w, http.StatusBadRequest, "Username already exists")
	case errors.Is(err, domain.ErrInvalidCredentials):
		respondMessage(w, http.StatusUnauthorized, "Invalid Username or Password")
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		respondMessage(w, http.StatusInternalServerError, "Internal Server Error")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, constants.MaxRequestBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return &domain.ValidationError{Reason: fmt.Sprintf("invalid request body: %v", err)}
	}
	return nil
}

func respondFile(w http.ResponseWriter, contentType, disposition, filename string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
