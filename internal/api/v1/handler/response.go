package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"coursehub/internal/api/v1/dto"
	"coursehub/internal/storage"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, message string, err error) {
	resp := dto.MessageResponseDTO{Message: message}
	if err != nil {
		resp.Error = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeServiceError reports a failed service call. Storage failures are
// logged with their cause; the client only sees the message.
func writeServiceError(w http.ResponseWriter, logger zerolog.Logger, message string, err error) {
	logger.Error().Err(err).Msg(message)
	if errors.Is(err, storage.ErrStorage) {
		writeMessage(w, http.StatusInternalServerError, message, nil)
		return
	}
	writeMessage(w, http.StatusInternalServerError, message, err)
}

// pathID parses the named path wildcard as a positive integer ID.
func pathID(r *http.Request, name string) (int, error) {
	raw := r.PathValue(name)
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return id, nil
}

// decodeAndValidate decodes the JSON request body into dst and validates it.
// On failure it writes a 400 response and returns false.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, validate *validator.Validate, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON payload", err)
		return false
	}
	if err := validate.Struct(dst); err != nil {
		writeMessage(w, http.StatusBadRequest, "Validation failed", err)
		return false
	}
	return true
}
