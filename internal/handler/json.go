package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
)

type response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func (h *Handler) readJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, resp response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) successResponse(w http.ResponseWriter, message string, data any) {
	h.writeJSON(w, http.StatusOK, response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func (h *Handler) errorResponse(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, response{
		Success: false,
		Message: message,
	})
}

func (h *Handler) badRequest(w http.ResponseWriter, message string) {
	h.errorResponse(w, http.StatusBadRequest, message)
}

func (h *Handler) notFound(w http.ResponseWriter, message string) {
	h.errorResponse(w, http.StatusNotFound, message)
}

func (h *Handler) unauthorized(w http.ResponseWriter, message string) {
	h.errorResponse(w, http.StatusUnauthorized, message)
}

func (h *Handler) internalError(w http.ResponseWriter, err error) {
	slog.Error("internal server error", "error", err)
	h.errorResponse(w, http.StatusInternalServerError, "internal server error")
}

// validationError turns validator failures into a single translated message.
// Any other error falls back to a generic bad request.
func (h *Handler) validationError(w http.ResponseWriter, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		h.badRequest(w, validationErrors[0].Translate(h.translator))
		return
	}
	h.badRequest(w, "invalid request")
}
