package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/abdulhamidaa6024/backend-afterschool/internal/model"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
	OrderID string `json:"orderId,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeServiceError maps the error taxonomy onto HTTP. Storage details stay
// in the log; the client only sees internalMsg.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, internalMsg string) {
	switch {
	case errors.Is(err, model.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "Invalid input")
	case errors.Is(err, model.ErrCapacityExceeded):
		writeError(w, http.StatusBadRequest, "Some lessons are fully booked")
	case errors.Is(err, model.ErrNotFound):
		writeError(w, http.StatusNotFound, "Lesson not found")
	default:
		slog.Error(internalMsg, "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, internalMsg)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst)
}
