package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/abdulhamidaa6024/backend-afterschool/internal/model"
)

// storageErr passes domain errors through and marks everything else as a
// storage failure.
func storageErr(op string, err error) error {
	if errors.Is(err, model.ErrInvalidInput) ||
		errors.Is(err, model.ErrNotFound) ||
		errors.Is(err, model.ErrCapacityExceeded) ||
		errors.Is(err, model.ErrStorageUnavailable) {
		return err
	}
	return fmt.Errorf("%s: %w: %w", op, model.ErrStorageUnavailable, err)
}

// parseID validates a lesson id and returns its canonical form.
func parseID(raw string) (string, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("malformed lesson id %q: %w", raw, model.ErrInvalidInput)
	}
	return id.String(), nil
}
