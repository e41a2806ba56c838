// Package storage declares the persistence contracts shared by the Postgres
// and in-memory lesson/order stores.
package storage

import (
	"context"
	"errors"

	"github.com/abdulhamidaa6024/backend-afterschool/internal/model"
)

// ErrConflict reports a write conflict (serialization failure or deadlock).
// The whole transaction may be retried.
var ErrConflict = errors.New("storage write conflict")

// LessonStore holds the lesson catalog.
type LessonStore interface {
	ListLessons(ctx context.Context) ([]model.Lesson, error)
	// SearchLessons matches query case-insensitively as a substring of subject or location.
	SearchLessons(ctx context.Context, query string) ([]model.Lesson, error)
	// SetLessonSpaces returns model.ErrNotFound if no lesson has the id.
	SetLessonSpaces(ctx context.Context, id string, spaces int) error
	// UpsertLessons inserts lessons keyed by (subject, location), overwriting
	// price, spaces and image of existing ones.
	UpsertLessons(ctx context.Context, lessons []model.Lesson) error
}

// Tx is the set of operations available inside a booking transaction.
type Tx interface {
	// DecrementSpaces takes one seat if spaces > 0 and reports whether it did.
	DecrementSpaces(ctx context.Context, lessonID string) (bool, error)
	LessonExists(ctx context.Context, lessonID string) (bool, error)
	InsertOrder(ctx context.Context, order model.Order) error
}

// Transactor runs fn atomically: every write made through tx is committed
// when fn returns nil and discarded otherwise.
type Transactor interface {
	InTx(ctx context.Context, fn func(tx Tx) error) error
}

type Store interface {
	LessonStore
	Transactor
	Ping(ctx context.Context) error
	Close() error
}
