package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"

	"github.com/abdulhamidaa6024/backend-afterschool/internal/model"
	"github.com/abdulhamidaa6024/backend-afterschool/internal/storage"
)

const (
	DefaultBookingAttempts = 3

	retryInitialInterval = 50 * time.Millisecond
	retryMaxInterval     = time.Second
)

// Rejection reasons reported to the BookingRecorder.
const (
	ReasonInvalidInput = "invalid_input"
	ReasonNotFound     = "not_found"
	ReasonCapacity     = "capacity_exceeded"
	ReasonStorage      = "storage_unavailable"
)

type BookingRecorder interface {
	OrderPlaced(lessons int)
	OrderRejected(reason string)
	BookingConflict()
}

type nopRecorder struct{}

func (nopRecorder) OrderPlaced(int)      {}
func (nopRecorder) OrderRejected(string) {}
func (nopRecorder) BookingConflict()     {}

type BookingService struct {
	store       storage.Transactor
	recorder    BookingRecorder
	maxAttempts uint
	now         func() time.Time
}

func NewBookingService(store storage.Transactor, recorder BookingRecorder, maxAttempts int) *BookingService {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if maxAttempts < 1 {
		maxAttempts = DefaultBookingAttempts
	}
	return &BookingService{
		store:       store,
		recorder:    recorder,
		maxAttempts: uint(maxAttempts),
		now:         time.Now,
	}
}

// PlaceOrder books one seat per entry of req.LessonIDs, all or nothing.
//
// Each lesson is decremented with a conditional update inside one storage
// transaction. The first lesson that cannot be decremented aborts the
// transaction with model.ErrNotFound or model.ErrCapacityExceeded, so no
// seat is taken and no order is written. Write conflicts are retried with
// exponential backoff.
func (s *BookingService) PlaceOrder(ctx context.Context, req model.OrderRequest) (model.Order, error) {
	order, err := s.newOrder(req)
	if err != nil {
		s.recorder.OrderRejected(ReasonInvalidInput)
		return model.Order{}, err
	}

	// Deterministic lock order keeps two overlapping orders from deadlocking.
	lockOrder := slices.Clone(order.LessonIDs)
	slices.Sort(lockOrder)

	attempt := func() (model.Order, error) {
		err := s.store.InTx(ctx, func(tx storage.Tx) error {
			for _, id := range lockOrder {
				if err := reserveSeat(ctx, tx, id); err != nil {
					return err
				}
			}
			return tx.InsertOrder(ctx, order)
		})
		switch {
		case err == nil:
			return order, nil
		case errors.Is(err, storage.ErrConflict):
			s.recorder.BookingConflict()
			slog.Warn("booking write conflict", "order_id", order.ID, "error", err)
			return model.Order{}, err
		default:
			return model.Order{}, backoff.Permanent(err)
		}
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = retryInitialInterval
	b.MaxInterval = retryMaxInterval

	placed, err := backoff.Retry(ctx, attempt,
		backoff.WithBackOff(b),
		backoff.WithMaxTries(s.maxAttempts),
	)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrNotFound):
			s.recorder.OrderRejected(ReasonNotFound)
			return model.Order{}, err
		case errors.Is(err, model.ErrCapacityExceeded):
			s.recorder.OrderRejected(ReasonCapacity)
			return model.Order{}, err
		default:
			s.recorder.OrderRejected(ReasonStorage)
			return model.Order{}, storageErr("place order", err)
		}
	}

	s.recorder.OrderPlaced(len(placed.LessonIDs))
	slog.Info("order placed", "order_id", placed.ID, "lessons", len(placed.LessonIDs))
	return placed, nil
}

func reserveSeat(ctx context.Context, tx storage.Tx, lessonID string) error {
	ok, err := tx.DecrementSpaces(ctx, lessonID)
	if err != nil {
		return fmt.Errorf("reserve lesson %s: %w", lessonID, err)
	}
	if ok {
		return nil
	}

	exists, err := tx.LessonExists(ctx, lessonID)
	if err != nil {
		return fmt.Errorf("lookup lesson %s: %w", lessonID, err)
	}
	if !exists {
		return fmt.Errorf("lesson %s: %w", lessonID, model.ErrNotFound)
	}
	return fmt.Errorf("lesson %s: %w", lessonID, model.ErrCapacityExceeded)
}

func (s *BookingService) newOrder(req model.OrderRequest) (model.Order, error) {
	name := strings.TrimSpace(req.Name)
	phone := strings.TrimSpace(req.Phone)
	if name == "" || phone == "" {
		return model.Order{}, fmt.Errorf("name and phone are required: %w", model.ErrInvalidInput)
	}
	if len(req.LessonIDs) == 0 {
		return model.Order{}, fmt.Errorf("at least one lesson is required: %w", model.ErrInvalidInput)
	}

	ids := make([]string, 0, len(req.LessonIDs))
	for _, raw := range req.LessonIDs {
		id, err := parseID(raw)
		if err != nil {
			return model.Order{}, err
		}
		ids = append(ids, id)
	}

	return model.Order{
		ID:        uuid.NewString(),
		Name:      name,
		Phone:     phone,
		LessonIDs: ids,
		OrderDate: s.now().UTC(),
	}, nil
}
