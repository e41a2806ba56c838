// Package memory is an in-process implementation of storage.Store for local
// runs and tests.
package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/abdulhamidaa6024/backend-afterschool/internal/model"
	"github.com/abdulhamidaa6024/backend-afterschool/internal/storage"
)

type Store struct {
	mu      sync.RWMutex
	ids     []string // insertion order
	lessons map[string]model.Lesson
	orders  []model.Order
}

var _ storage.Store = (*Store)(nil)

func New() *Store {
	return &Store{lessons: make(map[string]model.Lesson)}
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) Close() error {
	return nil
}

func (s *Store) ListLessons(ctx context.Context) ([]model.Lesson, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Lesson, 0, len(s.ids))
	for _, id := range s.ids {
		out = append(out, s.lessons[id])
	}
	return out, nil
}

func (s *Store) SearchLessons(ctx context.Context, query string) ([]model.Lesson, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(query)
	out := make([]model.Lesson, 0)
	for _, id := range s.ids {
		l := s.lessons[id]
		if strings.Contains(strings.ToLower(l.Subject), needle) ||
			strings.Contains(strings.ToLower(l.Location), needle) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *Store) SetLessonSpaces(ctx context.Context, id string, spaces int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.lessons[id]
	if !ok {
		return model.ErrNotFound
	}
	l.Spaces = spaces
	s.lessons[id] = l
	return nil
}

func (s *Store) UpsertLessons(ctx context.Context, lessons []model.Lesson) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, in := range lessons {
		if id, ok := s.findByKey(in.Subject, in.Location); ok {
			l := s.lessons[id]
			l.Price = in.Price
			l.Spaces = in.Spaces
			l.Image = in.Image
			s.lessons[id] = l
			continue
		}

		if in.ID == "" {
			in.ID = uuid.NewString()
		}
		s.lessons[in.ID] = in
		s.ids = append(s.ids, in.ID)
	}
	return nil
}

func (s *Store) findByKey(subject, location string) (string, bool) {
	for _, id := range s.ids {
		l := s.lessons[id]
		if l.Subject == subject && l.Location == location {
			return id, true
		}
	}
	return "", false
}

// Orders returns a snapshot of every committed order.
func (s *Store) Orders() []model.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Order, 0, len(s.orders))
	for _, o := range s.orders {
		o.LessonIDs = slices.Clone(o.LessonIDs)
		out = append(out, o)
	}
	return out
}

// InTx holds the write lock for the whole of fn, so transactions are
// serialized. Writes are undone in reverse order when fn fails.
func (s *Store) InTx(ctx context.Context, fn func(tx storage.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memTx{s: s}
	if err := fn(tx); err != nil {
		tx.rollback()
		return err
	}
	return nil
}

type memTx struct {
	s    *Store
	undo []func()
}

func (t *memTx) DecrementSpaces(ctx context.Context, lessonID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	l, ok := t.s.lessons[lessonID]
	if !ok || l.Spaces <= 0 {
		return false, nil
	}

	prev := l
	l.Spaces--
	t.s.lessons[lessonID] = l
	t.undo = append(t.undo, func() { t.s.lessons[lessonID] = prev })
	return true, nil
}

func (t *memTx) LessonExists(ctx context.Context, lessonID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	_, ok := t.s.lessons[lessonID]
	return ok, nil
}

func (t *memTx) InsertOrder(ctx context.Context, order model.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	order.LessonIDs = slices.Clone(order.LessonIDs)
	n := len(t.s.orders)
	t.s.orders = append(t.s.orders, order)
	t.undo = append(t.undo, func() { t.s.orders = t.s.orders[:n] })
	return nil
}

func (t *memTx) rollback() {
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.undo = nil
}
