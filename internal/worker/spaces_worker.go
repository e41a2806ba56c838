package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/abdulhamidaa6024/backend-afterschool/internal/model"
)

type LessonLister interface {
	List(ctx context.Context) ([]model.Lesson, error)
}

type SpacesRecorder interface {
	SetLessonSpaces(lessons []model.Lesson)
}

// SpacesWorker periodically publishes the seats left per lesson.
type SpacesWorker struct {
	catalog  LessonLister
	recorder SpacesRecorder
	interval time.Duration
	timeout  time.Duration
}

func NewSpacesWorker(catalog LessonLister, recorder SpacesRecorder, interval time.Duration) *SpacesWorker {
	return &SpacesWorker{
		catalog:  catalog,
		recorder: recorder,
		interval: interval,
		timeout:  5 * time.Second,
	}
}

// Start blocks until ctx is canceled.
func (w *SpacesWorker) Start(ctx context.Context) {
	slog.Info("starting spaces worker", "interval", w.interval)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.refreshLogged(ctx)
	for {
		select {
		case <-ctx.Done():
			slog.Info("spaces worker stopped")
			return
		case <-ticker.C:
			w.refreshLogged(ctx)
		}
	}
}

func (w *SpacesWorker) refreshLogged(ctx context.Context) {
	if err := w.refresh(ctx); err != nil && ctx.Err() == nil {
		slog.Error("spaces refresh failed", "error", err)
	}
}

func (w *SpacesWorker) refresh(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	lessons, err := w.catalog.List(ctx)
	if err != nil {
		return fmt.Errorf("list lessons: %w", err)
	}
	w.recorder.SetLessonSpaces(lessons)
	slog.Debug("lesson spaces refreshed", "lessons", len(lessons))
	return nil
}
