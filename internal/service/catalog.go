package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/abdulhamidaa6024/backend-afterschool/internal/model"
	"github.com/abdulhamidaa6024/backend-afterschool/internal/storage"
)

type CatalogService struct {
	store storage.LessonStore
}

func NewCatalogService(store storage.LessonStore) *CatalogService {
	return &CatalogService{store: store}
}

func (s *CatalogService) List(ctx context.Context) ([]model.Lesson, error) {
	lessons, err := s.store.ListLessons(ctx)
	if err != nil {
		return nil, storageErr("list lessons", err)
	}
	return lessons, nil
}

func (s *CatalogService) Search(ctx context.Context, query string) ([]model.Lesson, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("search query is required: %w", model.ErrInvalidInput)
	}

	lessons, err := s.store.SearchLessons(ctx, query)
	if err != nil {
		return nil, storageErr("search lessons", err)
	}
	return lessons, nil
}

// UpdateSpaces sets the absolute seat count of one lesson.
func (s *CatalogService) UpdateSpaces(ctx context.Context, id string, spaces int) error {
	lessonID, err := parseID(id)
	if err != nil {
		return err
	}
	if spaces < 0 {
		return fmt.Errorf("spaces must be non-negative: %w", model.ErrInvalidInput)
	}

	if err := s.store.SetLessonSpaces(ctx, lessonID, spaces); err != nil {
		return storageErr("update lesson spaces", err)
	}
	return nil
}
