package service

import (
	"context"
	"log/slog"

	"github.com/abdulhamidaa6024/backend-afterschool/internal/model"
)

const seedSpaces = 5

// SeedLessons returns the demo catalog restored by Reset.
func SeedLessons() []model.Lesson {
	return []model.Lesson{
		{Subject: "Mathematics", Location: "Hendon", Price: 100, Spaces: seedSpaces, Image: "/images/math.png"},
		{Subject: "English", Location: "Colindale", Price: 90, Spaces: seedSpaces, Image: "/images/english.png"},
		{Subject: "Science", Location: "Brent Cross", Price: 110, Spaces: seedSpaces, Image: "/images/science.png"},
		{Subject: "Art", Location: "Golders Green", Price: 85, Spaces: seedSpaces, Image: "/images/art.png"},
		{Subject: "Music", Location: "Hendon", Price: 95, Spaces: seedSpaces, Image: "/images/music.png"},
		{Subject: "Physical Education", Location: "Colindale", Price: 80, Spaces: seedSpaces, Image: "/images/pe.png"},
		{Subject: "Computer Science", Location: "Brent Cross", Price: 120, Spaces: seedSpaces, Image: "/images/cs.png"},
		{Subject: "History", Location: "Golders Green", Price: 88, Spaces: seedSpaces, Image: "/images/history.png"},
		{Subject: "Geography", Location: "Hendon", Price: 92, Spaces: seedSpaces, Image: "/images/geography.png"},
		{Subject: "Drama", Location: "Colindale", Price: 87, Spaces: seedSpaces, Image: "/images/drama.png"},
	}
}

// Reset upserts the seed catalog by (subject, location), forcing seat counts
// back to their seed values. Demo behaviour: bookings made before a restart
// no longer hold seats afterwards.
func (s *CatalogService) Reset(ctx context.Context) error {
	seed := SeedLessons()
	if err := s.store.UpsertLessons(ctx, seed); err != nil {
		return storageErr("reset lessons", err)
	}
	slog.Info("lessons reset to initial spaces", "count", len(seed))
	return nil
}
