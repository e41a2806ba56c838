package postgres

import (
	"context"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdulhamidaa6024/backend-afterschool/internal/model"
	"github.com/abdulhamidaa6024/backend-afterschool/internal/storage"
)

func openStoreForIntegrationTest(t *testing.T) *Store {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("AFTERSCHOOL_POSTGRES_TEST_DSN"))
	if dsn == "" {
		t.Skip("AFTERSCHOOL_POSTGRES_TEST_DSN is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s, err := NewDB(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.InitSchema(ctx))
	_, err = s.db.ExecContext(ctx, `TRUNCATE order_lessons, orders, lessons`)
	require.NoError(t, err)

	require.NoError(t, s.UpsertLessons(ctx, []model.Lesson{
		{Subject: "Mathematics", Location: "Hendon", Price: 100, Spaces: 1, Image: "/images/math.png"},
		{Subject: "Art", Location: "Golders Green", Price: 85, Spaces: 3, Image: "/images/art.png"},
		{Subject: "100% Drama", Location: "Colindale", Price: 87, Spaces: 5, Image: "/images/drama.png"},
	}))
	return s
}

func countOrders(t *testing.T, s *Store) int {
	t.Helper()
	var n int
	require.NoError(t, s.db.GetContext(context.Background(), &n, `SELECT COUNT(*) FROM orders`))
	return n
}

func TestStore_ListAndSearch_Integration(t *testing.T) {
	s := openStoreForIntegrationTest(t)
	ctx := context.Background()

	all, err := s.ListLessons(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "100% Drama", all[0].Subject)
	assert.Equal(t, "Art", all[1].Subject)
	assert.Equal(t, 100.0, all[2].Price)

	got, err := s.SearchLessons(ctx, "MATH")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Mathematics", got[0].Subject)

	got, err = s.SearchLessons(ctx, "100%")
	require.NoError(t, err)
	require.Len(t, got, 1)

	got, err = s.SearchLessons(ctx, "%")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestStore_SetLessonSpaces_Integration(t *testing.T) {
	s := openStoreForIntegrationTest(t)
	ctx := context.Background()

	all, err := s.ListLessons(ctx)
	require.NoError(t, err)

	require.NoError(t, s.SetLessonSpaces(ctx, all[0].ID, 9))
	assert.ErrorIs(t, s.SetLessonSpaces(ctx, uuid.NewString(), 1), model.ErrNotFound)

	after, err := s.ListLessons(ctx)
	require.NoError(t, err)
	assert.Equal(t, 9, after[0].Spaces)
	assert.Equal(t, all[0].Price, after[0].Price)
}

func TestStore_UpsertResetsSpaces_Integration(t *testing.T) {
	s := openStoreForIntegrationTest(t)
	ctx := context.Background()

	before, err := s.ListLessons(ctx)
	require.NoError(t, err)
	require.NoError(t, s.SetLessonSpaces(ctx, before[1].ID, 0))

	require.NoError(t, s.UpsertLessons(ctx, []model.Lesson{
		{Subject: "Art", Location: "Golders Green", Price: 85, Spaces: 3, Image: "/images/art.png"},
	}))

	after, err := s.ListLessons(ctx)
	require.NoError(t, err)
	require.Len(t, after, 3)
	assert.Equal(t, before[1].ID, after[1].ID)
	assert.Equal(t, 3, after[1].Spaces)
}

func TestStore_InTxRollsBack_Integration(t *testing.T) {
	s := openStoreForIntegrationTest(t)
	ctx := context.Background()

	all, err := s.ListLessons(ctx)
	require.NoError(t, err)
	art := all[1]

	err = s.InTx(ctx, func(tx storage.Tx) error {
		ok, err := tx.DecrementSpaces(ctx, art.ID)
		require.NoError(t, err)
		require.True(t, ok)
		return model.ErrCapacityExceeded
	})
	assert.ErrorIs(t, err, model.ErrCapacityExceeded)

	after, err := s.ListLessons(ctx)
	require.NoError(t, err)
	assert.Equal(t, art.Spaces, after[1].Spaces)
	assert.Equal(t, 0, countOrders(t, s))
}

func TestStore_ConcurrentDecrementNeverNegative_Integration(t *testing.T) {
	s := openStoreForIntegrationTest(t)
	ctx := context.Background()

	all, err := s.ListLessons(ctx)
	require.NoError(t, err)
	maths := all[2]
	require.Equal(t, 1, maths.Spaces)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
	)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.InTx(ctx, func(tx storage.Tx) error {
				ok, err := tx.DecrementSpaces(ctx, maths.ID)
				if err != nil {
					return err
				}
				if !ok {
					return model.ErrCapacityExceeded
				}
				return tx.InsertOrder(ctx, model.Order{
					ID:        uuid.NewString(),
					Name:      "Ada",
					Phone:     "0700",
					LessonIDs: []string{maths.ID},
					OrderDate: time.Now().UTC(),
				})
			})
			if err == nil {
				mu.Lock()
				success++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, success)
	after, err := s.ListLessons(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, after[2].Spaces)
	assert.Equal(t, 1, countOrders(t, s))
}
