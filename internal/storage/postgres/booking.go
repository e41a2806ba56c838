package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/abdulhamidaa6024/backend-afterschool/internal/model"
	"github.com/abdulhamidaa6024/backend-afterschool/internal/storage"
)

const (
	sqlStateSerializationFailure = "40001"
	sqlStateDeadlockDetected     = "40P01"
)

// InTx runs fn inside a READ COMMITTED transaction. Row locks taken by the
// conditional decrements make concurrent bookings of the same lesson wait
// for each other and re-check spaces after the first one commits.
func (s *Store) InTx(ctx context.Context, fn func(tx storage.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return classify(fmt.Errorf("begin tx: %w", err))
	}

	if err := fn(&bookingTx{tx: tx}); err != nil {
		_ = tx.Rollback()
		return classify(err)
	}

	if err := tx.Commit(); err != nil {
		return classify(fmt.Errorf("commit tx: %w", err))
	}
	return nil
}

// classify marks retryable Postgres failures with storage.ErrConflict.
func classify(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case sqlStateSerializationFailure, sqlStateDeadlockDetected:
			return fmt.Errorf("%w: %w", storage.ErrConflict, err)
		}
	}
	return err
}

type bookingTx struct {
	tx *sqlx.Tx
}

func (b *bookingTx) DecrementSpaces(ctx context.Context, lessonID string) (bool, error) {
	res, err := b.tx.ExecContext(ctx,
		`UPDATE lessons SET spaces = spaces - 1 WHERE id = $1 AND spaces > 0`,
		lessonID,
	)
	if err != nil {
		return false, fmt.Errorf("decrement spaces: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n == 1, nil
}

func (b *bookingTx) LessonExists(ctx context.Context, lessonID string) (bool, error) {
	var exists bool
	err := b.tx.QueryRowxContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM lessons WHERE id = $1)`,
		lessonID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check lesson: %w", err)
	}
	return exists, nil
}

func (b *bookingTx) InsertOrder(ctx context.Context, order model.Order) error {
	_, err := b.tx.ExecContext(ctx,
		`INSERT INTO orders (id, name, phone, order_date) VALUES ($1, $2, $3, $4)`,
		order.ID, order.Name, order.Phone, order.OrderDate,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	rows := make([]interface{}, 0, len(order.LessonIDs))
	for i, id := range order.LessonIDs {
		rows = append(rows, goqu.Record{
			"order_id":  order.ID,
			"position":  i,
			"lesson_id": id,
		})
	}

	query, args, err := dialect.Insert(tableOrderLessons).Rows(rows...).Prepared(true).ToSQL()
	if err != nil {
		return fmt.Errorf("build order lessons query: %w", err)
	}
	if _, err := b.tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert order lessons: %w", err)
	}
	return nil
}
