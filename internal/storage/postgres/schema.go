package postgres

import (
	"context"
	"fmt"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS lessons (
    id UUID PRIMARY KEY,
    subject TEXT NOT NULL,
    location TEXT NOT NULL,
    price NUMERIC(10,2) NOT NULL CHECK (price >= 0),
    spaces INTEGER NOT NULL CHECK (spaces >= 0),
    image TEXT NOT NULL DEFAULT '',
    UNIQUE (subject, location)
);

CREATE TABLE IF NOT EXISTS orders (
    id UUID PRIMARY KEY,
    name TEXT NOT NULL,
    phone TEXT NOT NULL,
    order_date TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS order_lessons (
    order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    lesson_id UUID NOT NULL REFERENCES lessons(id),
    PRIMARY KEY (order_id, position)
);

CREATE INDEX IF NOT EXISTS idx_order_lessons_lesson_id ON order_lessons(lesson_id);
`

func (s *Store) InitSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to init schema: %w", err)
	}
	return nil
}
