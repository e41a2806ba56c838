package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/google/uuid"

	"github.com/abdulhamidaa6024/backend-afterschool/internal/model"
)

const (
	tableLessons      = "lessons"
	tableOrderLessons = "order_lessons"

	colID       = "id"
	colSubject  = "subject"
	colLocation = "location"
	colPrice    = "price"
	colSpaces   = "spaces"
	colImage    = "image"
)

var (
	dialect = goqu.Dialect("postgres")

	lessonColumns = []interface{}{colID, colSubject, colLocation, colPrice, colSpaces, colImage}

	likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
)

type lessonRow struct {
	ID       string  `db:"id"`
	Subject  string  `db:"subject"`
	Location string  `db:"location"`
	Price    float64 `db:"price"`
	Spaces   int     `db:"spaces"`
	Image    string  `db:"image"`
}

func (r lessonRow) toModel() model.Lesson {
	return model.Lesson{
		ID:       r.ID,
		Subject:  r.Subject,
		Location: r.Location,
		Price:    r.Price,
		Spaces:   r.Spaces,
		Image:    r.Image,
	}
}

func (s *Store) ListLessons(ctx context.Context) ([]model.Lesson, error) {
	ds := dialect.From(tableLessons).
		Select(lessonColumns...).
		Order(goqu.C(colSubject).Asc(), goqu.C(colLocation).Asc())

	return s.selectLessons(ctx, ds)
}

func (s *Store) SearchLessons(ctx context.Context, query string) ([]model.Lesson, error) {
	ds := dialect.From(tableLessons).
		Select(lessonColumns...).
		Where(searchCondition(query)).
		Order(goqu.C(colSubject).Asc(), goqu.C(colLocation).Asc())

	return s.selectLessons(ctx, ds)
}

// searchCondition matches query literally; LIKE wildcards in it are escaped.
func searchCondition(query string) goqu.Expression {
	pattern := "%" + likeEscaper.Replace(query) + "%"
	return goqu.Or(
		goqu.C(colSubject).ILike(pattern),
		goqu.C(colLocation).ILike(pattern),
	)
}

func (s *Store) selectLessons(ctx context.Context, ds *goqu.SelectDataset) ([]model.Lesson, error) {
	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build lessons query: %w", err)
	}

	var rows []lessonRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("query lessons: %w", err)
	}

	lessons := make([]model.Lesson, 0, len(rows))
	for _, r := range rows {
		lessons = append(lessons, r.toModel())
	}
	return lessons, nil
}

func (s *Store) SetLessonSpaces(ctx context.Context, id string, spaces int) error {
	query, args, err := dialect.Update(tableLessons).
		Set(goqu.Record{colSpaces: spaces}).
		Where(goqu.C(colID).Eq(id)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update query: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update lesson spaces: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (s *Store) UpsertLessons(ctx context.Context, lessons []model.Lesson) error {
	if len(lessons) == 0 {
		return nil
	}

	rows := make([]interface{}, 0, len(lessons))
	for _, l := range lessons {
		id := l.ID
		if id == "" {
			id = uuid.NewString()
		}
		rows = append(rows, goqu.Record{
			colID:       id,
			colSubject:  l.Subject,
			colLocation: l.Location,
			colPrice:    l.Price,
			colSpaces:   l.Spaces,
			colImage:    l.Image,
		})
	}

	query, args, err := dialect.Insert(tableLessons).
		Rows(rows...).
		OnConflict(goqu.DoUpdate(colSubject+", "+colLocation, goqu.Record{
			colPrice:  goqu.L("EXCLUDED." + colPrice),
			colSpaces: goqu.L("EXCLUDED." + colSpaces),
			colImage:  goqu.L("EXCLUDED." + colImage),
		})).
		Prepared(true).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert lessons: %w", err)
	}
	return nil
}
