package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/academy-api/internal/domain/entity"
	"github.com/jhoicas/academy-api/internal/domain/repository"
)

var _ repository.LectureRepository = (*LectureRepo)(nil)

// LectureRepo catálogo de lectures sobre PostgreSQL (usable con pool o tx).
type LectureRepo struct {
	q Querier
}

// NewLectureRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLectureRepository(q Querier) *LectureRepo {
	return &LectureRepo{q: q}
}

// GetByID obtiene una lecture por su ID numérico o (nil, nil).
func (r *LectureRepo) GetByID(id int) (*entity.Lecture, error) {
	query := `SELECT id, title, price, created_at FROM lectures WHERE id = $1`
	var l entity.Lecture
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&l.ID, &l.Title, &l.Price, &l.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lecture by id: %w", err)
	}
	return &l, nil
}
