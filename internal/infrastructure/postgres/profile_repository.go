package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/academy-api/internal/domain/entity"
	"github.com/jhoicas/academy-api/internal/domain/repository"
)

var _ repository.ProfileRepository = (*ProfileRepo)(nil)

// ProfileRepo implementación de ProfileRepository sobre PostgreSQL (usable con pool o tx).
type ProfileRepo struct {
	q Querier
}

// NewProfileRepository construye el adaptador de perfiles. Pasar pool o tx (Querier).
func NewProfileRepository(q Querier) *ProfileRepo {
	return &ProfileRepo{q: q}
}

// Upsert crea o actualiza el perfil por ID. NULLIF evita que un phone vacío
// pise un valor ya guardado (el callback de Kakao no siempre trae teléfono).
func (r *ProfileRepo) Upsert(p *entity.Profile) error {
	query := `
		INSERT INTO profiles (id, email, name, phone_number, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			name = COALESCE(NULLIF(EXCLUDED.name, ''), profiles.name),
			phone_number = COALESCE(NULLIF(EXCLUDED.phone_number, ''), profiles.phone_number),
			updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Email, p.Name, p.PhoneNumber, p.Role, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

// GetByID obtiene un perfil por ID.
func (r *ProfileRepo) GetByID(id string) (*entity.Profile, error) {
	query := `
		SELECT id, email, name, phone_number, COALESCE(role, ''), created_at, updated_at
		FROM profiles WHERE id = $1`
	var p entity.Profile
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Email, &p.Name, &p.PhoneNumber, &p.Role, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile by id: %w", err)
	}
	return &p, nil
}

// List devuelve todos los perfiles, más recientes primero.
func (r *ProfileRepo) List() ([]*entity.Profile, error) {
	query := `
		SELECT id, email, name, phone_number, COALESCE(role, ''), created_at, updated_at
		FROM profiles ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()
	var list []*entity.Profile
	for rows.Next() {
		var p entity.Profile
		if err := rows.Scan(&p.ID, &p.Email, &p.Name, &p.PhoneNumber, &p.Role, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update actualiza todos los campos editables de un perfil.
func (r *ProfileRepo) Update(p *entity.Profile) error {
	query := `
		UPDATE profiles SET email = $2, name = $3, phone_number = $4, role = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Email, p.Name, p.PhoneNumber, p.Role, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

// Delete elimina un perfil por ID.
func (r *ProfileRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}
