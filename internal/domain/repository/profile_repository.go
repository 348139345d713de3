package repository

import "github.com/jhoicas/academy-api/internal/domain/entity"

// ProfileRepository define el puerto de persistencia para Profile.
type ProfileRepository interface {
	// Upsert crea o actualiza el perfil por ID (bootstrap de auth).
	// Los campos vacíos de phone no pisan un valor ya guardado.
	Upsert(profile *entity.Profile) error
	GetByID(id string) (*entity.Profile, error)
	// List devuelve todos los perfiles, más recientes primero (vista admin).
	List() ([]*entity.Profile, error)
	Update(profile *entity.Profile) error
	Delete(id string) error
}
