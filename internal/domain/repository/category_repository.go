package repository

import "github.com/soulf/catalogo-api/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para Category (DIP).
// Los métodos Get* devuelven (nil, nil) cuando el registro no existe.
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	GetBySlug(slug string) (*entity.Category, error)
	// GetByName busca por nombre sin importar el flag Active: un nombre
	// "muerto" (categoría desactivada) sigue bloqueando su reutilización.
	GetByName(name string) (*entity.Category, error)
	Update(category *entity.Category) error
	ListActive() ([]*entity.Category, error)
	ListActiveRoots() ([]*entity.Category, error)
	// ListByParent devuelve todos los hijos directos, activos o no.
	ListByParent(parentID string) ([]*entity.Category, error)
	CountChildren(parentID string) (int, error)
	Delete(id string) error
}
