package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/soulf/catalogo-api/internal/domain"
	"github.com/soulf/catalogo-api/internal/domain/entity"
	"github.com/soulf/catalogo-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

const categoryColumns = `id, name, slug, description, active, display_order, COALESCE(parent_id, ''), created_at, updated_at`

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL.
// El vínculo padre/hijo vive solo en la columna parent_id; los hijos se
// resuelven con un scan por parent_id, sin punteros inversos.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador. Acepta pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create persiste una nueva categoría.
func (r *CategoryRepo) Create(category *entity.Category) error {
	query := `
		INSERT INTO categories (id, name, slug, description, active, display_order, parent_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		category.ID, category.Name, category.Slug, category.Description,
		category.Active, category.DisplayOrder, category.ParentID,
		category.CreatedAt, category.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría por ID. Devuelve (nil, nil) si no existe.
func (r *CategoryRepo) GetByID(id string) (*entity.Category, error) {
	return r.getOne(`SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
}

// GetBySlug obtiene una categoría por slug. El slug no es único por contrato;
// si hubiera repetidos se devuelve el primero por fecha de creación.
func (r *CategoryRepo) GetBySlug(slug string) (*entity.Category, error) {
	return r.getOne(`SELECT `+categoryColumns+` FROM categories WHERE slug = $1 ORDER BY created_at LIMIT 1`, slug)
}

// GetByName busca por nombre sin importar el flag active.
func (r *CategoryRepo) GetByName(name string) (*entity.Category, error) {
	return r.getOne(`SELECT `+categoryColumns+` FROM categories WHERE name = $1`, name)
}

func (r *CategoryRepo) getOne(query string, arg any) (*entity.Category, error) {
	var c entity.Category
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&c.ID, &c.Name, &c.Slug, &c.Description, &c.Active, &c.DisplayOrder,
		&c.ParentID, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

// Update actualiza una categoría existente (incluido su vínculo de padre).
func (r *CategoryRepo) Update(category *entity.Category) error {
	query := `
		UPDATE categories
		SET name = $2, slug = $3, description = $4, active = $5, display_order = $6, parent_id = NULLIF($7, ''), updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		category.ID, category.Name, category.Slug, category.Description,
		category.Active, category.DisplayOrder, category.ParentID, category.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// ListActive lista todas las categorías activas, en orden del almacén.
func (r *CategoryRepo) ListActive() ([]*entity.Category, error) {
	return r.list(`SELECT ` + categoryColumns + ` FROM categories WHERE active`)
}

// ListActiveRoots lista las categorías activas sin padre.
func (r *CategoryRepo) ListActiveRoots() ([]*entity.Category, error) {
	return r.list(`SELECT ` + categoryColumns + ` FROM categories WHERE active AND parent_id IS NULL`)
}

// ListByParent lista los hijos directos de una categoría, activos o no.
func (r *CategoryRepo) ListByParent(parentID string) ([]*entity.Category, error) {
	return r.list(`SELECT `+categoryColumns+` FROM categories WHERE parent_id = $1`, parentID)
}

func (r *CategoryRepo) list(query string, args ...any) ([]*entity.Category, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.Active,
			&c.DisplayOrder, &c.ParentID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// CountChildren cuenta los hijos directos, activos o no.
func (r *CategoryRepo) CountChildren(parentID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM categories WHERE parent_id = $1`, parentID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count children: %w", err)
	}
	return n, nil
}

// Delete elimina una categoría por ID. El caso de uso garantiza que no tenga hijos.
func (r *CategoryRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
