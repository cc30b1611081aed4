package dto

import "time"

// CreateCategoryRequest entrada para crear una categoría.
// Si Slug viene vacío se deriva del nombre.
type CreateCategoryRequest struct {
	Name             string `json:"name" validate:"required,min=1,max=200"`
	Description      string `json:"description"`
	Slug             string `json:"slug"`
	DisplayOrder     int    `json:"display_order"`
	ParentCategoryID string `json:"parent_category_id"`
}

// UpdateCategoryRequest entrada para actualizar una categoría.
// ParentCategoryID se reemplaza por completo en cada llamada: vacío deja la
// categoría como raíz (asimétrico con los flags de producto, que se conservan).
type UpdateCategoryRequest struct {
	Name             string `json:"name" validate:"required,min=1,max=200"`
	Description      string `json:"description"`
	Slug             string `json:"slug"`
	DisplayOrder     int    `json:"display_order"`
	ParentCategoryID string `json:"parent_category_id"`
}

// CategoryResponse vista de una categoría. SubCategories solo contiene hijos
// activos, recursivamente; una rama desactivada desaparece entera.
type CategoryResponse struct {
	ID               string             `json:"id"`
	Name             string             `json:"name"`
	Slug             string             `json:"slug"`
	Description      string             `json:"description"`
	Active           bool               `json:"active"`
	DisplayOrder     int                `json:"display_order"`
	ParentCategoryID string             `json:"parent_category_id,omitempty"`
	SubCategories    []CategoryResponse `json:"sub_categories,omitempty"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}
