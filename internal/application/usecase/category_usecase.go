package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/soulf/catalogo-api/internal/application/dto"
	"github.com/soulf/catalogo-api/internal/domain"
	"github.com/soulf/catalogo-api/internal/domain/entity"
	"github.com/soulf/catalogo-api/internal/domain/repository"
	"github.com/soulf/catalogo-api/pkg/slug"
)

// CategoryUseCase casos de uso para la taxonomía de categorías: CRUD con
// invariantes de unicidad/jerarquía y armado del árbol de vistas.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// Create crea una categoría. El nombre es único global, sin importar si la
// categoría que lo ocupa está activa o no. El slug se deriva del nombre cuando
// no se suministra; no se verifica su unicidad.
func (uc *CategoryUseCase) Create(in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByName(in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.ParentCategoryID != "" {
		parent, err := uc.repo.GetByID(in.ParentCategoryID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, domain.ErrNotFound
		}
	}
	s := in.Slug
	if s == "" {
		s = slug.Generate(in.Name)
	}
	now := time.Now()
	category := &entity.Category{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Slug:         s,
		Description:  in.Description,
		Active:       true,
		DisplayOrder: in.DisplayOrder,
		ParentID:     in.ParentCategoryID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(category); err != nil {
		return nil, err
	}
	return uc.buildTreePtr(category)
}

// Update actualiza una categoría. Si el nombre cambió, el slug se regenera
// desde el nuevo nombre y cualquier slug suministrado se ignora; si el nombre
// no cambió, un slug no vacío sobrescribe el almacenado. El padre se reemplaza
// por completo en cada llamada: vacío deja la categoría como raíz.
func (uc *CategoryUseCase) Update(id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	category, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}

	nameChanged := in.Name != category.Name
	if nameChanged {
		other, err := uc.repo.GetByName(in.Name)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != id {
			return nil, domain.ErrDuplicate
		}
		category.Slug = slug.Generate(in.Name)
	} else if in.Slug != "" {
		category.Slug = in.Slug
	}
	category.Name = in.Name
	category.Description = in.Description
	category.DisplayOrder = in.DisplayOrder

	if in.ParentCategoryID != "" {
		parent, err := uc.repo.GetByID(in.ParentCategoryID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, domain.ErrNotFound
		}
		if err := uc.checkNoCycle(id, parent); err != nil {
			return nil, err
		}
		category.ParentID = in.ParentCategoryID
	} else {
		category.ParentID = ""
	}

	category.UpdatedAt = time.Now()
	if err := uc.repo.Update(category); err != nil {
		return nil, err
	}
	return uc.buildTreePtr(category)
}

// checkNoCycle rechaza re-vincular una categoría bajo sí misma o bajo uno de
// sus descendientes: sube por la cadena de ancestros del nuevo padre y falla
// si encuentra el id en cuestión. El set visited corta cadenas ya corruptas.
func (uc *CategoryUseCase) checkNoCycle(id string, parent *entity.Category) error {
	visited := map[string]bool{}
	for current := parent; current != nil; {
		if current.ID == id {
			return domain.ErrConflict
		}
		if current.ParentID == "" || visited[current.ID] {
			return nil
		}
		visited[current.ID] = true
		next, err := uc.repo.GetByID(current.ParentID)
		if err != nil {
			return err
		}
		current = next
	}
	return nil
}

// Delete elimina una categoría sin hijos. Con uno o más hijos (activos o no)
// falla: el llamador debe eliminarlos o re-vincularlos primero; no hay borrado
// en cascada.
func (uc *CategoryUseCase) Delete(id string) error {
	category, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrNotFound
	}
	children, err := uc.repo.CountChildren(id)
	if err != nil {
		return err
	}
	if children > 0 {
		return domain.ErrConflict
	}
	return uc.repo.Delete(id)
}

// Deactivate marca la categoría como inactiva (soft delete). Idempotente; no
// toca hijos ni productos.
func (uc *CategoryUseCase) Deactivate(id string) error {
	category, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrNotFound
	}
	category.Active = false
	category.UpdatedAt = time.Now()
	return uc.repo.Update(category)
}

// GetTreeByID devuelve la categoría con su subárbol de descendientes activos.
func (uc *CategoryUseCase) GetTreeByID(id string) (*dto.CategoryResponse, error) {
	category, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	return uc.buildTreePtr(category)
}

// GetTreeBySlug devuelve la categoría con su subárbol de descendientes activos.
func (uc *CategoryUseCase) GetTreeBySlug(s string) (*dto.CategoryResponse, error) {
	category, err := uc.repo.GetBySlug(s)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	return uc.buildTreePtr(category)
}

// ListActive lista plana de categorías activas, sin subárboles.
func (uc *CategoryUseCase) ListActive() ([]dto.CategoryResponse, error) {
	list, err := uc.repo.ListActive()
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, toCategoryResponse(c))
	}
	return items, nil
}

// ListRootTrees devuelve las raíces activas, cada una con su subárbol.
func (uc *CategoryUseCase) ListRootTrees() ([]dto.CategoryResponse, error) {
	roots, err := uc.repo.ListActiveRoots()
	if err != nil {
		return nil, err
	}
	return uc.BuildTrees(roots)
}

// BuildTrees aplica BuildTree a cada categoría, en el orden de entrada.
func (uc *CategoryUseCase) BuildTrees(categories []*entity.Category) ([]dto.CategoryResponse, error) {
	items := make([]dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		view, err := uc.BuildTree(c)
		if err != nil {
			return nil, err
		}
		items = append(items, view)
	}
	return items, nil
}

// BuildTree arma la vista de una categoría con sus descendientes. Recorre en
// profundidad sobre el almacén por ParentID y filtra por Active en cada nivel:
// un hijo inactivo se omite con todo su subárbol, aunque tenga descendientes
// activos. No se ordena por DisplayOrder.
func (uc *CategoryUseCase) BuildTree(category *entity.Category) (dto.CategoryResponse, error) {
	view := toCategoryResponse(category)
	children, err := uc.repo.ListByParent(category.ID)
	if err != nil {
		return dto.CategoryResponse{}, err
	}
	for _, child := range children {
		if !child.Active {
			continue
		}
		sub, err := uc.BuildTree(child)
		if err != nil {
			return dto.CategoryResponse{}, err
		}
		view.SubCategories = append(view.SubCategories, sub)
	}
	return view, nil
}

func (uc *CategoryUseCase) buildTreePtr(category *entity.Category) (*dto.CategoryResponse, error) {
	view, err := uc.BuildTree(category)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func toCategoryResponse(c *entity.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:               c.ID,
		Name:             c.Name,
		Slug:             c.Slug,
		Description:      c.Description,
		Active:           c.Active,
		DisplayOrder:     c.DisplayOrder,
		ParentCategoryID: c.ParentID,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}
