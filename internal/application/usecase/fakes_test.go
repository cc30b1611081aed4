package usecase_test

import (
	"context"
	"sort"
	"strings"

	"github.com/soulf/catalogo-api/internal/domain/entity"
	"github.com/soulf/catalogo-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de persistencia
// ──────────────────────────────────────────────────────────────────────────────

type memCategoryRepo struct {
	categories map[string]*entity.Category
}

func newMemCategoryRepo() *memCategoryRepo {
	return &memCategoryRepo{categories: map[string]*entity.Category{}}
}

func cloneCategory(c *entity.Category) *entity.Category {
	cp := *c
	return &cp
}

func (r *memCategoryRepo) Create(c *entity.Category) error {
	r.categories[c.ID] = cloneCategory(c)
	return nil
}

func (r *memCategoryRepo) GetByID(id string) (*entity.Category, error) {
	if c, ok := r.categories[id]; ok {
		return cloneCategory(c), nil
	}
	return nil, nil
}

func (r *memCategoryRepo) GetBySlug(slug string) (*entity.Category, error) {
	for _, c := range r.categories {
		if c.Slug == slug {
			return cloneCategory(c), nil
		}
	}
	return nil, nil
}

func (r *memCategoryRepo) GetByName(name string) (*entity.Category, error) {
	for _, c := range r.categories {
		if c.Name == name {
			return cloneCategory(c), nil
		}
	}
	return nil, nil
}

func (r *memCategoryRepo) Update(c *entity.Category) error {
	r.categories[c.ID] = cloneCategory(c)
	return nil
}

func (r *memCategoryRepo) ListActive() ([]*entity.Category, error) {
	return r.filter(func(c *entity.Category) bool { return c.Active }), nil
}

func (r *memCategoryRepo) ListActiveRoots() ([]*entity.Category, error) {
	return r.filter(func(c *entity.Category) bool { return c.Active && c.ParentID == "" }), nil
}

func (r *memCategoryRepo) ListByParent(parentID string) ([]*entity.Category, error) {
	return r.filter(func(c *entity.Category) bool { return c.ParentID == parentID }), nil
}

func (r *memCategoryRepo) CountChildren(parentID string) (int, error) {
	children, _ := r.ListByParent(parentID)
	return len(children), nil
}

func (r *memCategoryRepo) Delete(id string) error {
	delete(r.categories, id)
	return nil
}

// filter devuelve copias en orden estable por nombre, para tests deterministas.
func (r *memCategoryRepo) filter(keep func(*entity.Category) bool) []*entity.Category {
	var list []*entity.Category
	for _, c := range r.categories {
		if keep(c) {
			list = append(list, cloneCategory(c))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

type memProductRepo struct {
	products map[string]*entity.Product
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{products: map[string]*entity.Product{}}
}

func cloneProduct(p *entity.Product) *entity.Product {
	cp := *p
	cp.Attributes = append([]entity.ProductAttribute(nil), p.Attributes...)
	cp.Images = append([]entity.ProductImage(nil), p.Images...)
	return &cp
}

func (r *memProductRepo) Create(p *entity.Product) error {
	r.products[p.ID] = cloneProduct(p)
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	if p, ok := r.products[id]; ok {
		return cloneProduct(p), nil
	}
	return nil, nil
}

func (r *memProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			return cloneProduct(p), nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) Update(p *entity.Product) error {
	stored, ok := r.products[p.ID]
	if !ok {
		return nil
	}
	cp := cloneProduct(p)
	// Update solo escribe la fila; las colecciones se reemplazan aparte.
	cp.Attributes = stored.Attributes
	cp.Images = stored.Images
	r.products[p.ID] = cp
	return nil
}

func (r *memProductRepo) ReplaceAttributes(productID string, attributes []entity.ProductAttribute) error {
	if p, ok := r.products[productID]; ok {
		p.Attributes = append([]entity.ProductAttribute(nil), attributes...)
	}
	return nil
}

func (r *memProductRepo) ReplaceImages(productID string, images []entity.ProductImage) error {
	if p, ok := r.products[productID]; ok {
		p.Images = append([]entity.ProductImage(nil), images...)
	}
	return nil
}

func (r *memProductRepo) ListActiveVisible(page repository.Page) ([]*entity.Product, int, error) {
	return r.page(r.match(func(p *entity.Product) bool { return p.Active && p.Visible }), page)
}

func (r *memProductRepo) ListByCategory(categoryID string, page repository.Page) ([]*entity.Product, int, error) {
	return r.page(r.match(func(p *entity.Product) bool {
		return p.Active && p.Visible && p.CategoryID == categoryID
	}), page)
}

func (r *memProductRepo) Search(filter repository.ProductFilter, page repository.Page) ([]*entity.Product, int, error) {
	return r.page(r.match(func(p *entity.Product) bool {
		if filter.Name != nil && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(*filter.Name)) {
			return false
		}
		if filter.CategoryID != nil && p.CategoryID != *filter.CategoryID {
			return false
		}
		if filter.MinPrice != nil && p.Price.LessThan(*filter.MinPrice) {
			return false
		}
		if filter.MaxPrice != nil && p.Price.GreaterThan(*filter.MaxPrice) {
			return false
		}
		if filter.Active != nil && p.Active != *filter.Active {
			return false
		}
		if filter.Visible != nil && p.Visible != *filter.Visible {
			return false
		}
		return true
	}), page)
}

func (r *memProductRepo) Delete(id string) error {
	delete(r.products, id)
	return nil
}

func (r *memProductRepo) match(keep func(*entity.Product) bool) []*entity.Product {
	var list []*entity.Product
	for _, p := range r.products {
		if keep(p) {
			list = append(list, cloneProduct(p))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].SKU < list[j].SKU })
	return list
}

func (r *memProductRepo) page(list []*entity.Product, page repository.Page) ([]*entity.Product, int, error) {
	total := len(list)
	start := page.Offset()
	if start > total {
		start = total
	}
	end := start + page.Size
	if page.Size <= 0 || end > total {
		end = total
	}
	return list[start:end], total, nil
}

// fakeTxRunner ejecuta el callback directamente contra el repo en memoria; no
// hay transacción real que simular.
type fakeTxRunner struct {
	products repository.ProductRepository
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(products repository.ProductRepository) error) error {
	return fn(f.products)
}
