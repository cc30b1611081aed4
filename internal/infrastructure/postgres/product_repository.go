package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/soulf/catalogo-api/internal/domain"
	"github.com/soulf/catalogo-api/internal/domain/entity"
	"github.com/soulf/catalogo-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, sku, name, description, price, COALESCE(category_id, ''), COALESCE(inventory_id, ''), active, visible, created_at, updated_at`

// sortColumns campos de orden admitidos en listados; cualquier otro valor cae
// en created_at. El nombre viene del caller, nunca se interpola sin pasar por
// esta tabla.
var sortColumns = map[string]string{
	"name":       "name",
	"sku":        "sku",
	"price":      "price",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL
// (usable con pool o tx). Atributos e imágenes viven en tablas propias y se
// cargan junto con el producto.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste el producto con sus atributos e imágenes. Llamar dentro de
// una tx para que las tres escrituras sean atómicas.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, sku, name, description, price, category_id, inventory_id, active, visible, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.SKU, product.Name, product.Description, product.Price,
		product.CategoryID, product.InventoryID, product.Active, product.Visible,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	if err := r.insertAttributes(product.ID, product.Attributes); err != nil {
		return err
	}
	return r.insertImages(product.ID, product.Images)
}

// GetByID obtiene un producto por ID, con atributos e imágenes. (nil, nil) si no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.getOne(`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetBySKU obtiene un producto por SKU, con atributos e imágenes. (nil, nil) si no existe.
func (r *ProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	return r.getOne(`SELECT `+productColumns+` FROM products WHERE sku = $1`, sku)
}

func (r *ProductRepo) getOne(query string, arg any) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&p.ID, &p.SKU, &p.Name, &p.Description, &p.Price, &p.CategoryID,
		&p.InventoryID, &p.Active, &p.Visible, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	if err := r.loadCollections([]*entity.Product{&p}); err != nil {
		return nil, err
	}
	return &p, nil
}

// Update actualiza la fila del producto. Atributos e imágenes se reemplazan
// aparte con ReplaceAttributes/ReplaceImages, dentro de la misma tx.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products
		SET sku = $2, name = $3, description = $4, price = $5, category_id = NULLIF($6, ''),
		    inventory_id = NULLIF($7, ''), active = $8, visible = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.SKU, product.Name, product.Description, product.Price,
		product.CategoryID, product.InventoryID, product.Active, product.Visible,
		product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// ReplaceAttributes borra los atributos del producto e inserta la lista nueva
// (que puede ser vacía). Llamar dentro de una tx junto con Update.
func (r *ProductRepo) ReplaceAttributes(productID string, attributes []entity.ProductAttribute) error {
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM product_attributes WHERE product_id = $1`, productID); err != nil {
		return fmt.Errorf("delete attributes: %w", err)
	}
	return r.insertAttributes(productID, attributes)
}

// ReplaceImages borra las imágenes del producto e inserta la lista nueva.
func (r *ProductRepo) ReplaceImages(productID string, images []entity.ProductImage) error {
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM product_images WHERE product_id = $1`, productID); err != nil {
		return fmt.Errorf("delete images: %w", err)
	}
	return r.insertImages(productID, images)
}

func (r *ProductRepo) insertAttributes(productID string, attributes []entity.ProductAttribute) error {
	for _, a := range attributes {
		_, err := r.q.Exec(context.Background(),
			`INSERT INTO product_attributes (id, product_id, name, value, display_order) VALUES ($1, $2, $3, $4, $5)`,
			a.ID, productID, a.Name, a.Value, a.DisplayOrder,
		)
		if err != nil {
			return fmt.Errorf("insert attribute: %w", err)
		}
	}
	return nil
}

func (r *ProductRepo) insertImages(productID string, images []entity.ProductImage) error {
	for _, i := range images {
		_, err := r.q.Exec(context.Background(),
			`INSERT INTO product_images (id, product_id, url, alt_text, is_primary, display_order) VALUES ($1, $2, $3, $4, $5, $6)`,
			i.ID, productID, i.URL, i.AltText, i.Primary, i.DisplayOrder,
		)
		if err != nil {
			return fmt.Errorf("insert image: %w", err)
		}
	}
	return nil
}

// ListActiveVisible lista productos activos y visibles, paginados.
func (r *ProductRepo) ListActiveVisible(page repository.Page) ([]*entity.Product, int, error) {
	return r.listWhere("active AND visible", nil, page)
}

// ListByCategory lista productos activos y visibles de una categoría, paginados.
func (r *ProductRepo) ListByCategory(categoryID string, page repository.Page) ([]*entity.Product, int, error) {
	return r.listWhere("active AND visible AND category_id = $1", []any{categoryID}, page)
}

// Search compone los filtros presentes en un solo WHERE (AND). El substring de
// nombre no distingue mayúsculas; los límites de precio son inclusivos.
func (r *ProductRepo) Search(filter repository.ProductFilter, page repository.Page) ([]*entity.Product, int, error) {
	var conditions []string
	var args []any
	add := func(cond string, arg any) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}
	if filter.Name != nil {
		add("name ILIKE '%%' || $%d || '%%'", *filter.Name)
	}
	if filter.CategoryID != nil {
		add("category_id = $%d", *filter.CategoryID)
	}
	if filter.MinPrice != nil {
		add("price >= $%d", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		add("price <= $%d", *filter.MaxPrice)
	}
	if filter.Active != nil {
		add("active = $%d", *filter.Active)
	}
	if filter.Visible != nil {
		add("visible = $%d", *filter.Visible)
	}
	where := "TRUE"
	if len(conditions) > 0 {
		where = strings.Join(conditions, " AND ")
	}
	return r.listWhere(where, args, page)
}

// listWhere ejecuta el conteo total y la página sobre el mismo WHERE, y carga
// atributos e imágenes de los productos devueltos.
func (r *ProductRepo) listWhere(where string, args []any, page repository.Page) ([]*entity.Product, int, error) {
	var total int
	countQuery := `SELECT count(*) FROM products WHERE ` + where
	if err := r.q.QueryRow(context.Background(), countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	orderBy, ok := sortColumns[page.Sort]
	if !ok {
		orderBy = "created_at"
	}
	dir := "ASC"
	if page.Desc {
		dir = "DESC"
	}
	query := fmt.Sprintf(`SELECT %s FROM products WHERE %s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		productColumns, where, orderBy, dir, len(args)+1, len(args)+2)
	args = append(args, page.Size, page.Offset())

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.SKU, &p.Name, &p.Description, &p.Price, &p.CategoryID,
			&p.InventoryID, &p.Active, &p.Visible, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if err := r.loadCollections(list); err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// loadCollections carga atributos e imágenes de un conjunto de productos en
// dos consultas (una por tabla), ordenadas por display_order.
func (r *ProductRepo) loadCollections(products []*entity.Product) error {
	if len(products) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Product, len(products))
	ids := make([]string, 0, len(products))
	for _, p := range products {
		byID[p.ID] = p
		ids = append(ids, p.ID)
	}

	rows, err := r.q.Query(context.Background(),
		`SELECT id, product_id, name, value, display_order
		 FROM product_attributes WHERE product_id = ANY($1) ORDER BY display_order, id`, ids)
	if err != nil {
		return fmt.Errorf("load attributes: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var a entity.ProductAttribute
		if err := rows.Scan(&a.ID, &a.ProductID, &a.Name, &a.Value, &a.DisplayOrder); err != nil {
			return fmt.Errorf("scan attribute: %w", err)
		}
		if p, ok := byID[a.ProductID]; ok {
			p.Attributes = append(p.Attributes, a)
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	imgRows, err := r.q.Query(context.Background(),
		`SELECT id, product_id, url, COALESCE(alt_text, ''), is_primary, display_order
		 FROM product_images WHERE product_id = ANY($1) ORDER BY display_order, id`, ids)
	if err != nil {
		return fmt.Errorf("load images: %w", err)
	}
	defer imgRows.Close()
	for imgRows.Next() {
		var i entity.ProductImage
		if err := imgRows.Scan(&i.ID, &i.ProductID, &i.URL, &i.AltText, &i.Primary, &i.DisplayOrder); err != nil {
			return fmt.Errorf("scan image: %w", err)
		}
		if p, ok := byID[i.ProductID]; ok {
			p.Images = append(p.Images, i)
		}
	}
	return imgRows.Err()
}

// Delete elimina el producto y sus colecciones propias. Llamar dentro de una tx.
func (r *ProductRepo) Delete(id string) error {
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM product_attributes WHERE product_id = $1`, id); err != nil {
		return fmt.Errorf("delete attributes: %w", err)
	}
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM product_images WHERE product_id = $1`, id); err != nil {
		return fmt.Errorf("delete images: %w", err)
	}
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM products WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}
