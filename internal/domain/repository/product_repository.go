package repository

import (
	"github.com/shopspring/decimal"
	"github.com/soulf/catalogo-api/internal/domain/entity"
)

// ProductFilter filtros opcionales de búsqueda. Un puntero nil no impone
// restricción; los filtros presentes se combinan con AND.
type ProductFilter struct {
	Name       *string          // substring, sin distinguir mayúsculas
	CategoryID *string
	MinPrice   *decimal.Decimal // inclusivo
	MaxPrice   *decimal.Decimal // inclusivo
	Active     *bool
	Visible    *bool
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los métodos Get* devuelven (nil, nil) cuando el registro no existe y cargan
// atributos e imágenes del producto. Los listados devuelven además el total de
// filas que coinciden, para los metadatos de página.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	// Update escribe solo la fila del producto; atributos e imágenes se
	// reemplazan con ReplaceAttributes/ReplaceImages dentro de la misma tx.
	Update(product *entity.Product) error
	ReplaceAttributes(productID string, attributes []entity.ProductAttribute) error
	ReplaceImages(productID string, images []entity.ProductImage) error
	ListActiveVisible(page Page) ([]*entity.Product, int, error)
	ListByCategory(categoryID string, page Page) ([]*entity.Product, int, error)
	Search(filter ProductFilter, page Page) ([]*entity.Product, int, error)
	Delete(id string) error
}
