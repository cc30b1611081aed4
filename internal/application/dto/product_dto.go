package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductAttributeRequest atributo dentro de un comando de producto.
type ProductAttributeRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=100"`
	Value        string `json:"value"`
	DisplayOrder int    `json:"display_order"`
}

// ProductImageRequest imagen dentro de un comando de producto.
type ProductImageRequest struct {
	URL          string `json:"url" validate:"required"`
	AltText      string `json:"alt_text"`
	Primary      bool   `json:"primary"`
	DisplayOrder int    `json:"display_order"`
}

// CreateProductRequest entrada para crear un producto.
// Active/Visible nil valen true. Attributes/Images nil crean el producto sin
// colecciones.
type CreateProductRequest struct {
	SKU         string                    `json:"sku" validate:"required,min=1,max=100"`
	Name        string                    `json:"name" validate:"required,min=1,max=200"`
	Description string                    `json:"description"`
	Price       decimal.Decimal           `json:"price"`
	CategoryID  string                    `json:"category_id"`
	InventoryID string                    `json:"inventory_id"`
	Active      *bool                     `json:"active"`
	Visible     *bool                     `json:"visible"`
	Attributes  []ProductAttributeRequest `json:"attributes"`
	Images      []ProductImageRequest     `json:"images"`
}

// UpdateProductRequest entrada para actualizar un producto.
// SKU, Name, Description, Price e InventoryID sobrescriben siempre.
// Active/Visible nil conservan el valor almacenado. Attributes/Images nil dejan
// la colección intacta; una lista presente (incluso vacía) la reemplaza entera.
// CategoryID vacío desvincula la categoría solo si había una.
type UpdateProductRequest struct {
	SKU         string                    `json:"sku" validate:"required,min=1,max=100"`
	Name        string                    `json:"name" validate:"required,min=1,max=200"`
	Description string                    `json:"description"`
	Price       decimal.Decimal           `json:"price"`
	CategoryID  string                    `json:"category_id"`
	InventoryID string                    `json:"inventory_id"`
	Active      *bool                     `json:"active"`
	Visible     *bool                     `json:"visible"`
	Attributes  []ProductAttributeRequest `json:"attributes"`
	Images      []ProductImageRequest     `json:"images"`
}

// ProductAttributeResponse atributo en la vista de producto.
type ProductAttributeResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Value        string `json:"value"`
	DisplayOrder int    `json:"display_order"`
}

// ProductImageResponse imagen en la vista de producto.
type ProductImageResponse struct {
	ID           string `json:"id"`
	URL          string `json:"url"`
	AltText      string `json:"alt_text"`
	Primary      bool   `json:"primary"`
	DisplayOrder int    `json:"display_order"`
}

// ProductResponse vista enriquecida de un producto. AvailableQuantity viene del
// servicio de inventario; nil (omitido en JSON) significa "desconocido", nunca
// un error para quien lee el catálogo.
type ProductResponse struct {
	ID                string                     `json:"id"`
	SKU               string                     `json:"sku"`
	Name              string                     `json:"name"`
	Description       string                     `json:"description"`
	Price             decimal.Decimal            `json:"price"`
	CategoryID        string                     `json:"category_id,omitempty"`
	InventoryID       string                     `json:"inventory_id,omitempty"`
	Active            bool                       `json:"active"`
	Visible           bool                       `json:"visible"`
	Attributes        []ProductAttributeResponse `json:"attributes"`
	Images            []ProductImageResponse     `json:"images"`
	AvailableQuantity *int                       `json:"available_quantity,omitempty"`
	CreatedAt         time.Time                  `json:"created_at"`
	UpdatedAt         time.Time                  `json:"updated_at"`
}

// ProductPageResponse página de productos enriquecidos.
type ProductPageResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// SearchProductsRequest filtros de búsqueda. Un filtro nil no restringe; los
// presentes se combinan con AND. El handler los arma desde los query params.
type SearchProductsRequest struct {
	Name       *string
	CategoryID *string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	Active     *bool
	Visible    *bool
}
