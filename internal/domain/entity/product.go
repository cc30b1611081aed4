package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo. La disponibilidad no vive aquí:
// se consulta al servicio de inventario externo vía InventoryID al momento de leer.
type Product struct {
	ID          string
	SKU         string // único global
	Name        string
	Description string
	Price       decimal.Decimal // estrictamente positivo
	CategoryID  string          // vacío si no tiene categoría
	InventoryID string          // identificador en el sistema de inventario externo; vacío si no aplica
	Active      bool
	Visible     bool
	Attributes  []ProductAttribute
	Images      []ProductImage
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductAttribute atributo propio de un producto (name/value). Al actualizar con
// una lista de atributos, la lista entrante reemplaza por completo la existente.
type ProductAttribute struct {
	ID           string
	ProductID    string
	Name         string // no vacío
	Value        string
	DisplayOrder int
}

// ProductImage imagen propia de un producto. Misma semántica de reemplazo total
// que los atributos.
type ProductImage struct {
	ID           string
	ProductID    string
	URL          string // no vacía
	AltText      string
	Primary      bool
	DisplayOrder int
}
