package catalog

import "context"

// InventoryInfo respuesta del servicio de inventario externo. El catálogo solo
// consume AvailableQuantity; el resto de campos es informativo.
type InventoryInfo struct {
	InventoryID       string
	SKU               string
	AvailableQuantity int
	ReservedQuantity  int
	TotalQuantity     int
	InStock           bool
}

// InventoryProvider puerto hacia el servicio de inventario. Ambas formas pueden
// fallar por red o timeout; el caso de uso degrada cualquier fallo a cantidad
// desconocida, nunca lo propaga a la lectura del catálogo.
type InventoryProvider interface {
	GetByID(ctx context.Context, inventoryID string) (*InventoryInfo, error)
	GetBatch(ctx context.Context, inventoryIDs []string) ([]InventoryInfo, error)
}
