package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/soulf/catalogo-api/internal/application/dto"
	"github.com/soulf/catalogo-api/internal/domain/entity"
	"github.com/soulf/catalogo-api/internal/domain/repository"
	"github.com/soulf/catalogo-api/pkg/logger"
)

// Config límites del enriquecimiento de inventario.
type Config struct {
	LookupTimeout time.Duration // timeout por consulta individual
	MaxConcurrent int           // consultas simultáneas al enriquecer una página
}

// CatalogUseCase fachada de lectura del catálogo: proyecta productos del
// registro a vistas enriquecidas con la disponibilidad que reporta el servicio
// de inventario. El enriquecimiento es best-effort: un fallo del servicio
// externo deja AvailableQuantity ausente y jamás falla la lectura.
type CatalogUseCase struct {
	inventory InventoryProvider
	log       *logger.Logger
	cfg       Config
}

// NewCatalogUseCase construye la fachada.
func NewCatalogUseCase(inventory InventoryProvider, log *logger.Logger, cfg Config) *CatalogUseCase {
	if cfg.LookupTimeout <= 0 {
		cfg.LookupTimeout = 2 * time.Second
	}
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 8
	}
	return &CatalogUseCase{inventory: inventory, log: log, cfg: cfg}
}

// Present proyecta un producto a su vista enriquecida, con una única consulta
// de inventario (ninguna si el producto no tiene referencia de inventario).
func (uc *CatalogUseCase) Present(ctx context.Context, product *entity.Product) dto.ProductResponse {
	return toProductResponse(product, uc.availableQuantity(ctx, product.InventoryID))
}

// PresentPage proyecta una página completa. Intenta una sola consulta batch
// con los ids de inventario de la página; si el batch falla, degrada a
// consultas individuales concurrentes acotadas, de modo que el fallo de un
// producto no afecte ni retrase a los demás.
func (uc *CatalogUseCase) PresentPage(ctx context.Context, products []*entity.Product, page repository.Page, total int) dto.ProductPageResponse {
	quantities := uc.lookupPage(ctx, products)
	items := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, toProductResponse(p, quantities[p.ID]))
	}
	return dto.ProductPageResponse{
		Items: items,
		Page:  dto.PageResponse{Page: page.Number, Size: page.Size, Total: total},
	}
}

// lookupPage devuelve las cantidades disponibles por id de producto. Las
// entradas ausentes significan "desconocido".
func (uc *CatalogUseCase) lookupPage(ctx context.Context, products []*entity.Product) map[string]*int {
	quantities := make(map[string]*int, len(products))

	ids := make([]string, 0, len(products))
	seen := map[string]bool{}
	for _, p := range products {
		if p.InventoryID != "" && !seen[p.InventoryID] {
			seen[p.InventoryID] = true
			ids = append(ids, p.InventoryID)
		}
	}
	if len(ids) == 0 {
		return quantities
	}

	batchCtx, cancel := context.WithTimeout(ctx, uc.cfg.LookupTimeout)
	defer cancel()
	infos, err := uc.inventory.GetBatch(batchCtx, ids)
	if err == nil {
		byInventoryID := make(map[string]int, len(infos))
		for _, info := range infos {
			byInventoryID[info.InventoryID] = info.AvailableQuantity
		}
		for _, p := range products {
			if p.InventoryID == "" {
				continue
			}
			if qty, ok := byInventoryID[p.InventoryID]; ok {
				q := qty
				quantities[p.ID] = &q
			}
		}
		return quantities
	}
	uc.log.Warn().Err(err).Int("ids", len(ids)).Msg("batch de inventario falló; degradando a consultas individuales")

	// Consultas individuales acotadas por semáforo, una por id de inventario
	// aunque varios productos lo compartan; cada fallo queda aislado.
	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, uc.cfg.MaxConcurrent)
	byInventoryID := make(map[string]*int, len(ids))
	for _, id := range ids {
		wg.Add(1)
		go func(inventoryID string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			qty := uc.availableQuantity(ctx, inventoryID)
			mu.Lock()
			byInventoryID[inventoryID] = qty
			mu.Unlock()
		}(id)
	}
	wg.Wait()
	for _, p := range products {
		if p.InventoryID == "" {
			continue
		}
		quantities[p.ID] = byInventoryID[p.InventoryID]
	}
	return quantities
}

// availableQuantity consulta la disponibilidad de un id de inventario.
// Devuelve nil ("desconocido") si el producto no tiene referencia o si la
// consulta falla por cualquier causa; el fallo solo se registra en el log.
func (uc *CatalogUseCase) availableQuantity(ctx context.Context, inventoryID string) *int {
	if inventoryID == "" {
		return nil
	}
	lookupCtx, cancel := context.WithTimeout(ctx, uc.cfg.LookupTimeout)
	defer cancel()
	info, err := uc.inventory.GetByID(lookupCtx, inventoryID)
	if err != nil {
		uc.log.Warn().Err(err).Str("inventory_id", inventoryID).Msg("consulta de inventario falló")
		return nil
	}
	if info == nil {
		return nil
	}
	qty := info.AvailableQuantity
	return &qty
}

func toProductResponse(p *entity.Product, availableQuantity *int) dto.ProductResponse {
	attributes := make([]dto.ProductAttributeResponse, 0, len(p.Attributes))
	for _, a := range p.Attributes {
		attributes = append(attributes, dto.ProductAttributeResponse{
			ID:           a.ID,
			Name:         a.Name,
			Value:        a.Value,
			DisplayOrder: a.DisplayOrder,
		})
	}
	images := make([]dto.ProductImageResponse, 0, len(p.Images))
	for _, i := range p.Images {
		images = append(images, dto.ProductImageResponse{
			ID:           i.ID,
			URL:          i.URL,
			AltText:      i.AltText,
			Primary:      i.Primary,
			DisplayOrder: i.DisplayOrder,
		})
	}
	return dto.ProductResponse{
		ID:                p.ID,
		SKU:               p.SKU,
		Name:              p.Name,
		Description:       p.Description,
		Price:             p.Price,
		CategoryID:        p.CategoryID,
		InventoryID:       p.InventoryID,
		Active:            p.Active,
		Visible:           p.Visible,
		Attributes:        attributes,
		Images:            images,
		AvailableQuantity: availableQuantity,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}
