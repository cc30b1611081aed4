package catalog_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soulf/catalogo-api/internal/application/catalog"
	"github.com/soulf/catalogo-api/internal/domain/entity"
	"github.com/soulf/catalogo-api/internal/domain/repository"
	"github.com/soulf/catalogo-api/pkg/logger"
)

// fakeInventory simula el servicio de inventario: cantidades por id, ids que
// fallan, y un switch para tumbar el endpoint batch completo.
type fakeInventory struct {
	mu          sync.Mutex
	quantities  map[string]int
	failing     map[string]bool
	batchFails  bool
	singleCalls int
	batchCalls  int
}

func (f *fakeInventory) GetByID(_ context.Context, inventoryID string) (*catalog.InventoryInfo, error) {
	f.mu.Lock()
	f.singleCalls++
	f.mu.Unlock()
	if f.failing[inventoryID] {
		return nil, errors.New("inventario caído")
	}
	qty, ok := f.quantities[inventoryID]
	if !ok {
		return nil, errors.New("inventario no encontrado")
	}
	return &catalog.InventoryInfo{InventoryID: inventoryID, AvailableQuantity: qty}, nil
}

func (f *fakeInventory) GetBatch(_ context.Context, inventoryIDs []string) ([]catalog.InventoryInfo, error) {
	f.mu.Lock()
	f.batchCalls++
	f.mu.Unlock()
	if f.batchFails {
		return nil, errors.New("batch caído")
	}
	var infos []catalog.InventoryInfo
	for _, id := range inventoryIDs {
		if qty, ok := f.quantities[id]; ok && !f.failing[id] {
			infos = append(infos, catalog.InventoryInfo{InventoryID: id, AvailableQuantity: qty})
		}
	}
	return infos, nil
}

func newCatalogUC(inv *fakeInventory) *catalog.CatalogUseCase {
	return catalog.NewCatalogUseCase(inv, logger.Nop(), catalog.Config{MaxConcurrent: 4})
}

func producto(id, inventoryID string) *entity.Product {
	return &entity.Product{
		ID:          id,
		SKU:         "SKU-" + id,
		Name:        "Producto " + id,
		Price:       decimal.NewFromInt(10),
		InventoryID: inventoryID,
		Active:      true,
		Visible:     true,
	}
}

func TestPresent_AdjuntaCantidadDisponible(t *testing.T) {
	inv := &fakeInventory{quantities: map[string]int{"inv-1": 7}}
	uc := newCatalogUC(inv)

	out := uc.Present(context.Background(), producto("p1", "inv-1"))
	require.NotNil(t, out.AvailableQuantity)
	assert.Equal(t, 7, *out.AvailableQuantity)
	assert.Equal(t, 1, inv.singleCalls)
}

// Sin referencia de inventario no se hace ninguna llamada externa y la
// cantidad queda desconocida.
func TestPresent_SinReferenciaNoConsulta(t *testing.T) {
	inv := &fakeInventory{quantities: map[string]int{}}
	uc := newCatalogUC(inv)

	out := uc.Present(context.Background(), producto("p1", ""))
	assert.Nil(t, out.AvailableQuantity)
	assert.Zero(t, inv.singleCalls)
}

// Cualquier fallo del servicio externo se degrada a cantidad desconocida; la
// lectura nunca falla.
func TestPresent_FalloSeDegradaADesconocido(t *testing.T) {
	inv := &fakeInventory{
		quantities: map[string]int{},
		failing:    map[string]bool{"inv-1": true},
	}
	uc := newCatalogUC(inv)

	out := uc.Present(context.Background(), producto("p1", "inv-1"))
	assert.Nil(t, out.AvailableQuantity)
	assert.Equal(t, "SKU-p1", out.SKU, "la proyección del producto se conserva intacta")
}

func TestPresentPage_UsaBatchUnaSolaVez(t *testing.T) {
	inv := &fakeInventory{quantities: map[string]int{"inv-1": 1, "inv-2": 2, "inv-3": 3}}
	uc := newCatalogUC(inv)

	products := []*entity.Product{
		producto("p1", "inv-1"),
		producto("p2", "inv-2"),
		producto("p3", "inv-3"),
	}
	out := uc.PresentPage(context.Background(), products, repository.Page{Number: 0, Size: 20}, 3)

	require.Len(t, out.Items, 3)
	assert.Equal(t, 1, inv.batchCalls)
	assert.Zero(t, inv.singleCalls, "con batch exitoso no hay consultas individuales")
	for i, want := range []int{1, 2, 3} {
		require.NotNil(t, out.Items[i].AvailableQuantity)
		assert.Equal(t, want, *out.Items[i].AvailableQuantity)
	}
	assert.Equal(t, 3, out.Page.Total)
	assert.Equal(t, 20, out.Page.Size)
}

// En una página de 3 productos, el fallo de enriquecimiento de uno deja su
// cantidad ausente y no toca las de los otros dos; la llamada global no falla.
func TestPresentPage_FalloAisladoPorProducto(t *testing.T) {
	inv := &fakeInventory{
		quantities: map[string]int{"inv-1": 1, "inv-3": 3},
		failing:    map[string]bool{"inv-2": true},
	}
	uc := newCatalogUC(inv)

	products := []*entity.Product{
		producto("p1", "inv-1"),
		producto("p2", "inv-2"),
		producto("p3", "inv-3"),
	}
	out := uc.PresentPage(context.Background(), products, repository.Page{Size: 20}, 3)

	require.Len(t, out.Items, 3)
	require.NotNil(t, out.Items[0].AvailableQuantity)
	assert.Equal(t, 1, *out.Items[0].AvailableQuantity)
	assert.Nil(t, out.Items[1].AvailableQuantity)
	require.NotNil(t, out.Items[2].AvailableQuantity)
	assert.Equal(t, 3, *out.Items[2].AvailableQuantity)
}

// Si el endpoint batch se cae, se degrada a consultas individuales acotadas y
// el aislamiento por producto se mantiene.
func TestPresentPage_BatchCaidoDegradaAIndividuales(t *testing.T) {
	inv := &fakeInventory{
		quantities: map[string]int{"inv-1": 1, "inv-3": 3},
		failing:    map[string]bool{"inv-2": true},
		batchFails: true,
	}
	uc := newCatalogUC(inv)

	products := []*entity.Product{
		producto("p1", "inv-1"),
		producto("p2", "inv-2"),
		producto("p3", "inv-3"),
		producto("p4", ""), // sin referencia: ni siquiera en el fallback se consulta
	}
	out := uc.PresentPage(context.Background(), products, repository.Page{Size: 20}, 4)

	require.Len(t, out.Items, 4)
	assert.Equal(t, 1, inv.batchCalls)
	assert.Equal(t, 3, inv.singleCalls)
	require.NotNil(t, out.Items[0].AvailableQuantity)
	assert.Nil(t, out.Items[1].AvailableQuantity)
	require.NotNil(t, out.Items[2].AvailableQuantity)
	assert.Nil(t, out.Items[3].AvailableQuantity)
}

// En el fallback, un id de inventario compartido por varios productos se
// consulta una sola vez y la cantidad se reparte entre todos.
func TestPresentPage_FallbackNoRepiteIdsCompartidos(t *testing.T) {
	inv := &fakeInventory{
		quantities: map[string]int{"inv-1": 5, "inv-2": 8},
		batchFails: true,
	}
	uc := newCatalogUC(inv)

	products := []*entity.Product{
		producto("p1", "inv-1"),
		producto("p2", "inv-1"),
		producto("p3", "inv-2"),
	}
	out := uc.PresentPage(context.Background(), products, repository.Page{Size: 20}, 3)

	require.Len(t, out.Items, 3)
	assert.Equal(t, 2, inv.singleCalls, "una consulta por id único, no por producto")
	require.NotNil(t, out.Items[0].AvailableQuantity)
	require.NotNil(t, out.Items[1].AvailableQuantity)
	assert.Equal(t, 5, *out.Items[0].AvailableQuantity)
	assert.Equal(t, 5, *out.Items[1].AvailableQuantity)
	require.NotNil(t, out.Items[2].AvailableQuantity)
	assert.Equal(t, 8, *out.Items[2].AvailableQuantity)
}

func TestPresentPage_SinReferenciasNoLlama(t *testing.T) {
	inv := &fakeInventory{quantities: map[string]int{}}
	uc := newCatalogUC(inv)

	out := uc.PresentPage(context.Background(), []*entity.Product{
		producto("p1", ""), producto("p2", ""),
	}, repository.Page{Size: 20}, 2)

	require.Len(t, out.Items, 2)
	assert.Zero(t, inv.batchCalls)
	assert.Zero(t, inv.singleCalls)
}

func TestPresent_ProyectaAtributosEImagenes(t *testing.T) {
	inv := &fakeInventory{quantities: map[string]int{}}
	uc := newCatalogUC(inv)

	p := producto("p1", "")
	p.Attributes = []entity.ProductAttribute{{ID: "a1", ProductID: "p1", Name: "color", Value: "rojo"}}
	p.Images = []entity.ProductImage{{ID: "i1", ProductID: "p1", URL: "https://cdn/x.jpg", Primary: true}}

	out := uc.Present(context.Background(), p)
	require.Len(t, out.Attributes, 1)
	assert.Equal(t, "color", out.Attributes[0].Name)
	require.Len(t, out.Images, 1)
	assert.True(t, out.Images[0].Primary)
}
