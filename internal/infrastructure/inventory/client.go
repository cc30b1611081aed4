package inventory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/soulf/catalogo-api/internal/application/catalog"
)

// Verificar en tiempo de compilación que Client implementa InventoryProvider.
var _ catalog.InventoryProvider = (*Client)(nil)

// Client adaptador HTTP hacia el servicio de inventario.
// Usa net/http de la librería estándar; el contrato del servicio expone
// consulta por id, por SKU y un batch por lista de ids.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient construye el adaptador. timeout acota cada petición a nivel de
// transporte; los casos de uso imponen además su propio context.WithTimeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// inventoryResponse cuerpo JSON del servicio de inventario.
type inventoryResponse struct {
	InventoryID       string `json:"inventoryId"`
	SKU               string `json:"sku"`
	AvailableQuantity int    `json:"availableQuantity"`
	ReservedQuantity  int    `json:"reservedQuantity"`
	TotalQuantity     int    `json:"totalQuantity"`
	InStock           bool   `json:"inStock"`
}

func (r inventoryResponse) toInfo() catalog.InventoryInfo {
	return catalog.InventoryInfo{
		InventoryID:       r.InventoryID,
		SKU:               r.SKU,
		AvailableQuantity: r.AvailableQuantity,
		ReservedQuantity:  r.ReservedQuantity,
		TotalQuantity:     r.TotalQuantity,
		InStock:           r.InStock,
	}
}

// GetByID consulta la disponibilidad de un id de inventario.
func (c *Client) GetByID(ctx context.Context, inventoryID string) (*catalog.InventoryInfo, error) {
	var out inventoryResponse
	endpoint := c.baseURL + "/api/inventory/" + url.PathEscape(inventoryID)
	if err := c.get(ctx, endpoint, &out); err != nil {
		return nil, err
	}
	info := out.toInfo()
	return &info, nil
}

// GetBySKU consulta la disponibilidad por SKU. El camino de lectura del
// catálogo no lo usa, pero el contrato del servicio lo expone.
func (c *Client) GetBySKU(ctx context.Context, sku string) (*catalog.InventoryInfo, error) {
	var out inventoryResponse
	endpoint := c.baseURL + "/api/inventory/sku/" + url.PathEscape(sku)
	if err := c.get(ctx, endpoint, &out); err != nil {
		return nil, err
	}
	info := out.toInfo()
	return &info, nil
}

// GetBatch consulta varios ids en una sola petición.
func (c *Client) GetBatch(ctx context.Context, inventoryIDs []string) ([]catalog.InventoryInfo, error) {
	q := url.Values{}
	q.Set("inventoryIds", strings.Join(inventoryIDs, ","))
	endpoint := c.baseURL + "/api/inventory/batch?" + q.Encode()

	var out []inventoryResponse
	if err := c.get(ctx, endpoint, &out); err != nil {
		return nil, err
	}
	infos := make([]catalog.InventoryInfo, 0, len(out))
	for _, r := range out {
		infos = append(infos, r.toInfo())
	}
	return infos, nil
}

func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("inventario: crear request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("inventario: llamada HTTP: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Leer y descartar el cuerpo para reutilizar la conexión.
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("inventario: status %d en %s", resp.StatusCode, endpoint)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("inventario: decodificar respuesta: %w", err)
	}
	return nil
}
