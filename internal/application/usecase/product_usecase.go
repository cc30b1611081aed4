package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/soulf/catalogo-api/internal/application/dto"
	"github.com/soulf/catalogo-api/internal/domain"
	"github.com/soulf/catalogo-api/internal/domain/entity"
	"github.com/soulf/catalogo-api/internal/domain/repository"
)

// ProductUseCase casos de uso del registro de productos: CRUD con unicidad de
// SKU, vínculo a categoría, reemplazo total de atributos/imágenes y búsqueda
// multi-filtro. Las mutaciones corren dentro de una transacción (TxRunner).
type ProductUseCase struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	tx         TxRunner
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(products repository.ProductRepository, categories repository.CategoryRepository, tx TxRunner) *ProductUseCase {
	return &ProductUseCase{products: products, categories: categories, tx: tx}
}

// Create crea un producto. El SKU es único global; la categoría, si viene, debe
// existir; Active y Visible valen true cuando no se especifican. Atributos e
// imágenes se construyen 1:1 desde el comando, sellados con el id del producto.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*entity.Product, error) {
	if err := validateProductFields(in.SKU, in.Name, in.Price); err != nil {
		return nil, err
	}
	if err := validateCollections(in.Attributes, in.Images); err != nil {
		return nil, err
	}
	existing, err := uc.products.GetBySKU(in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.CategoryID != "" {
		if err := uc.resolveCategory(in.CategoryID); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		SKU:         in.SKU,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		CategoryID:  in.CategoryID,
		InventoryID: in.InventoryID,
		Active:      boolOrDefault(in.Active, true),
		Visible:     boolOrDefault(in.Visible, true),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	product.Attributes = buildAttributes(product.ID, in.Attributes)
	product.Images = buildImages(product.ID, in.Images)

	err = uc.tx.Run(ctx, func(products repository.ProductRepository) error {
		return products.Create(product)
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// Update actualiza un producto. SKU, nombre, descripción, precio y referencia
// de inventario sobrescriben siempre; Active/Visible solo cuando el comando
// trae valor (nil conserva lo almacenado, asimétrico con el padre de las
// categorías). Una lista de atributos o imágenes presente —incluso vacía—
// reemplaza la colección entera; ausente, la deja intacta.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*entity.Product, error) {
	if err := validateProductFields(in.SKU, in.Name, in.Price); err != nil {
		return nil, err
	}
	if err := validateCollections(in.Attributes, in.Images); err != nil {
		return nil, err
	}
	product, err := uc.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.SKU != product.SKU {
		other, err := uc.products.GetBySKU(in.SKU)
		if err != nil {
			return nil, err
		}
		if other != nil {
			return nil, domain.ErrDuplicate
		}
	}

	product.SKU = in.SKU
	product.Name = in.Name
	product.Description = in.Description
	product.Price = in.Price
	product.InventoryID = in.InventoryID
	if in.Active != nil {
		product.Active = *in.Active
	}
	if in.Visible != nil {
		product.Visible = *in.Visible
	}

	if in.CategoryID != "" {
		if err := uc.resolveCategory(in.CategoryID); err != nil {
			return nil, err
		}
		product.CategoryID = in.CategoryID
	} else if product.CategoryID != "" {
		product.CategoryID = ""
	}

	var newAttributes []entity.ProductAttribute
	if in.Attributes != nil {
		newAttributes = buildAttributes(product.ID, in.Attributes)
	}
	var newImages []entity.ProductImage
	if in.Images != nil {
		newImages = buildImages(product.ID, in.Images)
	}

	product.UpdatedAt = time.Now()
	err = uc.tx.Run(ctx, func(products repository.ProductRepository) error {
		if err := products.Update(product); err != nil {
			return err
		}
		if in.Attributes != nil {
			if err := products.ReplaceAttributes(product.ID, newAttributes); err != nil {
				return err
			}
		}
		if in.Images != nil {
			if err := products.ReplaceImages(product.ID, newImages); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if in.Attributes != nil {
		product.Attributes = newAttributes
	}
	if in.Images != nil {
		product.Images = newImages
	}
	return product, nil
}

// Delete elimina el producto y sus atributos e imágenes de forma permanente.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.products.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.tx.Run(ctx, func(products repository.ProductRepository) error {
		return products.Delete(id)
	})
}

// Deactivate marca el producto como inactivo (soft delete). Idempotente.
func (uc *ProductUseCase) Deactivate(id string) error {
	product, err := uc.products.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	product.Active = false
	product.UpdatedAt = time.Now()
	return uc.products.Update(product)
}

// GetByID obtiene un producto por ID, con atributos e imágenes.
func (uc *ProductUseCase) GetByID(id string) (*entity.Product, error) {
	product, err := uc.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// GetBySKU obtiene un producto por SKU, con atributos e imágenes.
func (uc *ProductUseCase) GetBySKU(sku string) (*entity.Product, error) {
	product, err := uc.products.GetBySKU(sku)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// ListActiveVisible lista productos activos y visibles, paginados.
func (uc *ProductUseCase) ListActiveVisible(page repository.Page) ([]*entity.Product, int, error) {
	return uc.products.ListActiveVisible(page)
}

// ListByCategory lista productos activos y visibles de una categoría, paginados.
func (uc *ProductUseCase) ListByCategory(categoryID string, page repository.Page) ([]*entity.Product, int, error) {
	return uc.products.ListByCategory(categoryID, page)
}

// Search compone los filtros presentes (AND) contra el almacén. Un filtro
// ausente no impone restricción alguna.
func (uc *ProductUseCase) Search(in dto.SearchProductsRequest, page repository.Page) ([]*entity.Product, int, error) {
	filter := repository.ProductFilter{
		Name:       in.Name,
		CategoryID: in.CategoryID,
		MinPrice:   in.MinPrice,
		MaxPrice:   in.MaxPrice,
		Active:     in.Active,
		Visible:    in.Visible,
	}
	return uc.products.Search(filter, page)
}

// resolveCategory verifica que la categoría exista antes de vincularla.
func (uc *ProductUseCase) resolveCategory(categoryID string) error {
	category, err := uc.categories.GetByID(categoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrNotFound
	}
	return nil
}

// validateProductFields rechaza campos obligatorios vacíos y precios no
// positivos antes de intentar cualquier escritura.
func validateProductFields(sku, name string, price decimal.Decimal) error {
	if sku == "" || name == "" {
		return domain.ErrInvalidInput
	}
	if price.Sign() <= 0 {
		return domain.ErrInvalidInput
	}
	return nil
}

// validateCollections rechaza atributos sin nombre e imágenes sin URL.
func validateCollections(attributes []dto.ProductAttributeRequest, images []dto.ProductImageRequest) error {
	for _, a := range attributes {
		if a.Name == "" {
			return domain.ErrInvalidInput
		}
	}
	for _, i := range images {
		if i.URL == "" {
			return domain.ErrInvalidInput
		}
	}
	return nil
}

func boolOrDefault(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func buildAttributes(productID string, in []dto.ProductAttributeRequest) []entity.ProductAttribute {
	attributes := make([]entity.ProductAttribute, 0, len(in))
	for _, a := range in {
		attributes = append(attributes, entity.ProductAttribute{
			ID:           uuid.New().String(),
			ProductID:    productID,
			Name:         a.Name,
			Value:        a.Value,
			DisplayOrder: a.DisplayOrder,
		})
	}
	return attributes
}

func buildImages(productID string, in []dto.ProductImageRequest) []entity.ProductImage {
	images := make([]entity.ProductImage, 0, len(in))
	for _, i := range in {
		images = append(images, entity.ProductImage{
			ID:           uuid.New().String(),
			ProductID:    productID,
			URL:          i.URL,
			AltText:      i.AltText,
			Primary:      i.Primary,
			DisplayOrder: i.DisplayOrder,
		})
	}
	return images
}
