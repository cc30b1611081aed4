package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/soulf/catalogo-api/internal/application/catalog"
	"github.com/soulf/catalogo-api/internal/application/dto"
	"github.com/soulf/catalogo-api/internal/application/usecase"
	"github.com/soulf/catalogo-api/internal/domain/repository"
)

// ProductHandler maneja las peticiones HTTP para Product. Las lecturas pasan
// por la fachada de catálogo para adjuntar la disponibilidad de inventario.
type ProductHandler struct {
	uc      *usecase.ProductUseCase
	catalog *catalog.CatalogUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, catalogUC *catalog.CatalogUseCase) *ProductHandler {
	return &ProductHandler{uc: uc, catalog: catalogUC}
}

// pageFromQuery arma los parámetros de página desde los query params.
func pageFromQuery(c *fiber.Ctx) repository.Page {
	in := dto.PageRequest{
		Page: c.QueryInt("page", 0),
		Size: c.QueryInt("size", 20),
		Sort: c.Query("sort", "created_at"),
		Dir:  c.Query("dir", "asc"),
	}
	in.Normalize()
	return in.ToPage()
}

// List godoc
// @Summary      Listar productos activos y visibles (paginado, enriquecido)
// @Tags         products
// @Produce      json
// @Param        page  query  int     false  "Página (base cero)"
// @Param        size  query  int     false  "Tamaño de página"
// @Param        sort  query  string  false  "Campo de orden"
// @Param        dir   query  string  false  "asc o desc"
// @Success      200   {object}  dto.ProductPageResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	products, total, err := h.uc.ListActiveVisible(page)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(h.catalog.PresentPage(c.UserContext(), products, page, total))
}

// Search godoc
// @Summary      Buscar productos con filtros opcionales (paginado, enriquecido)
// @Tags         products
// @Produce      json
// @Param        name         query  string  false  "Substring del nombre (sin mayúsculas)"
// @Param        category_id  query  string  false  "ID de categoría"
// @Param        min_price    query  number  false  "Precio mínimo inclusivo"
// @Param        max_price    query  number  false  "Precio máximo inclusivo"
// @Param        active       query  bool    false  "Flag activo"
// @Param        visible      query  bool    false  "Flag visible"
// @Success      200  {object}  dto.ProductPageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/products/search [get]
func (h *ProductHandler) Search(c *fiber.Ctx) error {
	var in dto.SearchProductsRequest
	if v := c.Query("name"); v != "" {
		in.Name = &v
	}
	if v := c.Query("category_id"); v != "" {
		in.CategoryID = &v
	}
	if v := c.Query("min_price"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "min_price inválido"})
		}
		in.MinPrice = &d
	}
	if v := c.Query("max_price"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "max_price inválido"})
		}
		in.MaxPrice = &d
	}
	if v := c.Query("active"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "active inválido"})
		}
		in.Active = &b
	}
	if v := c.Query("visible"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "visible inválido"})
		}
		in.Visible = &b
	}

	page := pageFromQuery(c)
	products, total, err := h.uc.Search(in, page)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(h.catalog.PresentPage(c.UserContext(), products, page, total))
}

// ListByCategory godoc
// @Summary      Listar productos activos y visibles de una categoría
// @Tags         products
// @Produce      json
// @Param        categoryId  path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.ProductPageResponse
// @Router       /api/products/category/{categoryId} [get]
func (h *ProductHandler) ListByCategory(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	products, total, err := h.uc.ListByCategory(c.Params("categoryId"), page)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(h.catalog.PresentPage(c.UserContext(), products, page, total))
}

// GetByID godoc
// @Summary      Obtener producto por ID (enriquecido)
// @Tags         products
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	product, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(h.catalog.Present(c.UserContext(), product))
}

// GetBySKU godoc
// @Summary      Obtener producto por SKU (enriquecido)
// @Tags         products
// @Produce      json
// @Param        sku  path  string  true  "SKU del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/sku/{sku} [get]
func (h *ProductHandler) GetBySKU(c *fiber.Ctx) error {
	product, err := h.uc.GetBySKU(c.Params("sku"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(h.catalog.Present(c.UserContext(), product))
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.SKU == "" || in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "sku y name son requeridos"})
	}
	product, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(h.catalog.Present(c.UserContext(), product))
}

// Update godoc
// @Summary      Actualizar producto
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	product, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(h.catalog.Present(c.UserContext(), product))
}

// Delete godoc
// @Summary      Eliminar producto (con atributos e imágenes)
// @Tags         products
// @Param        id  path  string  true  "ID del producto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Deactivate godoc
// @Summary      Desactivar producto (soft delete)
// @Tags         products
// @Param        id  path  string  true  "ID del producto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/deactivate [patch]
func (h *ProductHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.uc.Deactivate(c.Params("id")); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
