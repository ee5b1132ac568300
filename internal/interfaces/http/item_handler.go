package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/masuelto/almacen-api/internal/application/catalog"
	"github.com/masuelto/almacen-api/internal/application/dto"
)

// ItemHandler maneja las peticiones HTTP del catálogo de ítems (protegido).
type ItemHandler struct {
	uc *catalog.UseCase
}

// NewItemHandler construye el handler.
func NewItemHandler(uc *catalog.UseCase) *ItemHandler {
	return &ItemHandler{uc: uc}
}

// Create godoc
// @Summary      Crear ítem de catálogo
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "Datos del ítem"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /item/create [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	item, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToItemResponse(item))
}

// FindBySKU godoc
// @Summary      Obtener ítem por SKU
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        skuid  query  string  true  "SKU del ítem"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /item/find-by-skuid [get]
func (h *ItemHandler) FindBySKU(c *fiber.Ctx) error {
	item, err := h.uc.GetBySKU(c.Context(), c.Query("skuid"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToItemResponse(item))
}

// FindByCategory godoc
// @Summary      Listar ítems por categoría
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        category  query  string  true  "Categoría"
// @Success      200  {array}  dto.ItemResponse
// @Router       /item/find-by-category [get]
func (h *ItemHandler) FindByCategory(c *fiber.Ctx) error {
	list, err := h.uc.ListByCategory(c.Context(), c.Query("category"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToItemResponses(list))
}

// GetAll godoc
// @Summary      Listar catálogo paginado
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        page    query  int     false  "Página (desde 1)"  default(1)
// @Param        limit   query  int     false  "Tamaño de página"  default(10)
// @Param        search  query  string  false  "Búsqueda por nombre"
// @Param        sort    query  string  false  "az | za | price-asc | price-desc | category"
// @Success      200  {object}  map[string]interface{}
// @Router       /item/get-all [get]
func (h *ItemHandler) GetAll(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return invalidBody(c)
	}
	page.DefaultPage(10)
	list, total, err := h.uc.List(c.Context(), c.Query("search"), c.Query("sort", "az"), page.Limit, page.Offset())
	if err != nil {
		return respondError(c, err)
	}
	meta := dto.NewPageMeta(page.Page, page.Limit, total)
	// Forma plana, no {data, meta}: los dashboards del catálogo la esperan así.
	return c.JSON(fiber.Map{
		"page":       meta.Page,
		"limit":      meta.Limit,
		"total":      meta.Total,
		"totalPages": meta.TotalPages,
		"data":       dto.ToItemResponses(list),
	})
}

// Update godoc
// @Summary      Actualizar ítem (parcial; el SKU es inmutable)
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        skuid  query  string                 true  "SKU del ítem"
// @Param        body   body   dto.UpdateItemRequest  true  "Campos a actualizar"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /item/update [post]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	item, err := h.uc.Update(c.Context(), c.Query("skuid"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToItemResponse(item))
}

// Delete godoc
// @Summary      Borrar ítem (soft-delete; el historial se conserva)
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        skuid  query  string  true  "SKU del ítem"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /item/delete [post]
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.SoftDelete(c.Context(), c.Query("skuid")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "ítem eliminado"})
}
