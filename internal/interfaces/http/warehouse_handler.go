package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/masuelto/almacen-api/internal/application/dto"
	"github.com/masuelto/almacen-api/internal/application/location"
)

// WarehouseHandler maneja las peticiones HTTP para bodegas (protegido).
type WarehouseHandler struct {
	uc *location.UseCase
}

// NewWarehouseHandler construye el handler.
func NewWarehouseHandler(uc *location.UseCase) *WarehouseHandler {
	return &WarehouseHandler{uc: uc}
}

// Create godoc
// @Summary      Crear bodega
// @Tags         warehouses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLocationRequest  true  "Datos de la bodega"
// @Success      201   {object}  dto.LocationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /warehouse/create [post]
func (h *WarehouseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLocationRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	w, err := h.uc.CreateWarehouse(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToWarehouseResponse(w))
}

// GetByID godoc
// @Summary      Obtener bodega por ID
// @Tags         warehouses
// @Security     Bearer
// @Produce      json
// @Param        id   query  string  true  "ID de la bodega"
// @Success      200  {object}  dto.LocationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /warehouse/get-by-id [get]
func (h *WarehouseHandler) GetByID(c *fiber.Ctx) error {
	w, err := h.uc.GetWarehouse(c.Context(), c.Query("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToWarehouseResponse(w))
}

// GetAll godoc
// @Summary      Listar bodegas activas
// @Tags         warehouses
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LocationResponse
// @Router       /warehouse/get-all [get]
func (h *WarehouseHandler) GetAll(c *fiber.Ctx) error {
	list, err := h.uc.ListActiveWarehouses(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]*dto.LocationResponse, 0, len(list))
	for _, w := range list {
		out = append(out, dto.ToWarehouseResponse(w))
	}
	return c.JSON(out)
}

// GetByLocation godoc
// @Summary      Listar bodegas por ubicación geográfica
// @Tags         warehouses
// @Security     Bearer
// @Produce      json
// @Param        location  query  string  true  "Prefijo de ubicación"
// @Success      200  {array}  dto.LocationResponse
// @Router       /warehouse/get-by-location [get]
func (h *WarehouseHandler) GetByLocation(c *fiber.Ctx) error {
	list, err := h.uc.ListWarehousesByLocation(c.Context(), c.Query("location"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]*dto.LocationResponse, 0, len(list))
	for _, w := range list {
		out = append(out, dto.ToWarehouseResponse(w))
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar bodega
// @Tags         warehouses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    query  string                     true  "ID de la bodega"
// @Param        body  body  dto.UpdateLocationRequest  true  "Campos a actualizar"
// @Success      200  {object}  dto.LocationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /warehouse/update [post]
func (h *WarehouseHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateLocationRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	w, err := h.uc.UpdateWarehouse(c.Context(), c.Query("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToWarehouseResponse(w))
}

// UpdateStatus godoc
// @Summary      Activar o desactivar bodega
// @Description  Una bodega INACTIVE conserva stock e historial pero rechaza operaciones nuevas.
// @Tags         warehouses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    query  string                           true  "ID de la bodega"
// @Param        body  body  dto.UpdateLocationStatusRequest  true  "ACTIVE | INACTIVE"
// @Success      200  {object}  dto.LocationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /warehouse/update-status [post]
func (h *WarehouseHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateLocationStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	w, err := h.uc.UpdateWarehouseStatus(c.Context(), c.Query("id"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToWarehouseResponse(w))
}
