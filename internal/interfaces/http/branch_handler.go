package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/masuelto/almacen-api/internal/application/dto"
	"github.com/masuelto/almacen-api/internal/application/location"
)

// BranchHandler maneja las peticiones HTTP para sucursales (protegido).
type BranchHandler struct {
	uc *location.UseCase
}

// NewBranchHandler construye el handler.
func NewBranchHandler(uc *location.UseCase) *BranchHandler {
	return &BranchHandler{uc: uc}
}

// Create godoc
// @Summary      Crear sucursal
// @Tags         branches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLocationRequest  true  "Datos de la sucursal"
// @Success      201   {object}  dto.LocationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /branch/create [post]
func (h *BranchHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLocationRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	b, err := h.uc.CreateBranch(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToBranchResponse(b))
}

// GetByID godoc
// @Summary      Obtener sucursal por ID
// @Tags         branches
// @Security     Bearer
// @Produce      json
// @Param        id   query  string  true  "ID de la sucursal"
// @Success      200  {object}  dto.LocationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /branch/get-by-id [get]
func (h *BranchHandler) GetByID(c *fiber.Ctx) error {
	b, err := h.uc.GetBranch(c.Context(), c.Query("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToBranchResponse(b))
}

// GetAll godoc
// @Summary      Listar sucursales activas
// @Tags         branches
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LocationResponse
// @Router       /branch/get-all [get]
func (h *BranchHandler) GetAll(c *fiber.Ctx) error {
	list, err := h.uc.ListActiveBranches(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]*dto.LocationResponse, 0, len(list))
	for _, b := range list {
		out = append(out, dto.ToBranchResponse(b))
	}
	return c.JSON(out)
}

// GetByLocation godoc
// @Summary      Listar sucursales por ubicación geográfica
// @Tags         branches
// @Security     Bearer
// @Produce      json
// @Param        location  query  string  true  "Prefijo de ubicación"
// @Success      200  {array}  dto.LocationResponse
// @Router       /branch/get-by-location [get]
func (h *BranchHandler) GetByLocation(c *fiber.Ctx) error {
	list, err := h.uc.ListBranchesByLocation(c.Context(), c.Query("location"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]*dto.LocationResponse, 0, len(list))
	for _, b := range list {
		out = append(out, dto.ToBranchResponse(b))
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar sucursal
// @Tags         branches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    query  string                     true  "ID de la sucursal"
// @Param        body  body  dto.UpdateLocationRequest  true  "Campos a actualizar"
// @Success      200  {object}  dto.LocationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /branch/update [post]
func (h *BranchHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateLocationRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	b, err := h.uc.UpdateBranch(c.Context(), c.Query("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToBranchResponse(b))
}

// UpdateStatus godoc
// @Summary      Activar o desactivar sucursal
// @Tags         branches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    query  string                           true  "ID de la sucursal"
// @Param        body  body  dto.UpdateLocationStatusRequest  true  "ACTIVE | INACTIVE"
// @Success      200  {object}  dto.LocationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /branch/update-status [post]
func (h *BranchHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateLocationStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	b, err := h.uc.UpdateBranchStatus(c.Context(), c.Query("id"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToBranchResponse(b))
}
