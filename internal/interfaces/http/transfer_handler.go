package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/masuelto/almacen-api/internal/application/dto"
	"github.com/masuelto/almacen-api/internal/application/transfer"
)

// TransferHandler maneja las peticiones HTTP de traslados (protegido).
type TransferHandler struct {
	uc *transfer.UseCase
}

// NewTransferHandler construye el handler.
func NewTransferHandler(uc *transfer.UseCase) *TransferHandler {
	return &TransferHandler{uc: uc}
}

// Create godoc
// @Summary      Crear solicitud de traslado
// @Description  Origen: una bodega. Destino: exactamente una bodega o una sucursal.
//
//	El estado inicial siempre es PENDING; no descuenta stock.
//
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransferRequest  true  "from_warehouse, to_warehouse o to_branch, items"
// @Success      201   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /transfer/create [post]
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	t, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToTransferResponse(t))
}

// GetByID godoc
// @Summary      Obtener traslado por ID
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        id   query  string  true  "ID del traslado"
// @Success      200  {object}  dto.TransferResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /transfer/get-by-id [get]
func (h *TransferHandler) GetByID(c *fiber.Ctx) error {
	t, err := h.uc.GetByID(c.Context(), c.Query("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToTransferResponse(t))
}

// UpdateStatus godoc
// @Summary      Transicionar un traslado
// @Description  Transiciones válidas: PENDING → APPROVED (descuenta del origen, todo o
//
//	nada), PENDING → REJECTED/CANCELLED y APPROVED → DELIVERED (suma en el
//	destino y estampa la llegada real). Repetir el estado actual es un no-op.
//
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        id      query  string  true  "ID del traslado"
// @Param        status  query  string  true  "Estado destino"
// @Success      200   {object}  map[string]interface{}
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /transfer/update-status [post]
func (h *TransferHandler) UpdateStatus(c *fiber.Ctx) error {
	t, err := h.uc.Transition(c.Context(), c.Query("id"), c.Query("status"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "estado actualizado",
		"id":      t.ID,
		"status":  t.Status,
	})
}

// GetAll godoc
// @Summary      Listar traslados por estado
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  true  "PENDING | APPROVED | REJECTED | CANCELLED | DELIVERED"
// @Success      200  {array}  dto.TransferResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /transfer/get-all [get]
func (h *TransferHandler) GetAll(c *fiber.Ctx) error {
	status := c.Query("status")
	if status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "status es obligatorio",
		})
	}
	list, err := h.uc.ListByStatus(c.Context(), status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToTransferResponses(list))
}

// GetBySource godoc
// @Summary      Listar traslados por bodega origen
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        source  query  string  true   "ID de la bodega origen"
// @Param        status  query  string  true   "Estado a filtrar"
// @Param        page    query  int     false  "Página (desde 1)"  default(1)
// @Param        limit   query  int     false  "Tamaño de página"  default(5)
// @Success      200  {object}  map[string]interface{}
// @Router       /transfer/get-by-source [get]
func (h *TransferHandler) GetBySource(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return invalidBody(c)
	}
	page.DefaultPage(5)
	list, total, err := h.uc.ListBySource(c.Context(), c.Query("source"), c.Query("status"), page.Limit, page.Offset())
	if err != nil {
		return respondError(c, err)
	}
	// Los dashboards externos dependen de la forma {data, meta}.
	return c.JSON(fiber.Map{
		"data": dto.ToTransferResponses(list),
		"meta": dto.NewPageMeta(page.Page, page.Limit, total),
	})
}

// GetByDestination godoc
// @Summary      Listar traslados por destino (bodega o sucursal)
// @Description  Para DELIVERED ordena por llegada real descendente; el resto por creación.
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        destination  query  string  true   "ID de la bodega o sucursal destino"
// @Param        status       query  string  true   "Estado a filtrar"
// @Param        page         query  int     false  "Página (desde 1)"  default(1)
// @Param        limit        query  int     false  "Tamaño de página"  default(5)
// @Success      200  {object}  map[string]interface{}
// @Router       /transfer/get-by-destination [get]
func (h *TransferHandler) GetByDestination(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return invalidBody(c)
	}
	page.DefaultPage(5)
	list, total, err := h.uc.ListByDestination(c.Context(), c.Query("destination"), c.Query("status"), page.Limit, page.Offset())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"data": dto.ToTransferResponses(list),
		"meta": dto.NewPageMeta(page.Page, page.Limit, total),
	})
}
