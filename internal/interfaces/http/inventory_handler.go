package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/masuelto/almacen-api/internal/application/dto"
	"github.com/masuelto/almacen-api/internal/application/ledger"
	"github.com/masuelto/almacen-api/internal/application/receiving"
	"github.com/masuelto/almacen-api/internal/application/transfer"
	"github.com/masuelto/almacen-api/internal/domain/entity"
)

// InventoryHandler maneja las peticiones HTTP de registros de stock y
// recepciones (protegido). Todas las mutaciones pasan por el ledger.
type InventoryHandler struct {
	ledgerUC    *ledger.UseCase
	receivingUC *receiving.UseCase
	transferUC  *transfer.UseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledgerUC *ledger.UseCase, receivingUC *receiving.UseCase, transferUC *transfer.UseCase) *InventoryHandler {
	return &InventoryHandler{ledgerUC: ledgerUC, receivingUC: receivingUC, transferUC: transferUC}
}

// Create godoc
// @Summary      Crear registro de stock
// @Description  La cantidad inicial entra al ledger como INPUT; si el registro ya existe, se acumula.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockRecordRequest  true  "inventory_item_id, warehouse_id o branch_id, qty"
// @Success      201   {object}  dto.StockRecordResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /inventory/create [post]
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStockRecordRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	rec, err := h.receivingUC.CreateRecord(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToStockRecordResponse(rec))
}

// GetByID godoc
// @Summary      Obtener registro de stock por ID
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   query  string  true  "ID del registro"
// @Success      200  {object}  dto.StockRecordResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /inventory/get-by-id [get]
func (h *InventoryHandler) GetByID(c *fiber.Ctx) error {
	rec, err := h.ledgerUC.GetRecordByID(c.Context(), c.Query("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToStockRecordResponse(rec))
}

// GetAll godoc
// @Summary      Listar todos los registros de stock
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  repository.StockView
// @Router       /inventory/get-all [get]
func (h *InventoryHandler) GetAll(c *fiber.Ctx) error {
	list, err := h.ledgerUC.ListAllRecords(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// GetByWarehouse godoc
// @Summary      Listar stock de una bodega
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  true   "ID de la bodega"
// @Param        page          query  int     false  "Página (desde 1)"  default(1)
// @Param        limit         query  int     false  "Tamaño de página"  default(20)
// @Param        search        query  string  false  "Búsqueda por nombre de ítem"
// @Success      200  {object}  map[string]interface{}
// @Router       /inventory/get-by-warehouse [get]
func (h *InventoryHandler) GetByWarehouse(c *fiber.Ctx) error {
	return h.listByLocation(c, entity.WarehouseRef(c.Query("warehouse_id")))
}

// GetByBranch godoc
// @Summary      Listar stock de una sucursal
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        branch_id  query  string  true   "ID de la sucursal"
// @Param        page       query  int     false  "Página (desde 1)"  default(1)
// @Param        limit      query  int     false  "Tamaño de página"  default(20)
// @Param        search     query  string  false  "Búsqueda por nombre de ítem"
// @Success      200  {object}  map[string]interface{}
// @Router       /inventory/get-by-branch [get]
func (h *InventoryHandler) GetByBranch(c *fiber.Ctx) error {
	return h.listByLocation(c, entity.BranchRef(c.Query("branch_id")))
}

// listByLocation lista paginado; los dashboards externos dependen de la forma
// {page, data, total, totalPages}.
func (h *InventoryHandler) listByLocation(c *fiber.Ctx, loc entity.LocationRef) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return invalidBody(c)
	}
	page.DefaultPage(20)
	list, total, err := h.ledgerUC.ListStockByLocation(c.Context(), loc, c.Query("search"), page.Limit, page.Offset())
	if err != nil {
		return respondError(c, err)
	}
	meta := dto.NewPageMeta(page.Page, page.Limit, total)
	return c.JSON(fiber.Map{
		"page":       meta.Page,
		"data":       list,
		"total":      meta.Total,
		"totalPages": meta.TotalPages,
	})
}

// ProcessInput godoc
// @Summary      Registrar entrada manual de stock
// @Description  Suma quantity a un registro existente y agrega un asiento INPUT/IN al log.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProcessInputRequest  true  "id del registro y quantity"
// @Success      201   {object}  dto.StockRecordResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /inventory/process-input [post]
func (h *InventoryHandler) ProcessInput(c *fiber.Ctx) error {
	var in dto.ProcessInputRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	rec, err := h.receivingUC.ProcessInput(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToStockRecordResponse(rec))
}

// ProcessTransfer godoc
// @Summary      Aprobar y descontar un traslado pendiente
// @Description  Equivale a la transición PENDING → APPROVED: valida todas las líneas
//
//	contra la bodega origen y descuenta todo o nada.
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProcessTransferRequest  true  "id del traslado"
// @Success      200   {object}  dto.TransferResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /inventory/process-transfer [post]
func (h *InventoryHandler) ProcessTransfer(c *fiber.Ctx) error {
	var in dto.ProcessTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	t, err := h.transferUC.Transition(c.Context(), in.ID, entity.TransferStatusApproved)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToTransferResponse(t))
}

// ReceiveOrder godoc
// @Summary      Recibir una orden de compra
// @Description  Procesa cada línea de forma independiente: resuelve el ítem por SKU o
//
//	nombre (creándolo si no existe) y aplica la entrada al ledger. Una línea
//	que falla no revierte las demás.
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReceiveOrderRequest  true  "warehouse_id o branch_id y lines"
// @Success      200   {object}  dto.ReceiveOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /inventory/receive-order [post]
func (h *InventoryHandler) ReceiveOrder(c *fiber.Ctx) error {
	var in dto.ReceiveOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.receivingUC.ReceiveLines(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borrar registro de stock (soft-delete)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   query  string  true  "ID del registro"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /inventory/delete [post]
func (h *InventoryHandler) Delete(c *fiber.Ctx) error {
	if err := h.ledgerUC.SoftDeleteRecord(c.Context(), c.Query("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "registro eliminado"})
}
