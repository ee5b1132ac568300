package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/masuelto/almacen-api/internal/application/dto"
	"github.com/masuelto/almacen-api/internal/application/ledger"
	"github.com/masuelto/almacen-api/internal/domain/repository"
)

// LogsHandler expone el log de transacciones del ledger (protegido, solo lectura).
type LogsHandler struct {
	uc *ledger.UseCase
}

// NewLogsHandler construye el handler.
func NewLogsHandler(uc *ledger.UseCase) *LogsHandler {
	return &LogsHandler{uc: uc}
}

// GetAll godoc
// @Summary      Listar asientos del log de inventario
// @Description  Historial de movimientos de una ubicación, más recientes primero.
//
//	Exactamente uno de warehouse_id/branch_id es obligatorio.
//
// @Tags         inventory-logs
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  false  "ID de bodega"
// @Param        branch_id     query  string  false  "ID de sucursal"
// @Param        search        query  string  false  "Búsqueda por nombre de ítem"
// @Param        from          query  string  false  "Fecha inicial (RFC 3339)"
// @Param        to            query  string  false  "Fecha final (RFC 3339)"
// @Param        page          query  int     false  "Página (desde 1)"  default(1)
// @Param        limit         query  int     false  "Tamaño de página"  default(20)
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /inventory-logs/get-all [get]
func (h *LogsHandler) GetAll(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return invalidBody(c)
	}
	page.DefaultPage(20)

	f := repository.TransactionFilter{
		Search: c.Query("search"),
		Limit:  page.Limit,
		Offset: page.Offset(),
	}
	if v := c.Query("warehouse_id"); v != "" {
		f.WarehouseID = &v
	}
	if v := c.Query("branch_id"); v != "" {
		f.BranchID = &v
	}
	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe ser RFC 3339"})
		}
		f.From = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe ser RFC 3339"})
		}
		f.To = &t
	}

	list, total, err := h.uc.ListTransactions(c.Context(), f)
	if err != nil {
		return respondError(c, err)
	}
	// El reporte externo depende de la forma {page, limit, total, totalPages, data}.
	meta := dto.NewPageMeta(page.Page, page.Limit, total)
	return c.JSON(fiber.Map{
		"page":       meta.Page,
		"limit":      meta.Limit,
		"total":      meta.Total,
		"totalPages": meta.TotalPages,
		"data":       list,
	})
}
