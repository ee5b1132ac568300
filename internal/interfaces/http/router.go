package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/masuelto/almacen-api/internal/application/catalog"
	"github.com/masuelto/almacen-api/internal/application/ledger"
	"github.com/masuelto/almacen-api/internal/application/location"
	"github.com/masuelto/almacen-api/internal/application/receiving"
	"github.com/masuelto/almacen-api/internal/application/transfer"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CatalogUC   *catalog.UseCase
	LocationUC  *location.UseCase
	LedgerUC    *ledger.UseCase
	ReceivingUC *receiving.UseCase
	TransferUC  *transfer.UseCase
	JWTSecret   string
}

// Router registra las rutas de la API. Todas las rutas de negocio requieren
// Bearer Token; las mutaciones de catálogo y ubicaciones además exigen rol.
func Router(app *fiber.App, deps RouterDeps) {
	auth := AuthMiddleware(deps.JWTSecret)
	adminOnly := RequireRole("admin")
	stockRoles := RequireRole("admin", "bodeguero", "encargado")

	// Items (catálogo)
	items := app.Group("/item", auth)
	itemHandler := NewItemHandler(deps.CatalogUC)
	items.Post("/create", adminOnly, itemHandler.Create)
	items.Post("/update", adminOnly, itemHandler.Update)
	items.Post("/delete", adminOnly, itemHandler.Delete)
	items.Get("/find-by-skuid", itemHandler.FindBySKU)
	items.Get("/find-by-category", itemHandler.FindByCategory)
	items.Get("/get-all", itemHandler.GetAll)

	// Warehouses
	warehouses := app.Group("/warehouse", auth)
	warehouseHandler := NewWarehouseHandler(deps.LocationUC)
	warehouses.Post("/create", adminOnly, warehouseHandler.Create)
	warehouses.Post("/update", adminOnly, warehouseHandler.Update)
	warehouses.Post("/update-status", adminOnly, warehouseHandler.UpdateStatus)
	warehouses.Get("/get-by-id", warehouseHandler.GetByID)
	warehouses.Get("/get-all", warehouseHandler.GetAll)
	warehouses.Get("/get-by-location", warehouseHandler.GetByLocation)

	// Branches
	branches := app.Group("/branch", auth)
	branchHandler := NewBranchHandler(deps.LocationUC)
	branches.Post("/create", adminOnly, branchHandler.Create)
	branches.Post("/update", adminOnly, branchHandler.Update)
	branches.Post("/update-status", adminOnly, branchHandler.UpdateStatus)
	branches.Get("/get-by-id", branchHandler.GetByID)
	branches.Get("/get-all", branchHandler.GetAll)
	branches.Get("/get-by-location", branchHandler.GetByLocation)

	// Inventory (registros de stock y recepciones)
	inventory := app.Group("/inventory", auth)
	inventoryHandler := NewInventoryHandler(deps.LedgerUC, deps.ReceivingUC, deps.TransferUC)
	inventory.Post("/create", stockRoles, inventoryHandler.Create)
	inventory.Post("/process-input", stockRoles, inventoryHandler.ProcessInput)
	inventory.Post("/process-transfer", stockRoles, inventoryHandler.ProcessTransfer)
	inventory.Post("/receive-order", stockRoles, inventoryHandler.ReceiveOrder)
	inventory.Post("/delete", adminOnly, inventoryHandler.Delete)
	inventory.Get("/get-by-id", inventoryHandler.GetByID)
	inventory.Get("/get-all", inventoryHandler.GetAll)
	inventory.Get("/get-by-warehouse", inventoryHandler.GetByWarehouse)
	inventory.Get("/get-by-branch", inventoryHandler.GetByBranch)

	// Inventory logs (solo lectura)
	logs := app.Group("/inventory-logs", auth)
	logsHandler := NewLogsHandler(deps.LedgerUC)
	logs.Get("/get-all", logsHandler.GetAll)

	// Transfers
	transfers := app.Group("/transfer", auth)
	transferHandler := NewTransferHandler(deps.TransferUC)
	transfers.Post("/create", stockRoles, transferHandler.Create)
	transfers.Post("/update-status", stockRoles, transferHandler.UpdateStatus)
	transfers.Get("/get-by-id", transferHandler.GetByID)
	transfers.Get("/get-all", transferHandler.GetAll)
	transfers.Get("/get-by-source", transferHandler.GetBySource)
	transfers.Get("/get-by-destination", transferHandler.GetByDestination)
}
