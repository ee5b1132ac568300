package receiving

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/masuelto/almacen-api/internal/application/dto"
	"github.com/masuelto/almacen-api/internal/application/ledger"
	"github.com/masuelto/almacen-api/internal/domain"
	"github.com/masuelto/almacen-api/internal/domain/entity"
	"github.com/masuelto/almacen-api/internal/domain/measure"
	"github.com/masuelto/almacen-api/internal/domain/repository"
)

// UseCase agrupa los flujos de entrada y salida directa de stock: entradas
// manuales, altas de registro, recepción de órdenes de compra y descuentos
// por venta. Todas las mutaciones pasan por el ledger.
type UseCase struct {
	txRunner  ledger.TxRunner
	ledger    *ledger.UseCase
	stockRepo repository.StockRepository
	itemRepo  repository.ItemRepository
}

// NewUseCase construye el caso de uso de recepciones.
func NewUseCase(
	txRunner ledger.TxRunner,
	ledgerUC *ledger.UseCase,
	stockRepo repository.StockRepository,
	itemRepo repository.ItemRepository,
) *UseCase {
	return &UseCase{
		txRunner:  txRunner,
		ledger:    ledgerUC,
		stockRepo: stockRepo,
		itemRepo:  itemRepo,
	}
}

// ProcessInput registra una entrada manual sobre un registro de stock
// existente, identificado por su id.
func (uc *UseCase) ProcessInput(ctx context.Context, in dto.ProcessInputRequest) (*entity.StockRecord, error) {
	if in.ID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.Quantity.IsPositive() {
		return nil, fmt.Errorf("%w: la cantidad debe ser positiva", domain.ErrInvalidInput)
	}
	rec, err := uc.stockRepo.GetByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if rec == nil || rec.IsDeleted {
		return nil, fmt.Errorf("%w: registro %s", domain.ErrNotFound, in.ID)
	}
	return uc.ledger.ApplyDelta(ctx, ledger.ApplyDeltaInput{
		ItemSKU:  rec.ItemSKU,
		Location: rec.Location(),
		Delta:    in.Quantity,
		Source:   entity.TransactionSourceInput,
	})
}

// CreateRecord da de alta un registro de stock. La cantidad inicial entra al
// ledger como INPUT; si el registro ya existe, la cantidad se acumula.
func (uc *UseCase) CreateRecord(ctx context.Context, in dto.CreateStockRecordRequest) (*entity.StockRecord, error) {
	loc := entity.LocationRef{WarehouseID: in.WarehouseID, BranchID: in.BranchID}
	if in.ItemSKU == "" || !loc.Valid() {
		return nil, domain.ErrInvalidInput
	}
	if !in.Quantity.IsPositive() {
		return nil, fmt.Errorf("%w: la cantidad debe ser positiva", domain.ErrInvalidInput)
	}
	item, err := uc.itemRepo.GetBySKU(ctx, in.ItemSKU)
	if err != nil {
		return nil, err
	}
	if item == nil || item.IsDeleted {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownItem, in.ItemSKU)
	}
	return uc.ledger.ApplyDelta(ctx, ledger.ApplyDeltaInput{
		ItemSKU:  item.SKU,
		Location: loc,
		Delta:    in.Quantity,
		Source:   entity.TransactionSourceInput,
	})
}

// RecordOrderOutput descuenta stock por una venta u orden despachada.
func (uc *UseCase) RecordOrderOutput(ctx context.Context, itemSKU string, loc entity.LocationRef, qty decimal.Decimal) (*entity.StockRecord, error) {
	if !qty.IsPositive() {
		return nil, fmt.Errorf("%w: la cantidad debe ser positiva", domain.ErrInvalidInput)
	}
	return uc.ledger.ApplyDelta(ctx, ledger.ApplyDeltaInput{
		ItemSKU:  itemSKU,
		Location: loc,
		Delta:    qty.Neg(),
		Source:   entity.TransactionSourceOrder,
	})
}

// ReceiveLines procesa una recepción de orden de compra línea por línea. Cada
// línea corre en su propia transacción: resuelve el ítem por SKU o nombre
// (auto-creándolo si no existe) y aplica la entrada al ledger. Una línea que
// falla no afecta a las demás; el resultado detalla cada una.
func (uc *UseCase) ReceiveLines(ctx context.Context, in dto.ReceiveOrderRequest) (*dto.ReceiveOrderResponse, error) {
	loc := entity.LocationRef{WarehouseID: in.WarehouseID, BranchID: in.BranchID}
	if !loc.Valid() {
		return nil, domain.ErrInvalidDestination
	}
	if len(in.Lines) == 0 {
		return nil, fmt.Errorf("%w: recepción sin líneas", domain.ErrInvalidInput)
	}
	// Las líneas componen ApplyDeltaTx en su propia transacción, así que la
	// ubicación se valida una sola vez aquí.
	if err := uc.ledger.CheckLocation(ctx, loc); err != nil {
		return nil, err
	}

	resp := &dto.ReceiveOrderResponse{}
	for _, line := range in.Lines {
		res := uc.receiveLine(ctx, loc, line)
		if res.OK {
			resp.Received++
		} else {
			resp.Failed++
		}
		resp.Lines = append(resp.Lines, res)
	}
	return resp, nil
}

func (uc *UseCase) receiveLine(ctx context.Context, loc entity.LocationRef, line dto.ReceiveOrderLineRequest) dto.ReceiveOrderLineResult {
	res := dto.ReceiveOrderLineResult{
		SKU:      strings.TrimSpace(line.SKU),
		Name:     strings.TrimSpace(line.Name),
		Quantity: line.Quantity,
	}
	if res.SKU == "" && res.Name == "" {
		res.Error = "línea sin skuid ni name"
		return res
	}
	if !line.Quantity.IsPositive() {
		res.Error = "la cantidad debe ser positiva"
		return res
	}

	now := time.Now()
	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		txnRepo repository.StockTransactionRepository,
		_ repository.TransferRepository,
		itemRepo repository.ItemRepository,
	) error {
		item, created, err := uc.resolveOrCreateItem(ctx, itemRepo, line, now)
		if err != nil {
			return err
		}
		res.SKU = item.SKU
		res.Name = item.Name
		res.Created = created

		_, err = ledger.ApplyDeltaTx(ctx, stockRepo, txnRepo, ledger.ApplyDeltaInput{
			ItemSKU:  item.SKU,
			Location: loc,
			Delta:    line.Quantity,
			Source:   entity.TransactionSourceInput,
		}, now)
		return err
	})
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.OK = true
	return res
}

// resolveOrCreateItem busca el ítem por SKU y luego por nombre; si no existe
// lo crea con SKU nuevo, costo de la línea y la unidad parseada del
// descriptor ("50 kg"). La cantidad del descriptor queda como mínimo
// requerido inicial.
func (uc *UseCase) resolveOrCreateItem(ctx context.Context, itemRepo repository.ItemRepository, line dto.ReceiveOrderLineRequest, now time.Time) (*entity.InventoryItem, bool, error) {
	sku := strings.TrimSpace(line.SKU)
	name := strings.TrimSpace(line.Name)

	if sku != "" {
		item, err := itemRepo.GetBySKU(ctx, sku)
		if err != nil {
			return nil, false, err
		}
		if item != nil && !item.IsDeleted {
			return item, false, nil
		}
	}
	if name != "" {
		item, err := itemRepo.GetByName(ctx, name)
		if err != nil {
			return nil, false, err
		}
		if item != nil && !item.IsDeleted {
			return item, false, nil
		}
	}
	if name == "" {
		return nil, false, fmt.Errorf("%w: %s", domain.ErrUnknownItem, sku)
	}

	m, err := measure.Parse(line.UnitDescriptor)
	if err != nil {
		return nil, false, err
	}
	item := &entity.InventoryItem{
		SKU:             uuid.New().String(),
		Name:            name,
		UnitMeasurement: m.Unit,
		Cost:            line.UnitCost,
		MinRequired:     m.Amount,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := itemRepo.Create(ctx, item); err != nil {
		return nil, false, err
	}
	return item, true, nil
}
