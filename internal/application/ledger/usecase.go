package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/masuelto/almacen-api/internal/domain"
	"github.com/masuelto/almacen-api/internal/domain/entity"
	"github.com/masuelto/almacen-api/internal/domain/repository"
)

// UseCase es el ledger de stock: el único punto de mutación de cantidades.
// Cada mutación bloquea la fila (SELECT FOR UPDATE), valida que la cantidad
// resultante no sea negativa y persiste el registro junto con exactamente un
// asiento del log, todo dentro de una transacción.
type UseCase struct {
	txRunner      TxRunner
	stockRepo     repository.StockRepository
	txnRepo       repository.StockTransactionRepository
	warehouseRepo repository.WarehouseRepository
	branchRepo    repository.BranchRepository
}

// NewUseCase construye el caso de uso del ledger.
func NewUseCase(
	txRunner TxRunner,
	stockRepo repository.StockRepository,
	txnRepo repository.StockTransactionRepository,
	warehouseRepo repository.WarehouseRepository,
	branchRepo repository.BranchRepository,
) *UseCase {
	return &UseCase{
		txRunner:      txRunner,
		stockRepo:     stockRepo,
		txnRepo:       txnRepo,
		warehouseRepo: warehouseRepo,
		branchRepo:    branchRepo,
	}
}

// ApplyDeltaInput entrada del apply-delta. Delta va con signo: positivo
// entra (IN), negativo sale (OUT). TransferRequestID solo para source TRANSFER.
type ApplyDeltaInput struct {
	ItemSKU           string
	Location          entity.LocationRef
	Delta             decimal.Decimal
	Source            string // INPUT | ORDER | TRANSFER
	TransferRequestID *string
}

func (in ApplyDeltaInput) validate() error {
	if in.ItemSKU == "" || !in.Location.Valid() || in.Delta.IsZero() {
		return domain.ErrInvalidInput
	}
	switch in.Source {
	case entity.TransactionSourceInput, entity.TransactionSourceOrder, entity.TransactionSourceTransfer:
		return nil
	}
	return fmt.Errorf("%w: source %q", domain.ErrInvalidInput, in.Source)
}

// GetStock lee la cantidad actual de un ítem en una ubicación. Nunca crea un
// registro como efecto secundario.
func (uc *UseCase) GetStock(ctx context.Context, itemSKU string, loc entity.LocationRef) (*entity.StockRecord, error) {
	if itemSKU == "" || !loc.Valid() {
		return nil, domain.ErrInvalidInput
	}
	rec, err := uc.stockRepo.Get(ctx, itemSKU, loc)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrNotFound
	}
	return rec, nil
}

// ApplyDelta aplica una mutación de cantidad en su propia transacción.
// Ver ApplyDeltaTx para la semántica.
func (uc *UseCase) ApplyDelta(ctx context.Context, in ApplyDeltaInput) (*entity.StockRecord, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if err := uc.checkLocationActive(ctx, in.Location); err != nil {
		return nil, err
	}
	now := time.Now()
	var rec *entity.StockRecord
	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		txnRepo repository.StockTransactionRepository,
		_ repository.TransferRepository,
		_ repository.ItemRepository,
	) error {
		var err error
		rec, err = ApplyDeltaTx(ctx, stockRepo, txnRepo, in, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// ApplyDeltaTx aplica el delta usando repositorios ya atados a la transacción
// del caller (así el workflow de traslados compone varias líneas y el cambio
// de estado en una sola tx).
//
//   - Si no existe registro y el delta es positivo, lo crea con esa cantidad.
//   - Si la cantidad resultante sería negativa, falla con ErrInsufficientStock
//     sin tocar el registro ni escribir asiento.
//   - En éxito persiste el registro y agrega exactamente un asiento con el
//     delta, el source y la dirección (IN si delta > 0, OUT si no).
func ApplyDeltaTx(
	ctx context.Context,
	stockRepo repository.StockRepository,
	txnRepo repository.StockTransactionRepository,
	in ApplyDeltaInput,
	now time.Time,
) (*entity.StockRecord, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	// Bloquea la fila para serializar lecturas-validaciones-escrituras
	// concurrentes sobre el mismo par (ítem, ubicación).
	rec, err := stockRepo.GetForUpdate(ctx, in.ItemSKU, in.Location)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		if in.Delta.IsNegative() {
			return nil, fmt.Errorf("%w: %s", domain.ErrInsufficientStock, in.ItemSKU)
		}
		// Creación perezosa: primer arribo de este ítem a esta ubicación.
		rec = &entity.StockRecord{
			ItemSKU:     in.ItemSKU,
			WarehouseID: in.Location.WarehouseID,
			BranchID:    in.Location.BranchID,
			Quantity:    decimal.Zero,
			CreatedAt:   now,
		}
	}
	newQty := rec.Quantity.Add(in.Delta)
	if newQty.IsNegative() {
		return nil, fmt.Errorf("%w: %s", domain.ErrInsufficientStock, in.ItemSKU)
	}
	rec.Quantity = newQty
	rec.UpdatedAt = now
	if err := stockRepo.Upsert(ctx, rec); err != nil {
		return nil, err
	}
	txn := &entity.StockTransaction{
		StockRecordID:     rec.ID,
		ChangedQuantity:   in.Delta,
		Source:            in.Source,
		Type:              entity.TypeForDelta(in.Delta),
		TransferRequestID: in.TransferRequestID,
		CreatedAt:         now,
	}
	if err := txnRepo.Create(ctx, txn); err != nil {
		return nil, err
	}
	return rec, nil
}

// ListTransactions lista asientos del log, más recientes primero, con filtro
// por ubicación, búsqueda por nombre de ítem y paginación. Devuelve el total
// para los metadatos de página.
func (uc *UseCase) ListTransactions(ctx context.Context, f repository.TransactionFilter) ([]*repository.TransactionView, int, error) {
	if (f.WarehouseID == nil) == (f.BranchID == nil) {
		return nil, 0, fmt.Errorf("%w: se requiere warehouse_id o branch_id", domain.ErrInvalidInput)
	}
	total, err := uc.txnRepo.Count(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	list, err := uc.txnRepo.List(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListStockByLocation lista registros de stock de una ubicación con búsqueda
// por nombre de ítem y paginación.
func (uc *UseCase) ListStockByLocation(ctx context.Context, loc entity.LocationRef, search string, limit, offset int) ([]*repository.StockView, int, error) {
	if !loc.Valid() {
		return nil, 0, domain.ErrInvalidInput
	}
	total, err := uc.stockRepo.CountByLocation(ctx, loc, search)
	if err != nil {
		return nil, 0, err
	}
	list, err := uc.stockRepo.ListByLocation(ctx, loc, search, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// GetRecordByID obtiene un registro de stock por id (no borrado).
func (uc *UseCase) GetRecordByID(ctx context.Context, id string) (*entity.StockRecord, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	rec, err := uc.stockRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil || rec.IsDeleted {
		return nil, domain.ErrNotFound
	}
	return rec, nil
}

// ListAllRecords lista todos los registros de stock no borrados con su ítem y ubicación.
func (uc *UseCase) ListAllRecords(ctx context.Context) ([]*repository.StockView, error) {
	return uc.stockRepo.ListAll(ctx)
}

// SoftDeleteRecord marca un registro como borrado; sus asientos históricos permanecen.
func (uc *UseCase) SoftDeleteRecord(ctx context.Context, id string) error {
	rec, err := uc.stockRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if rec == nil || rec.IsDeleted {
		return domain.ErrNotFound
	}
	return uc.stockRepo.SoftDelete(ctx, id)
}

// CheckLocation verifica que la ubicación exista y esté ACTIVE. Los callers
// que componen ApplyDeltaTx dentro de su propia transacción deben validar la
// ubicación con esto antes de aplicar deltas.
func (uc *UseCase) CheckLocation(ctx context.Context, loc entity.LocationRef) error {
	return uc.checkLocationActive(ctx, loc)
}

// checkLocationActive verifica que la ubicación exista y esté ACTIVE; las
// ubicaciones desactivadas rechazan operaciones de stock nuevas aunque su
// histórico siga consultable.
func (uc *UseCase) checkLocationActive(ctx context.Context, loc entity.LocationRef) error {
	if loc.IsWarehouse() {
		w, err := uc.warehouseRepo.GetByID(ctx, *loc.WarehouseID)
		if err != nil {
			return err
		}
		if w == nil {
			return fmt.Errorf("%w: bodega %s", domain.ErrNotFound, *loc.WarehouseID)
		}
		if !w.IsActive() {
			return fmt.Errorf("%w: bodega %s", domain.ErrLocationInactive, w.ID)
		}
		return nil
	}
	b, err := uc.branchRepo.GetByID(ctx, *loc.BranchID)
	if err != nil {
		return err
	}
	if b == nil {
		return fmt.Errorf("%w: sucursal %s", domain.ErrNotFound, *loc.BranchID)
	}
	if !b.IsActive() {
		return fmt.Errorf("%w: sucursal %s", domain.ErrLocationInactive, b.ID)
	}
	return nil
}
