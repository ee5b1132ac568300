package transfer

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
	"github.com/masuelto/almacen-api/internal/domain/repository"
)

// UseCase es la máquina de estados de traslados. Cada transición ejecuta sus
// efectos sobre el ledger y el cambio de estado dentro de una sola
// transacción: o se aplican todas las líneas, o ninguna.
type UseCase struct {
	txRunner      ledger.TxRunner
	transferRepo  repository.TransferRepository
	itemRepo      repository.ItemRepository
	warehouseRepo repository.WarehouseRepository
	branchRepo    repository.BranchRepository
}

// NewUseCase construye el caso de uso de traslados.
func NewUseCase(
	txRunner ledger.TxRunner,
	transferRepo repository.TransferRepository,
	itemRepo repository.ItemRepository,
	warehouseRepo repository.WarehouseRepository,
	branchRepo repository.BranchRepository,
) *UseCase {
	return &UseCase{
		txRunner:      txRunner,
		transferRepo:  transferRepo,
		itemRepo:      itemRepo,
		warehouseRepo: warehouseRepo,
		branchRepo:    branchRepo,
	}
}

// Create valida y persiste una solicitud de traslado con sus líneas en una
// sola escritura atómica. El estado inicial siempre es PENDING.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateTransferRequest) (*entity.TransferRequest, error) {
	if in.FromWarehouse == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	dest := entity.LocationRef{WarehouseID: in.ToWarehouse, BranchID: in.ToBranch}
	if !dest.Valid() {
		return nil, domain.ErrInvalidDestination
	}

	from, err := uc.warehouseRepo.GetByID(ctx, in.FromWarehouse)
	if err != nil {
		return nil, err
	}
	if from == nil {
		return nil, fmt.Errorf("%w: bodega origen %s", domain.ErrNotFound, in.FromWarehouse)
	}
	if !from.IsActive() {
		return nil, fmt.Errorf("%w: bodega origen %s", domain.ErrLocationInactive, from.ID)
	}
	destName, err := uc.resolveActiveDestination(ctx, dest)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	t := &entity.TransferRequest{
		ID:                uuid.New().String(),
		FromWarehouseID:   from.ID,
		FromWarehouseName: from.Name,
		ToWarehouseID:     in.ToWarehouse,
		ToBranchID:        in.ToBranch,
		Status:            entity.TransferStatusPending,
		TotalCost:         decimal.Zero,
		ExpectedArrival:   in.ExpectedArrival,
		Notes:             in.Notes,
		CreatedAt:         now,
	}
	if dest.IsWarehouse() {
		t.ToWarehouseName = destName
	} else {
		t.ToBranchName = destName
	}

	// Resuelve cada línea contra el catálogo y captura el costo al momento
	// de la solicitud: costo de línea = costo estándar × cantidad.
	for _, line := range in.Items {
		sku := strings.TrimSpace(line.ItemSKU)
		if sku == "" || !line.Quantity.IsPositive() {
			return nil, fmt.Errorf("%w: cantidad inválida para %q", domain.ErrInvalidInput, sku)
		}
		item, err := uc.itemRepo.GetBySKU(ctx, sku)
		if err != nil {
			return nil, err
		}
		if item == nil || item.IsDeleted {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnknownItem, sku)
		}
		lineCost := item.Cost.Mul(line.Quantity)
		t.Items = append(t.Items, entity.TransferItem{
			ID:                uuid.New().String(),
			TransferRequestID: t.ID,
			ItemSKU:           item.SKU,
			ItemName:          item.Name,
			Quantity:          line.Quantity,
			Cost:              lineCost,
		})
		t.TotalCost = t.TotalCost.Add(lineCost)
	}

	err = uc.txRunner.Run(ctx, func(
		_ repository.StockRepository,
		_ repository.StockTransactionRepository,
		transferRepo repository.TransferRepository,
		_ repository.ItemRepository,
	) error {
		return transferRepo.Create(ctx, t)
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Transition mueve una solicitud a targetStatus aplicando los efectos de
// stock correspondientes. Repetir la transición al estado actual es un no-op
// que no re-aplica deltas (un caller puede reintentar tras un timeout).
func (uc *UseCase) Transition(ctx context.Context, id, targetStatus string) (*entity.TransferRequest, error) {
	target := strings.ToUpper(strings.TrimSpace(targetStatus))
	if id == "" || !entity.ValidTransferStatus(target) {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, targetStatus)
	}

	// Lectura previa sin lock: resuelve NotFound y la mayoría de los
	// reintentos idempotentes sin abrir transacción.
	current, err := uc.transferRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, fmt.Errorf("%w: traslado %s", domain.ErrNotFound, id)
	}
	if current.Status == target {
		return current, nil
	}
	if !entity.CanTransition(current.Status, target) {
		return nil, fmt.Errorf("%w: %s → %s", domain.ErrInvalidTransition, current.Status, target)
	}
	if err := uc.checkTransitionLocations(ctx, current, target); err != nil {
		return nil, err
	}

	now := time.Now()
	var result *entity.TransferRequest
	err = uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		txnRepo repository.StockTransactionRepository,
		transferRepo repository.TransferRepository,
		_ repository.ItemRepository,
	) error {
		// Re-lee con lock: otra transición concurrente pudo ganar la carrera.
		t, err := transferRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if t == nil {
			return fmt.Errorf("%w: traslado %s", domain.ErrNotFound, id)
		}
		if t.Status == target {
			result = t
			return nil
		}
		if !entity.CanTransition(t.Status, target) {
			return fmt.Errorf("%w: %s → %s", domain.ErrInvalidTransition, t.Status, target)
		}

		switch target {
		case entity.TransferStatusApproved:
			if err := uc.approveTx(ctx, stockRepo, txnRepo, t, now); err != nil {
				return err
			}
		case entity.TransferStatusDelivered:
			if err := uc.deliverTx(ctx, stockRepo, txnRepo, transferRepo, t, now); err != nil {
				return err
			}
		}
		// REJECTED y CANCELLED solo registran el estado terminal.

		if err := transferRepo.UpdateStatus(ctx, t.ID, target); err != nil {
			return err
		}
		t.Status = target
		result = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// approveTx descuenta cada línea de la bodega origen. Valida todas las líneas
// (con lock de fila) antes de descontar cualquiera: si alguna no alcanza, la
// transición completa aborta nombrando el primer ítem que falla.
func (uc *UseCase) approveTx(
	ctx context.Context,
	stockRepo repository.StockRepository,
	txnRepo repository.StockTransactionRepository,
	t *entity.TransferRequest,
	now time.Time,
) error {
	source := entity.WarehouseRef(t.FromWarehouseID)
	for _, line := range t.Items {
		rec, err := stockRepo.GetForUpdate(ctx, line.ItemSKU, source)
		if err != nil {
			return err
		}
		available := decimal.Zero
		if rec != nil {
			available = rec.Quantity
		}
		if available.LessThan(line.Quantity) {
			return fmt.Errorf("%w: %s", domain.ErrInsufficientStock, line.ItemName)
		}
	}
	for _, line := range t.Items {
		_, err := ledger.ApplyDeltaTx(ctx, stockRepo, txnRepo, ledger.ApplyDeltaInput{
			ItemSKU:           line.ItemSKU,
			Location:          source,
			Delta:             line.Quantity.Neg(),
			Source:            entity.TransactionSourceTransfer,
			TransferRequestID: &t.ID,
		}, now)
		if err != nil {
			return err
		}
	}
	return nil
}

// deliverTx estampa la llegada real y suma cada línea en el destino, creando
// el registro de stock si aún no existe.
func (uc *UseCase) deliverTx(
	ctx context.Context,
	stockRepo repository.StockRepository,
	txnRepo repository.StockTransactionRepository,
	transferRepo repository.TransferRepository,
	t *entity.TransferRequest,
	now time.Time,
) error {
	if err := transferRepo.SetActualArrival(ctx, t.ID, now); err != nil {
		return err
	}
	t.ActualArrival = &now
	dest := t.Destination()
	for _, line := range t.Items {
		_, err := ledger.ApplyDeltaTx(ctx, stockRepo, txnRepo, ledger.ApplyDeltaInput{
			ItemSKU:           line.ItemSKU,
			Location:          dest,
			Delta:             line.Quantity,
			Source:            entity.TransactionSourceTransfer,
			TransferRequestID: &t.ID,
		}, now)
		if err != nil {
			return err
		}
	}
	return nil
}

// GetByID obtiene una solicitud con sus líneas.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*entity.TransferRequest, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	t, err := uc.transferRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("%w: traslado %s", domain.ErrNotFound, id)
	}
	return t, nil
}

// ListByStatus lista solicitudes por estado (sin paginar; proyección del dashboard).
func (uc *UseCase) ListByStatus(ctx context.Context, status string) ([]*entity.TransferRequest, error) {
	s := strings.ToUpper(strings.TrimSpace(status))
	if !entity.ValidTransferStatus(s) {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, status)
	}
	return uc.transferRepo.ListByStatus(ctx, s)
}

// ListBySource lista paginado por bodega origen y estado, creación descendente.
func (uc *UseCase) ListBySource(ctx context.Context, warehouseID, status string, limit, offset int) ([]*entity.TransferRequest, int, error) {
	s := strings.ToUpper(strings.TrimSpace(status))
	if warehouseID == "" || !entity.ValidTransferStatus(s) {
		return nil, 0, domain.ErrInvalidInput
	}
	total, err := uc.transferRepo.CountBySource(ctx, warehouseID, s)
	if err != nil {
		return nil, 0, err
	}
	list, err := uc.transferRepo.ListBySource(ctx, warehouseID, s, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListByDestination lista paginado por destino (bodega o sucursal) y estado;
// DELIVERED ordena por llegada real descendente, el resto por creación.
func (uc *UseCase) ListByDestination(ctx context.Context, locationID, status string, limit, offset int) ([]*entity.TransferRequest, int, error) {
	s := strings.ToUpper(strings.TrimSpace(status))
	if locationID == "" || !entity.ValidTransferStatus(s) {
		return nil, 0, domain.ErrInvalidInput
	}
	total, err := uc.transferRepo.CountByDestination(ctx, locationID, s)
	if err != nil {
		return nil, 0, err
	}
	list, err := uc.transferRepo.ListByDestination(ctx, locationID, s, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// resolveActiveDestination valida existencia y estado ACTIVE del destino y
// devuelve su nombre para denormalizar en la solicitud.
func (uc *UseCase) resolveActiveDestination(ctx context.Context, dest entity.LocationRef) (string, error) {
	if dest.IsWarehouse() {
		w, err := uc.warehouseRepo.GetByID(ctx, *dest.WarehouseID)
		if err != nil {
			return "", err
		}
		if w == nil {
			return "", fmt.Errorf("%w: bodega destino %s", domain.ErrNotFound, *dest.WarehouseID)
		}
		if !w.IsActive() {
			return "", fmt.Errorf("%w: bodega destino %s", domain.ErrLocationInactive, w.ID)
		}
		return w.Name, nil
	}
	b, err := uc.branchRepo.GetByID(ctx, *dest.BranchID)
	if err != nil {
		return "", err
	}
	if b == nil {
		return "", fmt.Errorf("%w: sucursal destino %s", domain.ErrNotFound, *dest.BranchID)
	}
	if !b.IsActive() {
		return "", fmt.Errorf("%w: sucursal destino %s", domain.ErrLocationInactive, b.ID)
	}
	return b.Name, nil
}

// checkTransitionLocations valida que la ubicación afectada por la transición
// siga activa: el origen al aprobar (descuenta stock), el destino al entregar
// (suma stock). Los estados terminales sin efectos no validan nada.
func (uc *UseCase) checkTransitionLocations(ctx context.Context, t *entity.TransferRequest, target string) error {
	switch target {
	case entity.TransferStatusApproved:
		w, err := uc.warehouseRepo.GetByID(ctx, t.FromWarehouseID)
		if err != nil {
			return err
		}
		if w == nil {
			return fmt.Errorf("%w: bodega origen %s", domain.ErrNotFound, t.FromWarehouseID)
		}
		if !w.IsActive() {
			return fmt.Errorf("%w: bodega origen %s", domain.ErrLocationInactive, w.ID)
		}
	case entity.TransferStatusDelivered:
		_, err := uc.resolveActiveDestination(ctx, t.Destination())
		return err
	}
	return nil
}
