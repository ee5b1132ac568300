// Package testutil provee implementaciones en memoria de los puertos de
// persistencia para tests de casos de uso, sin PostgreSQL de por medio.
package testutil

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/masuelto/almacen-api/internal/domain/entity"
	"github.com/masuelto/almacen-api/internal/domain/repository"
)

var (
	_ repository.ItemRepository             = (*ItemRepo)(nil)
	_ repository.WarehouseRepository        = (*WarehouseRepo)(nil)
	_ repository.BranchRepository           = (*BranchRepo)(nil)
	_ repository.StockRepository            = (*StockRepo)(nil)
	_ repository.StockTransactionRepository = (*TxnRepo)(nil)
	_ repository.TransferRepository         = (*TransferRepo)(nil)
)

// Store agrupa todos los repos en memoria que comparten el mismo estado.
type Store struct {
	Items      *ItemRepo
	Warehouses *WarehouseRepo
	Branches   *BranchRepo
	Stock      *StockRepo
	Txns       *TxnRepo
	Transfers  *TransferRepo
}

// NewStore construye un juego de repos vacío.
func NewStore() *Store {
	items := &ItemRepo{bySKU: map[string]*entity.InventoryItem{}}
	return &Store{
		Items:      items,
		Warehouses: &WarehouseRepo{byID: map[string]*entity.Warehouse{}},
		Branches:   &BranchRepo{byID: map[string]*entity.Branch{}},
		Stock:      &StockRepo{byID: map[string]*entity.StockRecord{}, items: items},
		Txns:       &TxnRepo{},
		Transfers:  &TransferRepo{byID: map[string]*entity.TransferRequest{}},
	}
}

// TxRunner devuelve un runner que ejecuta el callback directamente sobre los
// repos del store. No simula rollback: los tests de fallo verifican estado
// observable, no atomicidad de PostgreSQL.
func (s *Store) TxRunner() *FakeTxRunner {
	return &FakeTxRunner{store: s}
}

// FakeTxRunner implementa ledger.TxRunner sobre el store en memoria.
type FakeTxRunner struct {
	store *Store
}

func (r *FakeTxRunner) Run(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	txnRepo repository.StockTransactionRepository,
	transferRepo repository.TransferRepository,
	itemRepo repository.ItemRepository,
) error) error {
	return fn(r.store.Stock, r.store.Txns, r.store.Transfers, r.store.Items)
}

// ─── ItemRepo ────────────────────────────────────────────────────────────────

type ItemRepo struct {
	bySKU map[string]*entity.InventoryItem
}

func (r *ItemRepo) Create(_ context.Context, item *entity.InventoryItem) error {
	r.bySKU[item.SKU] = item
	return nil
}

func (r *ItemRepo) GetBySKU(_ context.Context, sku string) (*entity.InventoryItem, error) {
	return r.bySKU[sku], nil
}

func (r *ItemRepo) GetByName(_ context.Context, name string) (*entity.InventoryItem, error) {
	for _, item := range r.bySKU {
		if strings.EqualFold(item.Name, name) && !item.IsDeleted {
			return item, nil
		}
	}
	return nil, nil
}

func (r *ItemRepo) ListByCategory(_ context.Context, category string) ([]*entity.InventoryItem, error) {
	var list []*entity.InventoryItem
	for _, item := range r.bySKU {
		if item.Category == category && !item.IsDeleted {
			list = append(list, item)
		}
	}
	sortItems(list, "az")
	return list, nil
}

func (r *ItemRepo) Update(_ context.Context, item *entity.InventoryItem) error {
	r.bySKU[item.SKU] = item
	return nil
}

func (r *ItemRepo) SoftDelete(_ context.Context, sku string) error {
	if item, ok := r.bySKU[sku]; ok {
		item.IsDeleted = true
	}
	return nil
}

func (r *ItemRepo) List(_ context.Context, f repository.ItemListFilter) ([]*entity.InventoryItem, error) {
	var list []*entity.InventoryItem
	for _, item := range r.bySKU {
		if item.IsDeleted {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(item.Name), strings.ToLower(f.Search)) {
			continue
		}
		list = append(list, item)
	}
	sortItems(list, f.Sort)
	if f.Offset >= len(list) {
		return nil, nil
	}
	list = list[f.Offset:]
	if f.Limit > 0 && f.Limit < len(list) {
		list = list[:f.Limit]
	}
	return list, nil
}

func (r *ItemRepo) Count(_ context.Context, search string) (int, error) {
	n := 0
	for _, item := range r.bySKU {
		if item.IsDeleted {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(item.Name), strings.ToLower(search)) {
			continue
		}
		n++
	}
	return n, nil
}

func sortItems(list []*entity.InventoryItem, sortKey string) {
	sort.Slice(list, func(i, j int) bool {
		a, b := list[i], list[j]
		switch sortKey {
		case "za":
			return a.Name > b.Name
		case "price-asc":
			return a.Cost.LessThan(b.Cost)
		case "price-desc":
			return b.Cost.LessThan(a.Cost)
		case "category":
			if a.Category != b.Category {
				return a.Category < b.Category
			}
			return a.Name < b.Name
		default:
			return a.Name < b.Name
		}
	})
}

// ─── WarehouseRepo / BranchRepo ──────────────────────────────────────────────

type WarehouseRepo struct {
	byID map[string]*entity.Warehouse
}

func (r *WarehouseRepo) Create(_ context.Context, w *entity.Warehouse) error {
	r.byID[w.ID] = w
	return nil
}

func (r *WarehouseRepo) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	return r.byID[id], nil
}

func (r *WarehouseRepo) Update(_ context.Context, w *entity.Warehouse) error {
	r.byID[w.ID] = w
	return nil
}

func (r *WarehouseRepo) UpdateStatus(_ context.Context, id, status string) error {
	if w, ok := r.byID[id]; ok {
		w.Status = status
	}
	return nil
}

func (r *WarehouseRepo) ListActive(_ context.Context) ([]*entity.Warehouse, error) {
	var list []*entity.Warehouse
	for _, w := range r.byID {
		if w.IsActive() {
			list = append(list, w)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *WarehouseRepo) ListByLocation(_ context.Context, prefix string) ([]*entity.Warehouse, error) {
	var list []*entity.Warehouse
	for _, w := range r.byID {
		if strings.HasPrefix(strings.ToLower(w.Location), strings.ToLower(prefix)) {
			list = append(list, w)
		}
	}
	return list, nil
}

type BranchRepo struct {
	byID map[string]*entity.Branch
}

func (r *BranchRepo) Create(_ context.Context, b *entity.Branch) error {
	r.byID[b.ID] = b
	return nil
}

func (r *BranchRepo) GetByID(_ context.Context, id string) (*entity.Branch, error) {
	return r.byID[id], nil
}

func (r *BranchRepo) Update(_ context.Context, b *entity.Branch) error {
	r.byID[b.ID] = b
	return nil
}

func (r *BranchRepo) UpdateStatus(_ context.Context, id, status string) error {
	if b, ok := r.byID[id]; ok {
		b.Status = status
	}
	return nil
}

func (r *BranchRepo) ListActive(_ context.Context) ([]*entity.Branch, error) {
	var list []*entity.Branch
	for _, b := range r.byID {
		if b.IsActive() {
			list = append(list, b)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *BranchRepo) ListByLocation(_ context.Context, prefix string) ([]*entity.Branch, error) {
	var list []*entity.Branch
	for _, b := range r.byID {
		if strings.HasPrefix(strings.ToLower(b.Location), strings.ToLower(prefix)) {
			list = append(list, b)
		}
	}
	return list, nil
}

// ─── StockRepo ───────────────────────────────────────────────────────────────

type StockRepo struct {
	byID  map[string]*entity.StockRecord
	items *ItemRepo
}

func sameLocation(rec *entity.StockRecord, loc entity.LocationRef) bool {
	if loc.IsWarehouse() {
		return rec.WarehouseID != nil && *rec.WarehouseID == *loc.WarehouseID
	}
	return rec.BranchID != nil && *rec.BranchID == *loc.BranchID
}

func (r *StockRepo) Get(_ context.Context, itemSKU string, loc entity.LocationRef) (*entity.StockRecord, error) {
	for _, rec := range r.byID {
		if rec.ItemSKU == itemSKU && !rec.IsDeleted && sameLocation(rec, loc) {
			return rec, nil
		}
	}
	return nil, nil
}

func (r *StockRepo) GetForUpdate(ctx context.Context, itemSKU string, loc entity.LocationRef) (*entity.StockRecord, error) {
	return r.Get(ctx, itemSKU, loc)
}

func (r *StockRepo) GetByID(_ context.Context, id string) (*entity.StockRecord, error) {
	return r.byID[id], nil
}

func (r *StockRepo) Upsert(_ context.Context, rec *entity.StockRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	r.byID[rec.ID] = rec
	return nil
}

func (r *StockRepo) SoftDelete(_ context.Context, id string) error {
	if rec, ok := r.byID[id]; ok {
		rec.IsDeleted = true
	}
	return nil
}

func (r *StockRepo) view(rec *entity.StockRecord) *repository.StockView {
	v := &repository.StockView{
		ID:          rec.ID,
		Quantity:    rec.Quantity,
		ItemSKU:     rec.ItemSKU,
		WarehouseID: rec.WarehouseID,
		BranchID:    rec.BranchID,
	}
	if item := r.items.bySKU[rec.ItemSKU]; item != nil {
		v.ItemName = item.Name
		v.ItemCategory = item.Category
		v.ItemUnit = item.UnitMeasurement
		v.ItemCost = item.Cost
	}
	return v
}

func (r *StockRepo) ListAll(_ context.Context) ([]*repository.StockView, error) {
	var list []*repository.StockView
	for _, rec := range r.byID {
		if !rec.IsDeleted {
			list = append(list, r.view(rec))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ItemName < list[j].ItemName })
	return list, nil
}

func (r *StockRepo) ListByLocation(_ context.Context, loc entity.LocationRef, search string, limit, offset int) ([]*repository.StockView, error) {
	var list []*repository.StockView
	for _, rec := range r.byID {
		if rec.IsDeleted || !sameLocation(rec, loc) {
			continue
		}
		v := r.view(rec)
		if search != "" && !strings.Contains(strings.ToLower(v.ItemName), strings.ToLower(search)) {
			continue
		}
		list = append(list, v)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ItemName < list[j].ItemName })
	if offset >= len(list) {
		return nil, nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list, nil
}

func (r *StockRepo) CountByLocation(ctx context.Context, loc entity.LocationRef, search string) (int, error) {
	list, err := r.ListByLocation(ctx, loc, search, 0, 0)
	return len(list), err
}

// ─── TxnRepo ─────────────────────────────────────────────────────────────────

type TxnRepo struct {
	// Entries conserva el orden de inserción; el log es append-only.
	Entries []*entity.StockTransaction
}

func (r *TxnRepo) Create(_ context.Context, txn *entity.StockTransaction) error {
	if txn.ID == "" {
		txn.ID = uuid.New().String()
	}
	r.Entries = append(r.Entries, txn)
	return nil
}

func (r *TxnRepo) List(_ context.Context, f repository.TransactionFilter) ([]*repository.TransactionView, error) {
	var list []*repository.TransactionView
	for i := len(r.Entries) - 1; i >= 0; i-- {
		txn := r.Entries[i]
		list = append(list, &repository.TransactionView{
			ID:                txn.ID,
			CreatedAt:         txn.CreatedAt,
			Source:            txn.Source,
			Type:              txn.Type,
			ChangedQuantity:   txn.ChangedQuantity,
			StockRecordID:     txn.StockRecordID,
			TransferRequestID: txn.TransferRequestID,
		})
	}
	if f.Offset >= len(list) {
		return nil, nil
	}
	list = list[f.Offset:]
	if f.Limit > 0 && f.Limit < len(list) {
		list = list[:f.Limit]
	}
	return list, nil
}

func (r *TxnRepo) Count(_ context.Context, _ repository.TransactionFilter) (int, error) {
	return len(r.Entries), nil
}

func (r *TxnRepo) ListByRecord(_ context.Context, stockRecordID string) ([]*entity.StockTransaction, error) {
	var list []*entity.StockTransaction
	for _, txn := range r.Entries {
		if txn.StockRecordID == stockRecordID {
			list = append(list, txn)
		}
	}
	return list, nil
}

// ─── TransferRepo ────────────────────────────────────────────────────────────

type TransferRepo struct {
	byID map[string]*entity.TransferRequest
}

func (r *TransferRepo) Create(_ context.Context, t *entity.TransferRequest) error {
	r.byID[t.ID] = t
	return nil
}

func (r *TransferRepo) GetByID(_ context.Context, id string) (*entity.TransferRequest, error) {
	return r.byID[id], nil
}

func (r *TransferRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.TransferRequest, error) {
	return r.GetByID(ctx, id)
}

func (r *TransferRepo) UpdateStatus(_ context.Context, id, status string) error {
	if t, ok := r.byID[id]; ok {
		t.Status = status
	}
	return nil
}

func (r *TransferRepo) SetActualArrival(_ context.Context, id string, at time.Time) error {
	if t, ok := r.byID[id]; ok {
		t.ActualArrival = &at
	}
	return nil
}

func (r *TransferRepo) ListByStatus(_ context.Context, status string) ([]*entity.TransferRequest, error) {
	var list []*entity.TransferRequest
	for _, t := range r.byID {
		if t.Status == status {
			list = append(list, t)
		}
	}
	sortTransfers(list)
	return list, nil
}

func (r *TransferRepo) ListBySource(_ context.Context, warehouseID, status string, limit, offset int) ([]*entity.TransferRequest, error) {
	var list []*entity.TransferRequest
	for _, t := range r.byID {
		if t.FromWarehouseID == warehouseID && t.Status == status {
			list = append(list, t)
		}
	}
	sortTransfers(list)
	return pageTransfers(list, limit, offset), nil
}

func (r *TransferRepo) CountBySource(ctx context.Context, warehouseID, status string) (int, error) {
	list, err := r.ListBySource(ctx, warehouseID, status, 0, 0)
	return len(list), err
}

func (r *TransferRepo) ListByDestination(_ context.Context, locationID, status string, limit, offset int) ([]*entity.TransferRequest, error) {
	var list []*entity.TransferRequest
	for _, t := range r.byID {
		if t.Status != status {
			continue
		}
		if (t.ToWarehouseID != nil && *t.ToWarehouseID == locationID) ||
			(t.ToBranchID != nil && *t.ToBranchID == locationID) {
			list = append(list, t)
		}
	}
	if status == entity.TransferStatusDelivered {
		sort.Slice(list, func(i, j int) bool {
			a, b := list[i].ActualArrival, list[j].ActualArrival
			if a == nil || b == nil {
				return b == nil
			}
			return a.After(*b)
		})
	} else {
		sortTransfers(list)
	}
	return pageTransfers(list, limit, offset), nil
}

func (r *TransferRepo) CountByDestination(ctx context.Context, locationID, status string) (int, error) {
	list, err := r.ListByDestination(ctx, locationID, status, 0, 0)
	return len(list), err
}

func sortTransfers(list []*entity.TransferRequest) {
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
}

func pageTransfers(list []*entity.TransferRequest, limit, offset int) []*entity.TransferRequest {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
