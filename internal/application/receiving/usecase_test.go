package receiving_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masuelto/almacen-api/internal/application/dto"
	"github.com/masuelto/almacen-api/internal/application/ledger"
	"github.com/masuelto/almacen-api/internal/application/receiving"
	"github.com/masuelto/almacen-api/internal/domain"
	"github.com/masuelto/almacen-api/internal/domain/entity"
	"github.com/masuelto/almacen-api/internal/testutil"
)

func qty(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func strptr(s string) *string { return &s }

// newFixture arma una bodega activa y un ítem "Harina" ya catalogado.
func newFixture(t *testing.T) (*receiving.UseCase, *testutil.Store) {
	t.Helper()
	store := testutil.NewStore()
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, store.Warehouses.Create(ctx, &entity.Warehouse{
		ID: "w1", Name: "Bodega Central", Status: entity.LocationStatusActive, CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, store.Items.Create(ctx, &entity.InventoryItem{
		SKU: "sku-1", Name: "Harina", Category: "insumos", UnitMeasurement: "kg",
		Cost: qty("2.5"), CreatedAt: now, UpdatedAt: now,
	}))

	ledgerUC := ledger.NewUseCase(store.TxRunner(), store.Stock, store.Txns, store.Warehouses, store.Branches)
	uc := receiving.NewUseCase(store.TxRunner(), ledgerUC, store.Stock, store.Items)
	return uc, store
}

func stockAt(t *testing.T, store *testutil.Store, sku string, loc entity.LocationRef) decimal.Decimal {
	t.Helper()
	rec, err := store.Stock.Get(context.Background(), sku, loc)
	require.NoError(t, err)
	if rec == nil {
		return decimal.Zero
	}
	return rec.Quantity
}

// ──────────────────────────────────────────────────────────────────────────────
// ReceiveLines
// ──────────────────────────────────────────────────────────────────────────────

func TestReceiveLines_AutoCreaItemNuevo(t *testing.T) {
	uc, store := newFixture(t)
	ctx := context.Background()

	resp, err := uc.ReceiveLines(ctx, dto.ReceiveOrderRequest{
		WarehouseID: strptr("w1"),
		Lines: []dto.ReceiveOrderLineRequest{
			{Name: "Azúcar", Quantity: qty("20"), UnitCost: qty("1.2"), UnitDescriptor: "50 kg"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Received)
	assert.Equal(t, 0, resp.Failed)

	require.Len(t, resp.Lines, 1)
	line := resp.Lines[0]
	assert.True(t, line.OK)
	assert.True(t, line.Created, "ítem desconocido se auto-crea")
	require.NotEmpty(t, line.SKU)

	item, err := store.Items.GetBySKU(ctx, line.SKU)
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, "Azúcar", item.Name)
	assert.Equal(t, "kg", item.UnitMeasurement, "unidad parseada del descriptor")
	assert.True(t, item.MinRequired.Equal(qty("50")), "la cantidad del descriptor queda como mínimo")
	assert.True(t, item.Cost.Equal(qty("1.2")), "costo unitario de la línea")

	assert.True(t, stockAt(t, store, line.SKU, entity.WarehouseRef("w1")).Equal(qty("20")))
	require.Len(t, store.Txns.Entries, 1)
	assert.Equal(t, entity.TransactionTypeIn, store.Txns.Entries[0].Type)
	assert.Equal(t, entity.TransactionSourceInput, store.Txns.Entries[0].Source)
}

func TestReceiveLines_ResuelvePorSKU(t *testing.T) {
	uc, store := newFixture(t)

	resp, err := uc.ReceiveLines(context.Background(), dto.ReceiveOrderRequest{
		WarehouseID: strptr("w1"),
		Lines:       []dto.ReceiveOrderLineRequest{{SKU: "sku-1", Quantity: qty("5")}},
	})
	require.NoError(t, err)
	require.Len(t, resp.Lines, 1)
	assert.True(t, resp.Lines[0].OK)
	assert.False(t, resp.Lines[0].Created, "el ítem ya existía")
	assert.Equal(t, "Harina", resp.Lines[0].Name)
	assert.True(t, stockAt(t, store, "sku-1", entity.WarehouseRef("w1")).Equal(qty("5")))
}

func TestReceiveLines_ResuelvePorNombre(t *testing.T) {
	uc, store := newFixture(t)

	resp, err := uc.ReceiveLines(context.Background(), dto.ReceiveOrderRequest{
		WarehouseID: strptr("w1"),
		Lines:       []dto.ReceiveOrderLineRequest{{Name: "harina", Quantity: qty("3")}},
	})
	require.NoError(t, err)
	require.Len(t, resp.Lines, 1)
	assert.True(t, resp.Lines[0].OK)
	assert.False(t, resp.Lines[0].Created, "la búsqueda por nombre no distingue mayúsculas")
	assert.Equal(t, "sku-1", resp.Lines[0].SKU)
	assert.True(t, stockAt(t, store, "sku-1", entity.WarehouseRef("w1")).Equal(qty("3")))
}

func TestReceiveLines_LineaMalaNoAfectaAlResto(t *testing.T) {
	uc, store := newFixture(t)

	resp, err := uc.ReceiveLines(context.Background(), dto.ReceiveOrderRequest{
		WarehouseID: strptr("w1"),
		Lines: []dto.ReceiveOrderLineRequest{
			{Name: "Sal", Quantity: qty("10"), UnitDescriptor: "kilos cincuenta"},
			{SKU: "sku-1", Quantity: qty("7")},
			{Quantity: qty("4")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Received)
	assert.Equal(t, 2, resp.Failed)
	require.Len(t, resp.Lines, 3)

	assert.False(t, resp.Lines[0].OK, "descriptor ilegible")
	assert.NotEmpty(t, resp.Lines[0].Error)
	assert.True(t, resp.Lines[1].OK)
	assert.False(t, resp.Lines[2].OK, "línea sin skuid ni name")

	// La línea válida se aplicó; la fallida no dejó rastro.
	assert.True(t, stockAt(t, store, "sku-1", entity.WarehouseRef("w1")).Equal(qty("7")))
	assert.Len(t, store.Txns.Entries, 1)
	sal, err := store.Items.GetByName(context.Background(), "Sal")
	require.NoError(t, err)
	assert.Nil(t, sal, "el ítem de la línea fallida no se creó")
}

func TestReceiveLines_UbicacionInactivaRechazaTodo(t *testing.T) {
	uc, store := newFixture(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, store.Warehouses.Create(ctx, &entity.Warehouse{
		ID: "w-off", Name: "Bodega Cerrada", Status: entity.LocationStatusInactive, CreatedAt: now, UpdatedAt: now,
	}))

	_, err := uc.ReceiveLines(ctx, dto.ReceiveOrderRequest{
		WarehouseID: strptr("w-off"),
		Lines:       []dto.ReceiveOrderLineRequest{{SKU: "sku-1", Quantity: qty("20")}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrLocationInactive, "una bodega INACTIVE debe rechazar la recepción")
	assert.Empty(t, store.Txns.Entries, "ninguna línea llega al ledger")
	assert.True(t, stockAt(t, store, "sku-1", entity.WarehouseRef("w-off")).IsZero())
}

func TestReceiveLines_UbicacionInexistente(t *testing.T) {
	uc, store := newFixture(t)

	_, err := uc.ReceiveLines(context.Background(), dto.ReceiveOrderRequest{
		BranchID: strptr("b-fantasma"),
		Lines:    []dto.ReceiveOrderLineRequest{{SKU: "sku-1", Quantity: qty("5")}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, store.Txns.Entries)
}

func TestReceiveLines_DestinoYLineasObligatorios(t *testing.T) {
	uc, _ := newFixture(t)
	ctx := context.Background()

	_, err := uc.ReceiveLines(ctx, dto.ReceiveOrderRequest{
		Lines: []dto.ReceiveOrderLineRequest{{SKU: "sku-1", Quantity: qty("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidDestination)

	_, err = uc.ReceiveLines(ctx, dto.ReceiveOrderRequest{WarehouseID: strptr("w1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// ProcessInput / CreateRecord / RecordOrderOutput
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateRecord_EntraComoInput(t *testing.T) {
	uc, store := newFixture(t)

	rec, err := uc.CreateRecord(context.Background(), dto.CreateStockRecordRequest{
		ItemSKU:     "sku-1",
		WarehouseID: strptr("w1"),
		Quantity:    qty("15"),
	})
	require.NoError(t, err)
	assert.True(t, rec.Quantity.Equal(qty("15")))
	require.Len(t, store.Txns.Entries, 1)
	assert.Equal(t, entity.TransactionSourceInput, store.Txns.Entries[0].Source)
}

func TestCreateRecord_ItemDesconocido(t *testing.T) {
	uc, _ := newFixture(t)
	_, err := uc.CreateRecord(context.Background(), dto.CreateStockRecordRequest{
		ItemSKU:     "sku-fantasma",
		WarehouseID: strptr("w1"),
		Quantity:    qty("1"),
	})
	assert.ErrorIs(t, err, domain.ErrUnknownItem)
}

func TestProcessInput_SumaSobreRegistroExistente(t *testing.T) {
	uc, store := newFixture(t)
	ctx := context.Background()

	rec, err := uc.CreateRecord(ctx, dto.CreateStockRecordRequest{
		ItemSKU: "sku-1", WarehouseID: strptr("w1"), Quantity: qty("10"),
	})
	require.NoError(t, err)

	out, err := uc.ProcessInput(ctx, dto.ProcessInputRequest{ID: rec.ID, Quantity: qty("4")})
	require.NoError(t, err)
	assert.True(t, out.Quantity.Equal(qty("14")))
	assert.Len(t, store.Txns.Entries, 2)
}

func TestProcessInput_RegistroInexistente(t *testing.T) {
	uc, _ := newFixture(t)
	_, err := uc.ProcessInput(context.Background(), dto.ProcessInputRequest{ID: "no-existe", Quantity: qty("1")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProcessInput_CantidadNoPositiva(t *testing.T) {
	uc, _ := newFixture(t)
	_, err := uc.ProcessInput(context.Background(), dto.ProcessInputRequest{ID: "x", Quantity: qty("0")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecordOrderOutput_DescuentaComoORDER(t *testing.T) {
	uc, store := newFixture(t)
	ctx := context.Background()

	_, err := uc.CreateRecord(ctx, dto.CreateStockRecordRequest{
		ItemSKU: "sku-1", WarehouseID: strptr("w1"), Quantity: qty("10"),
	})
	require.NoError(t, err)

	out, err := uc.RecordOrderOutput(ctx, "sku-1", entity.WarehouseRef("w1"), qty("4"))
	require.NoError(t, err)
	assert.True(t, out.Quantity.Equal(qty("6")))

	require.Len(t, store.Txns.Entries, 2)
	last := store.Txns.Entries[1]
	assert.Equal(t, entity.TransactionTypeOut, last.Type)
	assert.Equal(t, entity.TransactionSourceOrder, last.Source)
	assert.True(t, last.ChangedQuantity.Equal(qty("-4")))
}

func TestRecordOrderOutput_SinStockSuficiente(t *testing.T) {
	uc, store := newFixture(t)
	ctx := context.Background()

	_, err := uc.CreateRecord(ctx, dto.CreateStockRecordRequest{
		ItemSKU: "sku-1", WarehouseID: strptr("w1"), Quantity: qty("3"),
	})
	require.NoError(t, err)

	_, err = uc.RecordOrderOutput(ctx, "sku-1", entity.WarehouseRef("w1"), qty("10"))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, stockAt(t, store, "sku-1", entity.WarehouseRef("w1")).Equal(qty("3")))
}
