package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masuelto/almacen-api/internal/application/ledger"
	"github.com/masuelto/almacen-api/internal/domain"
	"github.com/masuelto/almacen-api/internal/domain/entity"
	"github.com/masuelto/almacen-api/internal/testutil"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func qty(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newLedger(t *testing.T) (*ledger.UseCase, *testutil.Store) {
	t.Helper()
	store := testutil.NewStore()
	now := time.Now()
	require.NoError(t, store.Warehouses.Create(context.Background(), &entity.Warehouse{
		ID: "w1", Name: "Bodega Central", Status: entity.LocationStatusActive, CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, store.Warehouses.Create(context.Background(), &entity.Warehouse{
		ID: "w-off", Name: "Bodega Cerrada", Status: entity.LocationStatusInactive, CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, store.Branches.Create(context.Background(), &entity.Branch{
		ID: "b1", Name: "Sucursal Norte", Status: entity.LocationStatusActive, CreatedAt: now, UpdatedAt: now,
	}))
	uc := ledger.NewUseCase(store.TxRunner(), store.Stock, store.Txns, store.Warehouses, store.Branches)
	return uc, store
}

// ──────────────────────────────────────────────────────────────────────────────
// ApplyDelta
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyDelta_CreaRegistroConDeltaPositivo(t *testing.T) {
	uc, store := newLedger(t)
	ctx := context.Background()

	rec, err := uc.ApplyDelta(ctx, ledger.ApplyDeltaInput{
		ItemSKU:  "sku-1",
		Location: entity.WarehouseRef("w1"),
		Delta:    qty("20"),
		Source:   entity.TransactionSourceInput,
	})
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.NotEmpty(t, rec.ID, "la inserción debe rellenar el id")
	assert.True(t, rec.Quantity.Equal(qty("20")))

	// Exactamente un asiento IN por la mutación.
	require.Len(t, store.Txns.Entries, 1)
	entry := store.Txns.Entries[0]
	assert.Equal(t, rec.ID, entry.StockRecordID)
	assert.Equal(t, entity.TransactionSourceInput, entry.Source)
	assert.Equal(t, entity.TransactionTypeIn, entry.Type)
	assert.True(t, entry.ChangedQuantity.Equal(qty("20")))
}

func TestApplyDelta_NegativoSinRegistro_Falla(t *testing.T) {
	uc, store := newLedger(t)

	_, err := uc.ApplyDelta(context.Background(), ledger.ApplyDeltaInput{
		ItemSKU:  "sku-1",
		Location: entity.WarehouseRef("w1"),
		Delta:    qty("-5"),
		Source:   entity.TransactionSourceOrder,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Empty(t, store.Txns.Entries, "un fallo no escribe asientos")
}

func TestApplyDelta_NoPermiteCantidadNegativa(t *testing.T) {
	uc, store := newLedger(t)
	ctx := context.Background()

	_, err := uc.ApplyDelta(ctx, ledger.ApplyDeltaInput{
		ItemSKU: "sku-1", Location: entity.WarehouseRef("w1"),
		Delta: qty("5"), Source: entity.TransactionSourceInput,
	})
	require.NoError(t, err)

	_, err = uc.ApplyDelta(ctx, ledger.ApplyDeltaInput{
		ItemSKU: "sku-1", Location: entity.WarehouseRef("w1"),
		Delta: qty("-10"), Source: entity.TransactionSourceOrder,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// El registro queda intacto y no hay asiento nuevo.
	rec, err := uc.GetStock(ctx, "sku-1", entity.WarehouseRef("w1"))
	require.NoError(t, err)
	assert.True(t, rec.Quantity.Equal(qty("5")), "la cantidad no debe cambiar tras un fallo")
	assert.Len(t, store.Txns.Entries, 1)
}

func TestApplyDelta_SumaDeAsientosIgualaCantidad(t *testing.T) {
	uc, store := newLedger(t)
	ctx := context.Background()
	loc := entity.BranchRef("b1")

	deltas := []string{"10", "4", "-3", "7.5", "-0.5"}
	for _, d := range deltas {
		src := entity.TransactionSourceInput
		if qty(d).IsNegative() {
			src = entity.TransactionSourceOrder
		}
		_, err := uc.ApplyDelta(ctx, ledger.ApplyDeltaInput{
			ItemSKU: "sku-1", Location: loc, Delta: qty(d), Source: src,
		})
		require.NoError(t, err)
	}

	rec, err := uc.GetStock(ctx, "sku-1", loc)
	require.NoError(t, err)

	sum := decimal.Zero
	entries, err := store.Txns.ListByRecord(ctx, rec.ID)
	require.NoError(t, err)
	require.Len(t, entries, len(deltas), "un asiento por mutación exitosa")
	for _, e := range entries {
		sum = sum.Add(e.ChangedQuantity)
	}
	assert.True(t, sum.Equal(rec.Quantity),
		"la suma de los deltas (%s) debe igualar la cantidad actual (%s)", sum, rec.Quantity)
	assert.True(t, rec.Quantity.Equal(qty("18")))
}

func TestApplyDelta_DeltaCeroInvalido(t *testing.T) {
	uc, _ := newLedger(t)
	_, err := uc.ApplyDelta(context.Background(), ledger.ApplyDeltaInput{
		ItemSKU: "sku-1", Location: entity.WarehouseRef("w1"),
		Delta: decimal.Zero, Source: entity.TransactionSourceInput,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApplyDelta_SourceDesconocidoInvalido(t *testing.T) {
	uc, _ := newLedger(t)
	_, err := uc.ApplyDelta(context.Background(), ledger.ApplyDeltaInput{
		ItemSKU: "sku-1", Location: entity.WarehouseRef("w1"),
		Delta: qty("1"), Source: "ADJUSTMENT",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApplyDelta_UbicacionInactivaRechaza(t *testing.T) {
	uc, store := newLedger(t)
	_, err := uc.ApplyDelta(context.Background(), ledger.ApplyDeltaInput{
		ItemSKU: "sku-1", Location: entity.WarehouseRef("w-off"),
		Delta: qty("10"), Source: entity.TransactionSourceInput,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrLocationInactive)
	assert.Empty(t, store.Txns.Entries)
}

func TestApplyDelta_UbicacionInexistente(t *testing.T) {
	uc, _ := newLedger(t)
	_, err := uc.ApplyDelta(context.Background(), ledger.ApplyDeltaInput{
		ItemSKU: "sku-1", Location: entity.WarehouseRef("no-existe"),
		Delta: qty("10"), Source: entity.TransactionSourceInput,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// GetStock / registros
// ──────────────────────────────────────────────────────────────────────────────

func TestGetStock_NoCreaComoEfectoSecundario(t *testing.T) {
	uc, store := newLedger(t)
	ctx := context.Background()

	_, err := uc.GetStock(ctx, "sku-1", entity.WarehouseRef("w1"))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := store.Stock.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, list, "una consulta nunca crea registros")
}

func TestSoftDeleteRecord_ConservaAsientos(t *testing.T) {
	uc, store := newLedger(t)
	ctx := context.Background()

	rec, err := uc.ApplyDelta(ctx, ledger.ApplyDeltaInput{
		ItemSKU: "sku-1", Location: entity.WarehouseRef("w1"),
		Delta: qty("9"), Source: entity.TransactionSourceInput,
	})
	require.NoError(t, err)

	require.NoError(t, uc.SoftDeleteRecord(ctx, rec.ID))

	_, err = uc.GetRecordByID(ctx, rec.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "un registro borrado no se expone")

	entries, err := store.Txns.ListByRecord(ctx, rec.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "el historial sobrevive al soft-delete")
}
