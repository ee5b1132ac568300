package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/masuelto/almacen-api/internal/domain/entity"
)

// La tabla completa de transiciones: todo lo que no está permitido
// explícitamente está prohibido, incluidos los retrocesos.
func TestCanTransition_TablaCompleta(t *testing.T) {
	all := []string{
		entity.TransferStatusPending,
		entity.TransferStatusApproved,
		entity.TransferStatusDelivered,
		entity.TransferStatusRejected,
		entity.TransferStatusCancelled,
	}
	allowed := map[[2]string]bool{
		{entity.TransferStatusPending, entity.TransferStatusApproved}:   true,
		{entity.TransferStatusPending, entity.TransferStatusRejected}:   true,
		{entity.TransferStatusPending, entity.TransferStatusCancelled}:  true,
		{entity.TransferStatusApproved, entity.TransferStatusDelivered}: true,
	}
	for _, from := range all {
		for _, to := range all {
			got := entity.CanTransition(from, to)
			assert.Equal(t, allowed[[2]string{from, to}], got,
				"transición %s → %s", from, to)
		}
	}
}

func TestValidTransferStatus(t *testing.T) {
	assert.True(t, entity.ValidTransferStatus("PENDING"))
	assert.True(t, entity.ValidTransferStatus("DELIVERED"))
	assert.False(t, entity.ValidTransferStatus("pending"), "los estados son case-sensitive en la entidad")
	assert.False(t, entity.ValidTransferStatus("SHIPPED"))
	assert.False(t, entity.ValidTransferStatus(""))
}

func TestLocationRef_Valid(t *testing.T) {
	w := "w1"
	b := "b1"
	assert.True(t, entity.LocationRef{WarehouseID: &w}.Valid())
	assert.True(t, entity.LocationRef{BranchID: &b}.Valid())
	assert.False(t, entity.LocationRef{}.Valid(), "sin destino no es válido")
	assert.False(t, entity.LocationRef{WarehouseID: &w, BranchID: &b}.Valid(), "ambos a la vez no es válido")
}
