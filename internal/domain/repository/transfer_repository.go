package repository

import (
	"context"
	"time"

	"github.com/masuelto/almacen-api/internal/domain/entity"
)

// TransferRepository define el puerto de persistencia para solicitudes de
// traslado y sus líneas. Get* devuelven (nil, nil) cuando no existe e
// hidratan las líneas y los nombres de bodega/sucursal.
type TransferRepository interface {
	// Create persiste la solicitud y sus líneas (el caller decide la frontera transaccional).
	Create(ctx context.Context, t *entity.TransferRequest) error
	GetByID(ctx context.Context, id string) (*entity.TransferRequest, error)
	// GetByIDForUpdate bloquea la fila de la solicitud (SELECT FOR UPDATE)
	// para que transiciones concurrentes del mismo traslado se serialicen.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.TransferRequest, error)
	UpdateStatus(ctx context.Context, id, status string) error
	SetActualArrival(ctx context.Context, id string, at time.Time) error
	ListByStatus(ctx context.Context, status string) ([]*entity.TransferRequest, error)
	// ListBySource ordena por fecha de creación descendente.
	ListBySource(ctx context.Context, warehouseID, status string, limit, offset int) ([]*entity.TransferRequest, error)
	CountBySource(ctx context.Context, warehouseID, status string) (int, error)
	// ListByDestination acepta el id de una bodega o sucursal destino; ordena
	// por llegada real descendente para DELIVERED y por creación para el resto.
	ListByDestination(ctx context.Context, locationID, status string, limit, offset int) ([]*entity.TransferRequest, error)
	CountByDestination(ctx context.Context, locationID, status string) (int, error)
}
