package dto

import (
	"time"

	"github.com/masuelto/almacen-api/internal/domain/entity"
)

// CreateLocationRequest body para crear bodegas o sucursales.
type CreateLocationRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	ImageURL string `json:"image_url,omitempty"`
}

// UpdateLocationRequest body de actualización parcial de bodegas/sucursales.
type UpdateLocationRequest struct {
	Name     *string `json:"name,omitempty"`
	Location *string `json:"location,omitempty"`
	ImageURL *string `json:"image_url,omitempty"`
}

// UpdateLocationStatusRequest body para activar/desactivar una ubicación.
type UpdateLocationStatusRequest struct {
	Status string `json:"status"` // ACTIVE | INACTIVE
}

// LocationResponse forma de una bodega o sucursal en respuestas.
type LocationResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	ImageURL  string    `json:"image_url,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToWarehouseResponse mapea una bodega a la forma de respuesta.
func ToWarehouseResponse(w *entity.Warehouse) *LocationResponse {
	return &LocationResponse{
		ID: w.ID, Name: w.Name, Location: w.Location, ImageURL: w.ImageURL,
		Status: w.Status, CreatedAt: w.CreatedAt, UpdatedAt: w.UpdatedAt,
	}
}

// ToBranchResponse mapea una sucursal a la forma de respuesta.
func ToBranchResponse(b *entity.Branch) *LocationResponse {
	return &LocationResponse{
		ID: b.ID, Name: b.Name, Location: b.Location, ImageURL: b.ImageURL,
		Status: b.Status, CreatedAt: b.CreatedAt, UpdatedAt: b.UpdatedAt,
	}
}
