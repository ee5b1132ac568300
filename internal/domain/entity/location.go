package entity

import "time"

// Estados de una ubicación (bodega o sucursal).
const (
	LocationStatusActive   = "ACTIVE"
	LocationStatusInactive = "INACTIVE"
)

// Warehouse representa una bodega: sitio que almacena stock y origen válido de traslados.
type Warehouse struct {
	ID        string
	Name      string
	Location  string
	ImageURL  string
	Status    string // ACTIVE | INACTIVE
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive indica si la bodega acepta operaciones de stock nuevas.
func (w *Warehouse) IsActive() bool { return w.Status == LocationStatusActive }

// Branch representa una sucursal: sitio que almacena stock y destino válido de traslados.
type Branch struct {
	ID        string
	Name      string
	Location  string
	ImageURL  string
	Status    string // ACTIVE | INACTIVE
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive indica si la sucursal acepta operaciones de stock nuevas.
func (b *Branch) IsActive() bool { return b.Status == LocationStatusActive }

// LocationRef identifica un sitio de stock: exactamente una bodega o una sucursal.
type LocationRef struct {
	WarehouseID *string
	BranchID    *string
}

// WarehouseRef construye la referencia a una bodega.
func WarehouseRef(id string) LocationRef { return LocationRef{WarehouseID: &id} }

// BranchRef construye la referencia a una sucursal.
func BranchRef(id string) LocationRef { return LocationRef{BranchID: &id} }

// Valid verifica el invariante: una bodega XOR una sucursal.
func (l LocationRef) Valid() bool {
	return (l.WarehouseID != nil) != (l.BranchID != nil)
}

// IsWarehouse indica si la referencia apunta a una bodega.
func (l LocationRef) IsWarehouse() bool { return l.WarehouseID != nil }

// ID devuelve el identificador del sitio referenciado.
func (l LocationRef) ID() string {
	if l.WarehouseID != nil {
		return *l.WarehouseID
	}
	if l.BranchID != nil {
		return *l.BranchID
	}
	return ""
}
