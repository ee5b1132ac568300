package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/masuelto/almacen-api/internal/domain/entity"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// locationPredicate arma el predicado de ubicación para el lado presente del
// LocationRef. prefix es el alias de tabla ("sr." o vacío); argPos la
// posición del placeholder.
func locationPredicate(prefix string, loc entity.LocationRef, argPos int) (string, string) {
	if loc.IsWarehouse() {
		return fmt.Sprintf("%swarehouse_id = $%d", prefix, argPos), *loc.WarehouseID
	}
	return fmt.Sprintf("%sbranch_id = $%d", prefix, argPos), *loc.BranchID
}
