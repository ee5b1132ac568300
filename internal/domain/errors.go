package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los casos de uso los envuelven con fmt.Errorf("%w: ...") cuando necesitan
// señalar la línea o el ítem que causó la falla; los handlers los mapean a
// códigos HTTP con errors.Is.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnknownItem        = errors.New("ítem de inventario no encontrado")
	ErrInvalidDestination = errors.New("destino inválido: debe ser exactamente una bodega o una sucursal")
	ErrInvalidTransition  = errors.New("transición de estado no permitida")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrInvalidMeasurement = errors.New("formato de medida inválido")
	ErrLocationInactive   = errors.New("ubicación inactiva")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
)
