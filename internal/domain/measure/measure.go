// Package measure parsea descriptores de medida de texto libre ("50 kg",
// "12 unidades") hacia un resultado estructurado (cantidad, unidad).
// Lo usa el adaptador de recepción cuando auto-crea ítems de catálogo a
// partir de líneas de órdenes de compra.
package measure

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/masuelto/almacen-api/internal/domain"
)

// Measurement es el resultado estructurado de un descriptor.
type Measurement struct {
	Amount decimal.Decimal
	Unit   string
}

// descriptorRe acepta "<número><unidad>" con espacios opcionales entre ambos.
// El número admite decimales; la unidad es alfabética (kg, g, l, ml, pcs, ...).
var descriptorRe = regexp.MustCompile(`^\s*(\d+(?:\.\d+)?)\s*([a-zA-Z]+)\s*$`)

// Parse convierte un descriptor "50 kg" en (50, "kg"). Formatos ambiguos o
// que no calzan con <número><unidad> fallan con ErrInvalidMeasurement; nunca
// se adivina.
func Parse(descriptor string) (Measurement, error) {
	m := descriptorRe.FindStringSubmatch(descriptor)
	if m == nil {
		return Measurement{}, fmt.Errorf("%w: %q", domain.ErrInvalidMeasurement, descriptor)
	}
	amount, err := decimal.NewFromString(m[1])
	if err != nil {
		return Measurement{}, fmt.Errorf("%w: %q", domain.ErrInvalidMeasurement, descriptor)
	}
	return Measurement{Amount: amount, Unit: strings.ToLower(m[2])}, nil
}
