package measure_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masuelto/almacen-api/internal/domain"
	"github.com/masuelto/almacen-api/internal/domain/measure"
)

func TestParse_DescriptoresValidos(t *testing.T) {
	cases := []struct {
		in     string
		amount string
		unit   string
	}{
		{"50 kg", "50", "kg"},
		{"50kg", "50", "kg"},
		{"  12.5 L  ", "12.5", "l"},
		{"1 unidad", "1", "unidad"},
		{"0.25ml", "0.25", "ml"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			m, err := measure.Parse(tc.in)
			require.NoError(t, err)
			assert.True(t, m.Amount.Equal(decimal.RequireFromString(tc.amount)),
				"cantidad esperada %s, obtenida %s", tc.amount, m.Amount)
			assert.Equal(t, tc.unit, m.Unit, "la unidad siempre se normaliza a minúsculas")
		})
	}
}

func TestParse_DescriptoresInvalidos(t *testing.T) {
	cases := []string{
		"",
		"kg",
		"50",
		"kg 50",
		"cincuenta kg",
		"50 kg extra",
		"-5 kg",
		"1.2.3 kg",
	}
	for _, in := range cases {
		t.Run("invalido_"+in, func(t *testing.T) {
			_, err := measure.Parse(in)
			require.Error(t, err, "el parser nunca adivina: %q debe fallar", in)
			assert.ErrorIs(t, err, domain.ErrInvalidMeasurement)
		})
	}
}
