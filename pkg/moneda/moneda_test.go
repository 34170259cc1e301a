package moneda

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestGuaranies(t *testing.T) {
	assert.Equal(t, "Gs. 1.500.000", Guaranies(decimal.NewFromInt(1500000)))
	assert.Equal(t, "Gs. 0", Guaranies(decimal.Zero))
	// El guaraní no maneja céntimos: se redondea.
	assert.Equal(t, "Gs. 1.000", Guaranies(decimal.NewFromFloat(999.9)))
}

func TestNumero(t *testing.T) {
	assert.Equal(t, "25.000", Numero(decimal.NewFromInt(25000)))
	assert.Equal(t, "999", Numero(decimal.NewFromInt(999)))
}

func TestEnLetras(t *testing.T) {
	cases := map[int64]string{
		0:         "cero guaraníes",
		7:         "siete guaraníes",
		16:        "dieciséis guaraníes",
		35:        "treinta y cinco guaraníes",
		100:       "cien guaraníes",
		215:       "doscientos quince guaraníes",
		1000:      "mil guaraníes",
		52300:     "cincuenta y dos mil trescientos guaraníes",
		1_000_000: "un millón guaraníes",
		1_500_000: "un millón quinientos mil guaraníes",
		3_000_000: "tres millones guaraníes",
	}
	for n, want := range cases {
		assert.Equal(t, want, EnLetras(decimal.NewFromInt(n)), "n=%d", n)
	}
}
