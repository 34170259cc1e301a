package sifen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalcDV(t *testing.T) {
	// Módulo 11 con pesos cíclicos 2..11 de derecha a izquierda.
	assert.Equal(t, 0, CalcDV("80012345"))
	assert.Equal(t, 5, CalcDV("4455667"))
}

func TestValidRUC(t *testing.T) {
	assert.True(t, ValidRUC("80012345-0"))
	assert.True(t, ValidRUC("4455667-5"))
	assert.True(t, ValidRUC("4.455.667-5"))
	// Sin DV explícito solo se exige la parte numérica.
	assert.True(t, ValidRUC("80012345"))

	assert.False(t, ValidRUC("80012345-9"))
	assert.False(t, ValidRUC("123"))
	assert.False(t, ValidRUC("80A12345-0"))
	assert.False(t, ValidRUC("80012345-55"))
}

func TestBaseYDigito(t *testing.T) {
	assert.Equal(t, "4455667", BaseRUC("4.455.667-5"))
	assert.Equal(t, "5", RUCDigit("4455667-5"))
	// Sin DV declarado se calcula.
	assert.Equal(t, "5", RUCDigit("4455667"))
}
