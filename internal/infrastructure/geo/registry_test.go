package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const arbol = `[
  {
    "codigo": 1,
    "nombre": "CAPITAL",
    "distritos": [
      {
        "codigo": 1,
        "nombre": "ASUNCION (DISTRITO)",
        "ciudades": [
          {
            "codigo": 1,
            "nombre": "ASUNCION",
            "barrios": [
              {"codigo": 12, "nombre": "SAN ROQUE"},
              {"codigo": 14, "nombre": "RECOLETA"}
            ]
          }
        ]
      }
    ]
  },
  {
    "codigo": 11,
    "nombre": "CENTRAL",
    "distritos": [
      {
        "codigo": 145,
        "nombre": "LAMBARE",
        "ciudades": [
          {"codigo": 201, "nombre": "LAMBARE", "barrios": []}
        ]
      }
    ]
  }
]`

func newRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := NewRegistryFromBytes([]byte(arbol))
	require.NoError(t, err)
	return r
}

func TestDepartamentos(t *testing.T) {
	r := newRegistry(t)

	deptos := r.Departamentos()
	require.Len(t, deptos, 2)
	assert.Equal(t, Entrada{Codigo: "1", Nombre: "CAPITAL"}, deptos[0])
	assert.Equal(t, Entrada{Codigo: "11", Nombre: "CENTRAL"}, deptos[1])
}

func TestNavegacionDelArbol(t *testing.T) {
	r := newRegistry(t)

	distritos := r.Distritos("11")
	require.Len(t, distritos, 1)
	assert.Equal(t, "LAMBARE", distritos[0].Nombre)

	ciudades := r.Ciudades("1", "1")
	require.Len(t, ciudades, 1)
	assert.Equal(t, "ASUNCION", ciudades[0].Nombre)

	barrios := r.Barrios("1", "1", "1")
	require.Len(t, barrios, 2)
	assert.Equal(t, "SAN ROQUE", barrios[0].Nombre)
}

func TestCodigosDesconocidos(t *testing.T) {
	r := newRegistry(t)

	// Código inexistente devuelve lista vacía, nunca nil ni error.
	assert.Empty(t, r.Distritos("99"))
	assert.NotNil(t, r.Distritos("99"))
	assert.Empty(t, r.Ciudades("1", "99"))
	assert.Empty(t, r.Barrios("11", "145", "999"))
}

func TestNombres(t *testing.T) {
	r := newRegistry(t)

	assert.Equal(t, "CAPITAL", r.NombreDepartamento("1"))
	assert.Equal(t, "ASUNCION (DISTRITO)", r.NombreDistrito("1", "1"))
	assert.Equal(t, "LAMBARE", r.NombreCiudad("11", "145", "201"))
	assert.Empty(t, r.NombreDepartamento("99"))
}

func TestJSONInvalido(t *testing.T) {
	_, err := NewRegistryFromBytes([]byte("{no es json"))
	assert.Error(t, err)
}
