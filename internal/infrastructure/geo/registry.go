// Package geo carga el árbol estático de ubicaciones del Paraguay
// (departamentos, distritos, ciudades y barrios) y lo expone como un
// registro de consulta en memoria.
package geo

import (
	"encoding/json"
	"fmt"
	"os"
)

// Entrada es un par código/nombre de cualquier nivel del árbol.
type Entrada struct {
	Codigo string `json:"codigo"`
	Nombre string `json:"nombre"`
}

type barrio struct {
	Codigo json.Number `json:"codigo"`
	Nombre string      `json:"nombre"`
}

type ciudad struct {
	Codigo  json.Number `json:"codigo"`
	Nombre  string      `json:"nombre"`
	Barrios []barrio    `json:"barrios"`
}

type distrito struct {
	Codigo   json.Number `json:"codigo"`
	Nombre   string      `json:"nombre"`
	Ciudades []ciudad    `json:"ciudades"`
}

type departamento struct {
	Codigo    json.Number `json:"codigo"`
	Nombre    string      `json:"nombre"`
	Distritos []distrito  `json:"distritos"`
}

// Registry es el registro de ubicaciones. Se construye una sola vez al
// arrancar y después es de solo lectura, por lo que puede compartirse
// entre goroutines sin sincronización.
type Registry struct {
	data []departamento
}

// NewRegistry carga el árbol desde el archivo JSON indicado.
func NewRegistry(path string) (*Registry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("geo: leer %s: %w", path, err)
	}
	return NewRegistryFromBytes(raw)
}

// NewRegistryFromBytes construye el registro desde el JSON en memoria.
func NewRegistryFromBytes(raw []byte) (*Registry, error) {
	var data []departamento
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("geo: decodificar árbol de ubicaciones: %w", err)
	}
	return &Registry{data: data}, nil
}

// Departamentos devuelve todos los departamentos.
func (r *Registry) Departamentos() []Entrada {
	out := make([]Entrada, 0, len(r.data))
	for _, d := range r.data {
		out = append(out, Entrada{Codigo: d.Codigo.String(), Nombre: d.Nombre})
	}
	return out
}

// Distritos devuelve los distritos de un departamento. Código
// desconocido devuelve lista vacía, nunca error.
func (r *Registry) Distritos(deptoCodigo string) []Entrada {
	out := []Entrada{}
	for _, d := range r.data {
		if d.Codigo.String() != deptoCodigo {
			continue
		}
		for _, dist := range d.Distritos {
			out = append(out, Entrada{Codigo: dist.Codigo.String(), Nombre: dist.Nombre})
		}
	}
	return out
}

// Ciudades devuelve las ciudades de un distrito.
func (r *Registry) Ciudades(deptoCodigo, distritoCodigo string) []Entrada {
	out := []Entrada{}
	for _, dist := range r.distritos(deptoCodigo) {
		if dist.Codigo.String() != distritoCodigo {
			continue
		}
		for _, c := range dist.Ciudades {
			out = append(out, Entrada{Codigo: c.Codigo.String(), Nombre: c.Nombre})
		}
	}
	return out
}

// Barrios devuelve los barrios de una ciudad.
func (r *Registry) Barrios(deptoCodigo, distritoCodigo, ciudadCodigo string) []Entrada {
	out := []Entrada{}
	for _, c := range r.ciudades(deptoCodigo, distritoCodigo) {
		if c.Codigo.String() != ciudadCodigo {
			continue
		}
		for _, b := range c.Barrios {
			out = append(out, Entrada{Codigo: b.Codigo.String(), Nombre: b.Nombre})
		}
	}
	return out
}

// NombreDepartamento devuelve el nombre de un departamento, o "" si no existe.
func (r *Registry) NombreDepartamento(codigo string) string {
	for _, d := range r.data {
		if d.Codigo.String() == codigo {
			return d.Nombre
		}
	}
	return ""
}

// NombreDistrito devuelve el nombre de un distrito, o "" si no existe.
func (r *Registry) NombreDistrito(deptoCodigo, distritoCodigo string) string {
	for _, dist := range r.distritos(deptoCodigo) {
		if dist.Codigo.String() == distritoCodigo {
			return dist.Nombre
		}
	}
	return ""
}

// NombreCiudad devuelve el nombre de una ciudad, o "" si no existe.
func (r *Registry) NombreCiudad(deptoCodigo, distritoCodigo, ciudadCodigo string) string {
	for _, c := range r.ciudades(deptoCodigo, distritoCodigo) {
		if c.Codigo.String() == ciudadCodigo {
			return c.Nombre
		}
	}
	return ""
}

func (r *Registry) distritos(deptoCodigo string) []distrito {
	for _, d := range r.data {
		if d.Codigo.String() == deptoCodigo {
			return d.Distritos
		}
	}
	return nil
}

func (r *Registry) ciudades(deptoCodigo, distritoCodigo string) []ciudad {
	for _, dist := range r.distritos(deptoCodigo) {
		if dist.Codigo.String() == distritoCodigo {
			return dist.Ciudades
		}
	}
	return nil
}
