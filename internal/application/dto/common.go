package dto

// ErrorResponse es el cuerpo estándar de error de la API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PageRequest son los parámetros de paginación de los listados.
type PageRequest struct {
	Page int `json:"page"`
	Size int `json:"size"`
}

// Normalize aplica los valores por defecto de paginación.
func (p *PageRequest) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Size < 1 || p.Size > 200 {
		p.Size = 50
	}
}

// PageResponse envuelve un listado paginado.
type PageResponse[T any] struct {
	Items []T `json:"items"`
	Page  int `json:"page"`
	Size  int `json:"size"`
	Total int `json:"total"`
}
