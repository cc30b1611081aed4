package dto

import (
	"strings"

	"github.com/soulf/catalogo-api/internal/domain/repository"
)

// PageRequest paginación para listados: página base cero, tamaño, campo de orden
// y dirección (asc/desc, sin distinguir mayúsculas).
type PageRequest struct {
	Page int    `query:"page"`
	Size int    `query:"size"`
	Sort string `query:"sort"`
	Dir  string `query:"dir"`
}

// Normalize aplica valores por defecto y acota el tamaño de página.
func (p *PageRequest) Normalize() {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size <= 0 {
		p.Size = 20
	}
	if p.Size > 100 {
		p.Size = 100
	}
	if p.Sort == "" {
		p.Sort = "created_at"
	}
}

// ToPage traduce la petición a la página del dominio.
func (p PageRequest) ToPage() repository.Page {
	return repository.Page{
		Number: p.Page,
		Size:   p.Size,
		Sort:   p.Sort,
		Desc:   strings.EqualFold(p.Dir, "desc"),
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Page  int `json:"page"`
	Size  int `json:"size"`
	Total int `json:"total"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
