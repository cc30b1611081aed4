package entity

import "time"

// Category representa una categoría del catálogo (jerárquica opcional).
// El vínculo padre/hijo se guarda solo como ParentID; los hijos se resuelven
// consultando el almacén por ParentID, nunca con punteros entre structs.
type Category struct {
	ID           string
	Name         string // único global, sin importar el flag Active
	Slug         string // derivado del nombre si no se suministra; no se exige único
	Description  string
	Active       bool
	DisplayOrder int    // informativo; el armado del árbol no ordena por este campo
	ParentID     string // vacío si es raíz
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
