package repository

// Page parámetros de paginación y orden para listados.
// Number es base cero; Sort es el nombre del campo (el adaptador decide cuáles
// admite); Desc invierte la dirección.
type Page struct {
	Number int
	Size   int
	Sort   string
	Desc   bool
}

// Offset devuelve el desplazamiento en filas para la página.
func (p Page) Offset() int {
	if p.Number < 0 {
		return 0
	}
	return p.Number * p.Size
}
