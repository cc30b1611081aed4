package usecase

import (
	"context"

	"github.com/soulf/catalogo-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando un
// repositorio de productos atado a esa tx. Garantiza que la fila del producto
// y el reemplazo de sus atributos/imágenes se confirmen juntos o no se
// confirmen en absoluto.
type TxRunner interface {
	Run(ctx context.Context, fn func(products repository.ProductRepository) error) error
}
