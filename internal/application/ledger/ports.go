package ledger

import (
	"context"

	"github.com/masuelto/almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Es la frontera de atomicidad del ledger: la
// actualización del registro de stock y el asiento del log comprometen juntos
// o no comprometen.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		txnRepo repository.StockTransactionRepository,
		transferRepo repository.TransferRepository,
		itemRepo repository.ItemRepository,
	) error) error
}
