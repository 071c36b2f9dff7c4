package purchasing

import (
	"context"

	"github.com/jhoicas/retail-inventory/internal/domain/entity"
	"github.com/jhoicas/retail-inventory/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Error de fn → Rollback; nil → Commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		orderRepo repository.PurchaseOrderRepository,
	) error) error
}

// SheetRenderer genera el documento imprimible de una orden de compra.
type SheetRenderer interface {
	PurchaseOrderSheet(order *entity.PurchaseOrder, product *entity.Product) ([]byte, error)
}
