package repository

import (
	"context"

	"github.com/jhoicas/retail-inventory/internal/domain/entity"
)

// PurchaseOrderRepository define el puerto de persistencia para PurchaseOrder.
type PurchaseOrderRepository interface {
	Create(ctx context.Context, order *entity.PurchaseOrder) error
	GetByPONumber(ctx context.Context, poNumber int) (*entity.PurchaseOrder, error)
	ExistsPONumber(ctx context.Context, poNumber int) (bool, error)
	ExistsTrackingNumber(ctx context.Context, tracking string) (bool, error)
	List(ctx context.Context) ([]*entity.PurchaseOrder, error)
	// Update reescribe producto, cantidad, fecha y guía; false si la orden no existe.
	Update(ctx context.Context, order *entity.PurchaseOrder) (bool, error)
	Delete(ctx context.Context, poNumber int) (bool, error)
}
