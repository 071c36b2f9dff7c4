package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/retail-inventory/internal/domain/entity"
	"github.com/jhoicas/retail-inventory/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

const orderColumns = `po_number, productID, quantity, order_date, tracking_number`

// PurchaseOrderRepo implementación del puerto PurchaseOrderRepository sobre PostgreSQL.
type PurchaseOrderRepo struct {
	q       Querier
	timeout time.Duration
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier, timeout time.Duration) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q, timeout: timeout}
}

// Create inserta la orden. Número de orden o guía repetidos → domain.ErrDuplicate.
func (r *PurchaseOrderRepo) Create(ctx context.Context, o *entity.PurchaseOrder) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	_, err := r.q.Exec(ctx, `
		INSERT INTO purchase_orders (po_number, productID, quantity, order_date, tracking_number)
		VALUES ($1, $2, $3, $4, $5)`,
		o.PONumber, o.ProductID, o.Quantity, entity.Date(o.OrderDate), o.TrackingNumber,
	)
	return dbError("insert purchase order", err)
}

// GetByPONumber obtiene una orden.
func (r *PurchaseOrderRepo) GetByPONumber(ctx context.Context, poNumber int) (*entity.PurchaseOrder, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	o, err := scanOrder(r.q.QueryRow(ctx, `SELECT `+orderColumns+` FROM purchase_orders WHERE po_number = $1`, poNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dbError("get purchase order", err)
	}
	return o, nil
}

// ExistsPONumber indica si el número de orden ya está tomado.
func (r *PurchaseOrderRepo) ExistsPONumber(ctx context.Context, poNumber int) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM purchase_orders WHERE po_number = $1)`, poNumber)
}

// ExistsTrackingNumber indica si el número de guía ya está tomado.
func (r *PurchaseOrderRepo) ExistsTrackingNumber(ctx context.Context, tracking string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM purchase_orders WHERE tracking_number = $1)`, tracking)
}

func (r *PurchaseOrderRepo) exists(ctx context.Context, query string, arg any) (bool, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	var exists bool
	if err := r.q.QueryRow(ctx, query, arg).Scan(&exists); err != nil {
		return false, dbError("purchase order exists", err)
	}
	return exists, nil
}

// List todas las órdenes por número.
func (r *PurchaseOrderRepo) List(ctx context.Context) ([]*entity.PurchaseOrder, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	rows, err := r.q.Query(ctx, `SELECT `+orderColumns+` FROM purchase_orders ORDER BY po_number`)
	if err != nil {
		return nil, dbError("list purchase orders", err)
	}
	defer rows.Close()
	list := make([]*entity.PurchaseOrder, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, dbError("scan purchase order", err)
		}
		list = append(list, o)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("list purchase orders", err)
	}
	return list, nil
}

// Update reescribe los campos editables de la orden. Un tracking repetido → ErrDuplicate.
func (r *PurchaseOrderRepo) Update(ctx context.Context, o *entity.PurchaseOrder) (bool, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	cmd, err := r.q.Exec(ctx,
		`UPDATE purchase_orders
		 SET productID = $2, quantity = $3, order_date = $4, tracking_number = $5
		 WHERE po_number = $1`,
		o.PONumber, o.ProductID, o.Quantity, entity.Date(o.OrderDate), o.TrackingNumber,
	)
	if err != nil {
		return false, dbError("update purchase order", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// Delete elimina una orden.
func (r *PurchaseOrderRepo) Delete(ctx context.Context, poNumber int) (bool, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	cmd, err := r.q.Exec(ctx, `DELETE FROM purchase_orders WHERE po_number = $1`, poNumber)
	if err != nil {
		return false, dbError("delete purchase order", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func scanOrder(row pgxScanner) (*entity.PurchaseOrder, error) {
	var o entity.PurchaseOrder
	if err := row.Scan(&o.PONumber, &o.ProductID, &o.Quantity, &o.OrderDate, &o.TrackingNumber); err != nil {
		return nil, err
	}
	o.OrderDate = entity.Date(o.OrderDate)
	return &o, nil
}
