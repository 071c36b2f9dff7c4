package dto

// CreatePurchaseOrderRequest entrada para crear una orden de compra.
type CreatePurchaseOrderRequest struct {
	ProductID int64 `json:"product_id" validate:"required,min=1"`
	Quantity  int   `json:"quantity" validate:"required,min=1"`
}

// UpdatePurchaseOrderRequest campos opcionales; nil = no se modifica.
type UpdatePurchaseOrderRequest struct {
	ProductID      *int64  `json:"product_id" validate:"omitempty,min=1"`
	Quantity       *int    `json:"quantity" validate:"omitempty,min=1"`
	OrderDate      *string `json:"order_date" validate:"omitempty,datetime=2006-01-02"`
	TrackingNumber *string `json:"tracking_number" validate:"omitempty,len=10,digits"`
}

// Empty indica que el parche no trae campos.
func (r UpdatePurchaseOrderRequest) Empty() bool {
	return r.ProductID == nil && r.Quantity == nil && r.OrderDate == nil && r.TrackingNumber == nil
}

// PurchaseOrderResponse salida de una orden de compra.
type PurchaseOrderResponse struct {
	PONumber       int    `json:"po_number"`
	ProductID      int64  `json:"product_id"`
	Quantity       int    `json:"quantity"`
	OrderDate      string `json:"order_date"`
	TrackingNumber string `json:"tracking_number"`
}
