package entity

import "time"

// PurchaseOrder orden de compra de reposición. Registro plano: no modela estados de envío.
// Crearla no modifica Product.Quantity.
type PurchaseOrder struct {
	PONumber       int // 5 dígitos, generado
	ProductID      int64
	Quantity       int
	OrderDate      time.Time
	TrackingNumber string // 10 dígitos con ceros a la izquierda, generado
}
