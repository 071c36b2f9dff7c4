package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario de tienda.
// Total y DateAdded los calcula la base de datos; son de sólo lectura.
// La clasificación vencido / rebaja se calcula al leer (ver domain/inventory), no se guarda.
type Product struct {
	ID             int64
	Name           string
	Description    string
	ExpirationDate *time.Time // fecha de vencimiento (opcional)
	MarkdownDate   *time.Time // fecha de rebaja (opcional, sólo informativa)
	Quantity       int
	Manufacturer   string
	Brand          string
	Price          decimal.Decimal
	Category       string
	Total          decimal.Decimal // quantity * price
	DateAdded      time.Time
}

// Date normaliza t a medianoche UTC del mismo día calendario.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DatePtr igual que Date pero para fechas opcionales.
func DatePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := Date(*t)
	return &d
}
