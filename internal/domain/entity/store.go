package entity

import "time"

// Tipos de tienda sugeridos. StoreType es texto libre y no se valida contra ellos.
const (
	StoreTypeRetail    = "retail"
	StoreTypeWarehouse = "warehouse"
)

// Store representa una tienda o bodega de la cadena.
type Store struct {
	ID          int // 5 dígitos, generado
	Name        string
	Address     string
	City        string
	State       string
	Zip         int
	Phone       string
	StoreType   string
	OpeningDate time.Time
}
