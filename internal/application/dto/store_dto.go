package dto

// StoreRequest entrada para crear o reemplazar una tienda. OpeningDate vacío = hoy.
type StoreRequest struct {
	Name        string `json:"store_name" validate:"required,max=200"`
	Address     string `json:"address" validate:"required,max=300"`
	City        string `json:"city" validate:"required,max=100"`
	State       string `json:"state" validate:"required,max=100"`
	Zip         int    `json:"zip" validate:"required,min=1,max=99999"`
	Phone       string `json:"phone" validate:"required,len=10,digits"`
	StoreType   string `json:"store_type" validate:"required,max=50"`
	OpeningDate string `json:"opening_date" validate:"omitempty,datetime=2006-01-02"`
}

// StoreResponse salida de una tienda.
type StoreResponse struct {
	ID          int    `json:"store_id"`
	Name        string `json:"store_name"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	Zip         int    `json:"zip"`
	Phone       string `json:"phone"`
	StoreType   string `json:"store_type"`
	OpeningDate string `json:"opening_date"`
}
