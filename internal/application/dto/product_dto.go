package dto

import "github.com/shopspring/decimal"

// CreateProductRequest entrada para crear un producto. Fechas en formato YYYY-MM-DD.
type CreateProductRequest struct {
	Name           string          `json:"product_name" validate:"required,max=200"`
	Description    string          `json:"description" validate:"max=1000"`
	ExpirationDate string          `json:"expiration_date" validate:"omitempty,datetime=2006-01-02"`
	MarkdownDate   string          `json:"markdown_date" validate:"omitempty,datetime=2006-01-02"`
	Quantity       int             `json:"quantity" validate:"min=0"`
	Manufacturer   string          `json:"manufacturer" validate:"max=200"`
	Brand          string          `json:"brand" validate:"max=200"`
	Price          decimal.Decimal `json:"price"`
	Category       string          `json:"category" validate:"max=100"`
}

// UpdateQuantityRequest nueva cantidad en stock.
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID             int64           `json:"product_id"`
	Name           string          `json:"product_name"`
	Description    string          `json:"description,omitempty"`
	ExpirationDate string          `json:"expiration_date,omitempty"`
	MarkdownDate   string          `json:"markdown_date,omitempty"`
	Quantity       int             `json:"quantity"`
	Manufacturer   string          `json:"manufacturer"`
	Brand          string          `json:"brand"`
	Price          decimal.Decimal `json:"price"`
	Category       string          `json:"category"`
	Total          decimal.Decimal `json:"total"`
	DateAdded      string          `json:"date_added"`
	Status         string          `json:"status"`
}

// CategoryReport productos vencidos de una categoría.
type CategoryReport struct {
	Category string            `json:"category"`
	Products []ProductResponse `json:"products"`
}

// ExpiredReportResponse reporte de vencidos agrupado por categoría.
type ExpiredReportResponse struct {
	Date       string           `json:"date"`
	Count      int              `json:"count"`
	Categories []CategoryReport `json:"categories"`
}
