package dto

import "time"

// RecordSaleRequest body para POST /api/companies/:companyID/sales.
// SoldAt es opcional; si falta se usa el instante actual.
type RecordSaleRequest struct {
	ProductID   string     `json:"product_id"`
	WarehouseID string     `json:"warehouse_id"`
	Quantity    int64      `json:"quantity"`
	SoldAt      *time.Time `json:"sold_at,omitempty"`
}

// SaleResponse venta registrada y stock resultante en la bodega.
type SaleResponse struct {
	ID             string    `json:"id"`
	CompanyID      string    `json:"company_id"`
	ProductID      string    `json:"product_id"`
	WarehouseID    string    `json:"warehouse_id"`
	Quantity       int64     `json:"quantity"`
	SoldAt         time.Time `json:"sold_at"`
	RemainingStock int64     `json:"remaining_stock"`
}
