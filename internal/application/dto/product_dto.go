package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// WarehouseStockInput stock inicial de un producto en una bodega.
type WarehouseStockInput struct {
	WarehouseID     string `json:"warehouse_id"`
	InitialQuantity int64  `json:"initial_quantity"`
}

// CreateProductRequest entrada para crear un producto.
// Warehouses es la forma preferida; WarehouseID + InitialQuantity se mantienen por compatibilidad.
type CreateProductRequest struct {
	SKU               string                `json:"sku"`
	Name              string                `json:"name"`
	Price             *decimal.Decimal      `json:"price"`
	ProductTypeID     *int                  `json:"product_type_id,omitempty"`
	LowStockThreshold *int64                `json:"low_stock_threshold,omitempty"`
	Warehouses        []WarehouseStockInput `json:"warehouses,omitempty"`
	WarehouseID       string                `json:"warehouse_id,omitempty"`
	InitialQuantity   int64                 `json:"initial_quantity,omitempty"`
}

// StockEntryResponse stock de un producto en una bodega.
type StockEntryResponse struct {
	WarehouseID string `json:"warehouse_id"`
	Quantity    int64  `json:"quantity"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID                string               `json:"id"`
	CompanyID         string               `json:"company_id"`
	SKU               string               `json:"sku"`
	Name              string               `json:"name"`
	Price             decimal.Decimal      `json:"price"`
	ProductTypeID     *int                 `json:"product_type_id"`
	LowStockThreshold *int64               `json:"low_stock_threshold"`
	Stock             []StockEntryResponse `json:"stock"`
	CreatedAt         time.Time            `json:"created_at"`
	UpdatedAt         time.Time            `json:"updated_at"`
}
