package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del inventario (multi-bodega).
// El stock se maneja por bodega en InventoryLevel.
type Product struct {
	ID        string
	CompanyID string
	SKU       string // código único por empresa
	Name      string
	Price     decimal.Decimal

	// ProductTypeID clasificación opcional; define el umbral por defecto si no hay override.
	ProductTypeID *int
	// LowStockThreshold override explícito. nil = sin override; 0 es un override válido.
	LowStockThreshold *int64

	CreatedAt time.Time
	UpdatedAt time.Time
}
