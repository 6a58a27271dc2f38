package entity

import "time"

// InventoryLevel representa el stock actual de un producto en una bodega.
// Quantity puede ser negativa (backorder / sobre-compromiso).
// Existe a lo sumo un registro por par (producto, bodega).
type InventoryLevel struct {
	ProductID   string
	WarehouseID string
	Quantity    int64
	UpdatedAt   time.Time
}
