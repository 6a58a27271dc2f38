package entity

import "time"

// Sale evento de venta. Append-only: no se modifica una vez registrado.
type Sale struct {
	ID          string
	CompanyID   string
	ProductID   string
	WarehouseID string
	Quantity    int64
	SoldAt      time.Time
}
