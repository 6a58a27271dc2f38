package entity

import "time"

// Company representa una organización/tenant del sistema (multi-tenant).
// Productos, bodegas, ventas y proveedores pertenecen a exactamente una empresa.
type Company struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
