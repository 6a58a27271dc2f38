package entity

import "time"

// Supplier proveedor de reposición de una empresa.
type Supplier struct {
	ID           string
	CompanyID    string
	Name         string
	ContactEmail string
	CreatedAt    time.Time
}

// SupplierProduct vincula un proveedor con un producto y su tiempo de entrega en días (>= 0).
type SupplierProduct struct {
	SupplierID   string
	ProductID    string
	LeadTimeDays int
}
