package dto

import "time"

// CreateSupplierRequest entrada para crear un proveedor.
type CreateSupplierRequest struct {
	Name         string `json:"name"`
	ContactEmail string `json:"contact_email"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID           string    `json:"id"`
	CompanyID    string    `json:"company_id"`
	Name         string    `json:"name"`
	ContactEmail string    `json:"contact_email"`
	CreatedAt    time.Time `json:"created_at"`
}

// LinkSupplierProductRequest vínculo proveedor-producto con su tiempo de entrega.
type LinkSupplierProductRequest struct {
	ProductID    string `json:"product_id"`
	LeadTimeDays *int   `json:"lead_time_days"`
}

// SupplierProductResponse vínculo registrado.
type SupplierProductResponse struct {
	SupplierID   string `json:"supplier_id"`
	ProductID    string `json:"product_id"`
	LeadTimeDays int    `json:"lead_time_days"`
}
