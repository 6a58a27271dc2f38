package repository

import (
	"context"

	"github.com/jhoicas/stockalert-api/internal/domain/entity"
)

// SupplierCandidate proveedor junto al lead time de su vínculo con un producto.
type SupplierCandidate struct {
	Supplier     entity.Supplier
	LeadTimeDays int
}

// SupplierRepository define el puerto de persistencia para proveedores y sus vínculos.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
	LinkProduct(ctx context.Context, link *entity.SupplierProduct) error

	// FindShortestLeadTime devuelve el proveedor de la empresa con menor lead time para el producto.
	// Desempate: supplier id ascendente. (nil, nil) si no hay vínculos.
	FindShortestLeadTime(ctx context.Context, productID, companyID string) (*SupplierCandidate, error)
}
