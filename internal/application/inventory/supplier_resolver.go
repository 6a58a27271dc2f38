package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/stockalert-api/internal/domain"
	"github.com/jhoicas/stockalert-api/internal/domain/repository"
)

// SupplierResolver elige el proveedor preferido (menor lead time) de un producto.
type SupplierResolver struct {
	suppliers repository.SupplierRepository
}

// NewSupplierResolver construye el resolvedor.
func NewSupplierResolver(suppliers repository.SupplierRepository) *SupplierResolver {
	return &SupplierResolver{suppliers: suppliers}
}

// ResolvePreferredSupplier devuelve nil si el producto no tiene proveedores vinculados en la empresa.
func (r *SupplierResolver) ResolvePreferredSupplier(ctx context.Context, productID, companyID string) (*repository.SupplierCandidate, error) {
	c, err := r.suppliers.FindShortestLeadTime(ctx, productID, companyID)
	if err != nil {
		return nil, fmt.Errorf("resolver proveedor de %s: %w", productID, err)
	}
	if c == nil {
		return nil, nil
	}
	if c.LeadTimeDays < 0 {
		return nil, domain.Preconditionf("proveedor %s tiene lead time negativo (%d) para %s",
			c.Supplier.ID, c.LeadTimeDays, productID)
	}
	return c, nil
}
