package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stockalert-api/internal/application/dto"
	"github.com/jhoicas/stockalert-api/internal/domain"
	"github.com/jhoicas/stockalert-api/internal/domain/entity"
	"github.com/jhoicas/stockalert-api/internal/domain/repository"
)

// SupplierUseCase alta de proveedores y vínculos proveedor-producto.
type SupplierUseCase struct {
	companies repository.CompanyRepository
	products  repository.ProductRepository
	repo      repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(
	companies repository.CompanyRepository,
	products repository.ProductRepository,
	repo repository.SupplierRepository,
) *SupplierUseCase {
	return &SupplierUseCase{companies: companies, products: products, repo: repo}
}

// Create registra un proveedor en la empresa.
func (uc *SupplierUseCase) Create(ctx context.Context, companyID string, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.InvalidInputf("name es obligatorio")
	}
	if err := requireCompany(ctx, uc.companies, companyID); err != nil {
		return nil, err
	}
	supplier := &entity.Supplier{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		Name:         name,
		ContactEmail: strings.TrimSpace(in.ContactEmail),
		CreatedAt:    time.Now().UTC(),
	}
	if err := uc.repo.Create(ctx, supplier); err != nil {
		return nil, err
	}
	return &dto.SupplierResponse{
		ID:           supplier.ID,
		CompanyID:    supplier.CompanyID,
		Name:         supplier.Name,
		ContactEmail: supplier.ContactEmail,
		CreatedAt:    supplier.CreatedAt,
	}, nil
}

// LinkProduct crea o actualiza el vínculo proveedor-producto.
// El proveedor debe ser de la empresa (ErrNotFound); el producto también (ErrInvalidInput).
func (uc *SupplierUseCase) LinkProduct(ctx context.Context, companyID, supplierID string, in dto.LinkSupplierProductRequest) (*dto.SupplierProductResponse, error) {
	if in.ProductID == "" {
		return nil, domain.InvalidInputf("product_id es obligatorio")
	}
	if in.LeadTimeDays == nil || *in.LeadTimeDays < 0 {
		return nil, domain.InvalidInputf("lead_time_days debe ser un entero >= 0")
	}
	supplier, err := uc.repo.GetByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil || supplier.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	product, err := uc.products.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.CompanyID != companyID {
		return nil, domain.InvalidInputf("producto %s no existe en la empresa", in.ProductID)
	}
	link := &entity.SupplierProduct{
		SupplierID:   supplierID,
		ProductID:    in.ProductID,
		LeadTimeDays: *in.LeadTimeDays,
	}
	if err := uc.repo.LinkProduct(ctx, link); err != nil {
		return nil, err
	}
	return &dto.SupplierProductResponse{
		SupplierID:   link.SupplierID,
		ProductID:    link.ProductID,
		LeadTimeDays: link.LeadTimeDays,
	}, nil
}
