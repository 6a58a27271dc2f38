package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stockalert-api/internal/application/dto"
	"github.com/jhoicas/stockalert-api/internal/application/inventory"
	"github.com/jhoicas/stockalert-api/internal/domain"
	"github.com/jhoicas/stockalert-api/internal/domain/entity"
	"github.com/jhoicas/stockalert-api/internal/domain/repository"
)

// ProductUseCase alta de productos con su stock inicial por bodega.
type ProductUseCase struct {
	txRunner   inventory.TxRunner
	companies  repository.CompanyRepository
	products   repository.ProductRepository
	warehouses repository.WarehouseRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	txRunner inventory.TxRunner,
	companies repository.CompanyRepository,
	products repository.ProductRepository,
	warehouses repository.WarehouseRepository,
) *ProductUseCase {
	return &ProductUseCase{
		txRunner:   txRunner,
		companies:  companies,
		products:   products,
		warehouses: warehouses,
	}
}

// Create crea el producto y su inventario inicial en una sola transacción.
// Errores: ErrInvalidInput (datos o bodega ajena), ErrNotFound (empresa), ErrDuplicate (SKU repetido en la empresa).
func (uc *ProductUseCase) Create(ctx context.Context, companyID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	in.SKU = strings.TrimSpace(in.SKU)
	in.Name = strings.TrimSpace(in.Name)
	if in.SKU == "" || in.Name == "" {
		return nil, domain.InvalidInputf("sku y name son obligatorios")
	}
	if in.Price == nil {
		return nil, domain.InvalidInputf("price es obligatorio")
	}
	if in.Price.IsNegative() {
		return nil, domain.InvalidInputf("price no puede ser negativo")
	}
	if in.LowStockThreshold != nil && *in.LowStockThreshold < 0 {
		return nil, domain.InvalidInputf("low_stock_threshold no puede ser negativo")
	}

	stocks := in.Warehouses
	if in.WarehouseID != "" {
		stocks = append(stocks, dto.WarehouseStockInput{WarehouseID: in.WarehouseID, InitialQuantity: in.InitialQuantity})
	}

	if err := requireCompany(ctx, uc.companies, companyID); err != nil {
		return nil, err
	}
	if err := uc.validateStocks(ctx, companyID, stocks); err != nil {
		return nil, err
	}
	existing, err := uc.products.GetByCompanyAndSKU(ctx, companyID, in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now().UTC()
	product := &entity.Product{
		ID:                uuid.New().String(),
		CompanyID:         companyID,
		SKU:               in.SKU,
		Name:              in.Name,
		Price:             in.Price.Round(2),
		ProductTypeID:     in.ProductTypeID,
		LowStockThreshold: in.LowStockThreshold,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		levelRepo repository.InventoryLevelRepository,
		_ repository.SaleRepository,
	) error {
		if err := productRepo.Create(ctx, product); err != nil {
			return err
		}
		for _, s := range stocks {
			if err := levelRepo.AddQuantity(ctx, product.ID, s.WarehouseID, s.InitialQuantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := toProductResponse(product)
	for _, s := range stocks {
		out.Stock = append(out.Stock, dto.StockEntryResponse{WarehouseID: s.WarehouseID, Quantity: s.InitialQuantity})
	}
	return out, nil
}

// validateStocks exige bodegas existentes, de la misma empresa y sin repetir; cantidades iniciales >= 0.
func (uc *ProductUseCase) validateStocks(ctx context.Context, companyID string, stocks []dto.WarehouseStockInput) error {
	seen := make(map[string]struct{}, len(stocks))
	for _, s := range stocks {
		if s.WarehouseID == "" {
			return domain.InvalidInputf("warehouse_id es obligatorio")
		}
		if _, dup := seen[s.WarehouseID]; dup {
			return domain.InvalidInputf("bodega %s repetida", s.WarehouseID)
		}
		seen[s.WarehouseID] = struct{}{}
		if s.InitialQuantity < 0 {
			return domain.InvalidInputf("initial_quantity no puede ser negativa")
		}
		wh, err := uc.warehouses.GetByID(ctx, s.WarehouseID)
		if err != nil {
			return err
		}
		if wh == nil || wh.CompanyID != companyID {
			return domain.InvalidInputf("bodega %s no existe en la empresa", s.WarehouseID)
		}
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:                p.ID,
		CompanyID:         p.CompanyID,
		SKU:               p.SKU,
		Name:              p.Name,
		Price:             p.Price,
		ProductTypeID:     p.ProductTypeID,
		LowStockThreshold: p.LowStockThreshold,
		Stock:             []dto.StockEntryResponse{},
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}
