package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stockalert-api/internal/application/dto"
	"github.com/jhoicas/stockalert-api/internal/domain"
	"github.com/jhoicas/stockalert-api/internal/domain/entity"
	"github.com/jhoicas/stockalert-api/internal/domain/repository"
)

// RecordSaleUseCase registra ventas de forma transaccional: inserta el evento
// y descuenta la cantidad del inventario de la bodega en la misma tx.
// El stock puede quedar negativo (backorder); el motor de alertas lo reporta como urgente.
type RecordSaleUseCase struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	clock         func() time.Time
}

// NewRecordSaleUseCase construye el caso de uso.
func NewRecordSaleUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
) *RecordSaleUseCase {
	return &RecordSaleUseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		clock:         time.Now,
	}
}

// RecordSale valida la venta, verifica que producto y bodega sean de la empresa y la registra.
func (uc *RecordSaleUseCase) RecordSale(ctx context.Context, companyID string, in dto.RecordSaleRequest) (*dto.SaleResponse, error) {
	if in.ProductID == "" || in.WarehouseID == "" {
		return nil, domain.InvalidInputf("product_id y warehouse_id son obligatorios")
	}
	if in.Quantity <= 0 {
		return nil, domain.InvalidInputf("quantity debe ser mayor que cero")
	}

	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	wh, err := uc.warehouseRepo.GetByID(ctx, in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if wh == nil || wh.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}

	soldAt := uc.clock().UTC()
	if in.SoldAt != nil {
		soldAt = in.SoldAt.UTC()
	}
	sale := &entity.Sale{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		ProductID:   in.ProductID,
		WarehouseID: in.WarehouseID,
		Quantity:    in.Quantity,
		SoldAt:      soldAt,
	}

	var remaining int64
	err = uc.txRunner.Run(ctx, func(
		_ repository.ProductRepository,
		levelRepo repository.InventoryLevelRepository,
		saleRepo repository.SaleRepository,
	) error {
		if err := saleRepo.Create(ctx, sale); err != nil {
			return err
		}
		if err := levelRepo.AddQuantity(ctx, sale.ProductID, sale.WarehouseID, -sale.Quantity); err != nil {
			return err
		}
		level, err := levelRepo.Get(ctx, sale.ProductID, sale.WarehouseID)
		if err != nil {
			return err
		}
		if level != nil {
			remaining = level.Quantity
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.SaleResponse{
		ID:             sale.ID,
		CompanyID:      sale.CompanyID,
		ProductID:      sale.ProductID,
		WarehouseID:    sale.WarehouseID,
		Quantity:       sale.Quantity,
		SoldAt:         sale.SoldAt,
		RemainingStock: remaining,
	}, nil
}
