package repository

import (
	"context"

	"github.com/jhoicas/stockalert-api/internal/domain/entity"
)

// InventoryRow fila de inventario unida a su producto y bodega.
// Producto y bodega pertenecen siempre a la misma empresa consultada.
type InventoryRow struct {
	Level     entity.InventoryLevel
	Product   entity.Product
	Warehouse entity.Warehouse
}

// InventoryLevelRepository define el puerto para consultar/actualizar stock por bodega+producto (DIP).
type InventoryLevelRepository interface {
	Get(ctx context.Context, productID, warehouseID string) (*entity.InventoryLevel, error)
	// AddQuantity suma delta al registro (producto, bodega), creándolo si no existe.
	AddQuantity(ctx context.Context, productID, warehouseID string, delta int64) error

	// ListWithProductAndWarehouse devuelve el inventario de la empresa unido a producto y bodega,
	// filtrado por empresa en ambos lados. El orden es el natural de la fuente.
	ListWithProductAndWarehouse(ctx context.Context, companyID string) ([]InventoryRow, error)
}
