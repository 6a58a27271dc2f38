package postgres

import (
	"context"

	"github.com/jhoicas/stockalert-api/internal/domain/entity"
	"github.com/jhoicas/stockalert-api/internal/domain/repository"
)

var _ repository.InventoryLevelRepository = (*InventoryLevelRepo)(nil)

// InventoryLevelRepo implementación de InventoryLevelRepository sobre PostgreSQL.
type InventoryLevelRepo struct {
	q Querier
}

// NewInventoryLevelRepository construye el adaptador. Acepta pool o tx (Querier).
func NewInventoryLevelRepository(q Querier) *InventoryLevelRepo {
	return &InventoryLevelRepo{q: q}
}

func (r *InventoryLevelRepo) Get(ctx context.Context, productID, warehouseID string) (*entity.InventoryLevel, error) {
	query := `
		SELECT product_id, warehouse_id, quantity, updated_at
		FROM inventory_levels
		WHERE product_id = $1 AND warehouse_id = $2`
	var l entity.InventoryLevel
	err := r.q.QueryRow(ctx, query, productID, warehouseID).Scan(&l.ProductID, &l.WarehouseID, &l.Quantity, &l.UpdatedAt)
	if err != nil {
		if isMissing(err) {
			return nil, nil
		}
		return nil, wrapErr("get inventory level", err)
	}
	return &l, nil
}

// AddQuantity suma delta (puede ser negativo) creando la fila si no existe.
func (r *InventoryLevelRepo) AddQuantity(ctx context.Context, productID, warehouseID string, delta int64) error {
	query := `
		INSERT INTO inventory_levels (product_id, warehouse_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (product_id, warehouse_id)
		DO UPDATE SET quantity = inventory_levels.quantity + EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(ctx, query, productID, warehouseID, delta)
	return wrapErr("add inventory quantity", err)
}

// ListWithProductAndWarehouse devuelve el inventario de la empresa con producto y bodega.
// Ambos lados del join se filtran por empresa: un par cruzado nunca aparece.
func (r *InventoryLevelRepo) ListWithProductAndWarehouse(ctx context.Context, companyID string) ([]repository.InventoryRow, error) {
	query := `
		SELECT il.product_id, il.warehouse_id, il.quantity, il.updated_at,
		       p.id, p.company_id, p.sku, p.name, p.price, p.product_type_id, p.low_stock_threshold,
		       p.created_at, p.updated_at,
		       w.id, w.company_id, w.name, w.address, w.created_at, w.updated_at
		FROM inventory_levels il
		JOIN products p   ON p.id = il.product_id
		JOIN warehouses w ON w.id = il.warehouse_id
		WHERE p.company_id = $1 AND w.company_id = $1
		ORDER BY il.created_at, il.product_id, il.warehouse_id`
	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, wrapErr("list inventory", err)
	}
	defer rows.Close()

	list := make([]repository.InventoryRow, 0)
	for rows.Next() {
		var row repository.InventoryRow
		l, p, w := &row.Level, &row.Product, &row.Warehouse
		if err := rows.Scan(
			&l.ProductID, &l.WarehouseID, &l.Quantity, &l.UpdatedAt,
			&p.ID, &p.CompanyID, &p.SKU, &p.Name, &p.Price, &p.ProductTypeID, &p.LowStockThreshold,
			&p.CreatedAt, &p.UpdatedAt,
			&w.ID, &w.CompanyID, &w.Name, &w.Address, &w.CreatedAt, &w.UpdatedAt,
		); err != nil {
			return nil, wrapErr("scan inventory row", err)
		}
		list = append(list, row)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("list inventory", err)
	}
	return list, nil
}
