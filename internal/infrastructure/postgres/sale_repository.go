package postgres

import (
	"context"
	"time"

	"github.com/jhoicas/stockalert-api/internal/domain/entity"
	"github.com/jhoicas/stockalert-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre PostgreSQL. Las ventanas son [since, until).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de ventas.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	query := `
		INSERT INTO sales (id, company_id, product_id, warehouse_id, quantity, sold_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, s.ID, s.CompanyID, s.ProductID, s.WarehouseID, s.Quantity, s.SoldAt)
	return wrapErr("insert sale", err)
}

func (r *SaleRepo) CountBetween(ctx context.Context, productID, companyID string, since, until time.Time) (int64, error) {
	query := `
		SELECT COUNT(*) FROM sales
		WHERE product_id = $1 AND company_id = $2 AND sold_at >= $3 AND sold_at < $4`
	var n int64
	if err := r.q.QueryRow(ctx, query, productID, companyID, since, until).Scan(&n); err != nil {
		return 0, wrapErr("count sales", err)
	}
	return n, nil
}

func (r *SaleRepo) SumQuantityBetween(ctx context.Context, productID, companyID string, since, until time.Time) (repository.SaleTotals, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0)::bigint,
		       COUNT(*) FILTER (WHERE quantity < 0)
		FROM sales
		WHERE product_id = $1 AND company_id = $2 AND sold_at >= $3 AND sold_at < $4`
	var t repository.SaleTotals
	if err := r.q.QueryRow(ctx, query, productID, companyID, since, until).Scan(&t.Quantity, &t.NegativeLines); err != nil {
		return repository.SaleTotals{}, wrapErr("sum sales", err)
	}
	return t, nil
}
