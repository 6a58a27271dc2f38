package postgres

import (
	"context"

	"github.com/jhoicas/stockalert-api/internal/domain/entity"
	"github.com/jhoicas/stockalert-api/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo implementación de SupplierRepository sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador de proveedores.
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	query := `
		INSERT INTO suppliers (id, company_id, name, contact_email, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, s.ID, s.CompanyID, s.Name, s.ContactEmail, s.CreatedAt)
	return wrapErr("insert supplier", err)
}

func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	query := `SELECT id, company_id, name, contact_email, created_at FROM suppliers WHERE id = $1`
	var s entity.Supplier
	err := r.q.QueryRow(ctx, query, id).Scan(&s.ID, &s.CompanyID, &s.Name, &s.ContactEmail, &s.CreatedAt)
	if err != nil {
		if isMissing(err) {
			return nil, nil
		}
		return nil, wrapErr("get supplier", err)
	}
	return &s, nil
}

// LinkProduct crea el vínculo o actualiza su lead time.
func (r *SupplierRepo) LinkProduct(ctx context.Context, link *entity.SupplierProduct) error {
	query := `
		INSERT INTO supplier_products (supplier_id, product_id, lead_time_days)
		VALUES ($1, $2, $3)
		ON CONFLICT (supplier_id, product_id)
		DO UPDATE SET lead_time_days = EXCLUDED.lead_time_days`
	_, err := r.q.Exec(ctx, query, link.SupplierID, link.ProductID, link.LeadTimeDays)
	return wrapErr("link supplier product", err)
}

func (r *SupplierRepo) FindShortestLeadTime(ctx context.Context, productID, companyID string) (*repository.SupplierCandidate, error) {
	query := `
		SELECT s.id, s.company_id, s.name, s.contact_email, s.created_at, sp.lead_time_days
		FROM supplier_products sp
		JOIN suppliers s ON s.id = sp.supplier_id
		WHERE sp.product_id = $1 AND s.company_id = $2
		ORDER BY sp.lead_time_days ASC, s.id ASC
		LIMIT 1`
	var c repository.SupplierCandidate
	s := &c.Supplier
	err := r.q.QueryRow(ctx, query, productID, companyID).Scan(
		&s.ID, &s.CompanyID, &s.Name, &s.ContactEmail, &s.CreatedAt, &c.LeadTimeDays,
	)
	if err != nil {
		if isMissing(err) {
			return nil, nil
		}
		return nil, wrapErr("find preferred supplier", err)
	}
	return &c, nil
}
