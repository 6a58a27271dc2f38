package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stockalert-api/internal/domain/entity"
)

// SaleTotals suma de cantidades vendidas en una ventana.
// NegativeLines cuenta ventas con cantidad negativa (datos corruptos).
type SaleTotals struct {
	Quantity      int64
	NegativeLines int64
}

// SaleRepository puerto de lectura/escritura para eventos de venta (append-only).
// Las ventanas son semiabiertas [since, until).
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	CountBetween(ctx context.Context, productID, companyID string, since, until time.Time) (int64, error)
	SumQuantityBetween(ctx context.Context, productID, companyID string, since, until time.Time) (SaleTotals, error)
}
