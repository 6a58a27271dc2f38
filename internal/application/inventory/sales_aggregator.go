package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/stockalert-api/internal/domain"
	"github.com/jhoicas/stockalert-api/internal/domain/repository"
)

// SalesAggregator resume el historial de ventas de un producto dentro de una empresa.
// Ambas ventanas son semiabiertas [since, now); now lo fija el llamador una vez por cálculo.
type SalesAggregator struct {
	sales repository.SaleRepository
}

// NewSalesAggregator construye el agregador sobre el puerto de ventas.
func NewSalesAggregator(sales repository.SaleRepository) *SalesAggregator {
	return &SalesAggregator{sales: sales}
}

// RecentActivityCount cuenta eventos de venta del producto en [since, now).
func (a *SalesAggregator) RecentActivityCount(ctx context.Context, productID, companyID string, since, now time.Time) (int64, error) {
	n, err := a.sales.CountBetween(ctx, productID, companyID, since, now)
	if err != nil {
		return 0, fmt.Errorf("contar ventas recientes de %s: %w", productID, err)
	}
	return n, nil
}

// TotalSoldSince suma las cantidades vendidas en [since, now). Sin ventas devuelve 0.
// Cantidades negativas en origen son una violación de precondición.
func (a *SalesAggregator) TotalSoldSince(ctx context.Context, productID, companyID string, since, now time.Time) (int64, error) {
	totals, err := a.sales.SumQuantityBetween(ctx, productID, companyID, since, now)
	if err != nil {
		return 0, fmt.Errorf("sumar ventas de %s: %w", productID, err)
	}
	if totals.NegativeLines > 0 || totals.Quantity < 0 {
		return 0, domain.Preconditionf("producto %s tiene %d ventas con cantidad negativa", productID, totals.NegativeLines)
	}
	return totals.Quantity, nil
}
