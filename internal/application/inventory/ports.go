package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/stockalert-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para altas de producto con stock inicial y registro de ventas.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		levelRepo repository.InventoryLevelRepository,
		saleRepo repository.SaleRepository,
	) error) error
}

// Observer recibe el resultado de cada cálculo de alertas (métricas).
// outcome: ok, invalid_argument, not_found, precondition, data_source, error.
type Observer interface {
	ComputationFinished(outcome string, alerts int, elapsed time.Duration)
}

type nopObserver struct{}

func (nopObserver) ComputationFinished(string, int, time.Duration) {}
