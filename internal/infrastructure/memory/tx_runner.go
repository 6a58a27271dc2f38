package memory

import (
	"context"

	appinventory "github.com/jhoicas/stockalert-api/internal/application/inventory"
	"github.com/jhoicas/stockalert-api/internal/domain/repository"
)

var _ appinventory.TxRunner = (*TxRunner)(nil)

// TxRunner emula una transacción sobre el Store: si fn falla se restaura el estado previo.
// Los runs se serializan entre sí; no aísla lecturas concurrentes.
type TxRunner struct {
	store *Store
	sem   chan struct{}
}

// NewTxRunner construye el runner sobre el Store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store, sem: make(chan struct{}, 1)}
}

// Run ejecuta fn y hace rollback del Store si devuelve error.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	levelRepo repository.InventoryLevelRepository,
	saleRepo repository.SaleRepository,
) error) error {
	select {
	case r.sem <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-r.sem }()

	r.store.mu.RLock()
	saved := r.store.state.clone()
	r.store.mu.RUnlock()

	if err := fn(r.store.Products(), r.store.Levels(), r.store.Sales()); err != nil {
		r.store.mu.Lock()
		r.store.state = saved
		r.store.mu.Unlock()
		return err
	}
	return nil
}
