// Package memory implementa los puertos de persistencia en memoria.
// Se usa en tests y en la CLI que evalúa alertas sobre un snapshot YAML.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/stockalert-api/internal/domain"
	"github.com/jhoicas/stockalert-api/internal/domain/entity"
	invdomain "github.com/jhoicas/stockalert-api/internal/domain/inventory"
	"github.com/jhoicas/stockalert-api/internal/domain/repository"
)

var (
	_ repository.CompanyRepository        = (*CompanyView)(nil)
	_ repository.WarehouseRepository      = (*WarehouseView)(nil)
	_ repository.ProductRepository        = (*ProductView)(nil)
	_ repository.InventoryLevelRepository = (*LevelView)(nil)
	_ repository.SaleRepository           = (*SaleView)(nil)
	_ repository.SupplierRepository       = (*SupplierView)(nil)
)

// Store guarda todas las entidades en slices; el orden de inserción es el orden de iteración.
// Seguro para lecturas concurrentes.
type Store struct {
	mu sync.RWMutex
	state
}

type state struct {
	companies  []entity.Company
	warehouses []entity.Warehouse
	products   []entity.Product
	levels     []entity.InventoryLevel
	sales      []entity.Sale
	suppliers  []entity.Supplier
	links      []entity.SupplierProduct
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{}
}

func (s state) clone() state {
	return state{
		companies:  append([]entity.Company(nil), s.companies...),
		warehouses: append([]entity.Warehouse(nil), s.warehouses...),
		products:   append([]entity.Product(nil), s.products...),
		levels:     append([]entity.InventoryLevel(nil), s.levels...),
		sales:      append([]entity.Sale(nil), s.sales...),
		suppliers:  append([]entity.Supplier(nil), s.suppliers...),
		links:      append([]entity.SupplierProduct(nil), s.links...),
	}
}

// Los repositorios comparten nombres de método (Create, GetByID),
// por eso se exponen como vistas tipadas sobre el mismo Store.

// Companies vista del Store que implementa CompanyRepository.
func (s *Store) Companies() *CompanyView { return &CompanyView{s: s} }

// Warehouses vista del Store que implementa WarehouseRepository.
func (s *Store) Warehouses() *WarehouseView { return &WarehouseView{s: s} }

// Products vista del Store que implementa ProductRepository.
func (s *Store) Products() *ProductView { return &ProductView{s: s} }

// Suppliers vista del Store que implementa SupplierRepository.
func (s *Store) Suppliers() *SupplierView { return &SupplierView{s: s} }

// Levels vista del Store que implementa InventoryLevelRepository.
func (s *Store) Levels() *LevelView { return &LevelView{s: s} }

// Sales vista del Store que implementa SaleRepository.
func (s *Store) Sales() *SaleView { return &SaleView{s: s} }

// ── Companies ────────────────────────────────────────────────────────────────

// CompanyView implementación en memoria de CompanyRepository.
type CompanyView struct{ s *Store }

func (v *CompanyView) Create(_ context.Context, company *entity.Company) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	for _, c := range v.s.companies {
		if c.ID == company.ID {
			return domain.ErrDuplicate
		}
	}
	v.s.companies = append(v.s.companies, *company)
	return nil
}

func (v *CompanyView) GetByID(_ context.Context, id string) (*entity.Company, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	for _, c := range v.s.companies {
		if c.ID == id {
			out := c
			return &out, nil
		}
	}
	return nil, nil
}

// ── Warehouses ───────────────────────────────────────────────────────────────

// WarehouseView implementación en memoria de WarehouseRepository.
type WarehouseView struct{ s *Store }

func (v *WarehouseView) Create(_ context.Context, w *entity.Warehouse) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	for _, x := range v.s.warehouses {
		if x.ID == w.ID {
			return domain.ErrDuplicate
		}
	}
	v.s.warehouses = append(v.s.warehouses, *w)
	return nil
}

func (v *WarehouseView) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	if w := v.s.warehouse(id); w != nil {
		out := *w
		return &out, nil
	}
	return nil, nil
}

func (v *WarehouseView) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Warehouse, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	var list []*entity.Warehouse
	skipped := 0
	for _, w := range v.s.warehouses {
		if w.CompanyID != companyID {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		if limit > 0 && len(list) >= limit {
			break
		}
		out := w
		list = append(list, &out)
	}
	return list, nil
}

// ── Products ─────────────────────────────────────────────────────────────────

// ProductView implementación en memoria de ProductRepository.
type ProductView struct{ s *Store }

func (v *ProductView) Create(_ context.Context, p *entity.Product) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	for _, x := range v.s.products {
		if x.ID == p.ID || (x.CompanyID == p.CompanyID && x.SKU == p.SKU) {
			return domain.ErrDuplicate
		}
	}
	v.s.products = append(v.s.products, *p)
	return nil
}

func (v *ProductView) GetByID(_ context.Context, id string) (*entity.Product, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	if p := v.s.product(id); p != nil {
		out := *p
		return &out, nil
	}
	return nil, nil
}

func (v *ProductView) GetByCompanyAndSKU(_ context.Context, companyID, sku string) (*entity.Product, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	for _, p := range v.s.products {
		if p.CompanyID == companyID && p.SKU == sku {
			out := p
			return &out, nil
		}
	}
	return nil, nil
}

// ── Inventory levels ─────────────────────────────────────────────────────────

// LevelView implementación en memoria de InventoryLevelRepository.
type LevelView struct{ s *Store }

func (v *LevelView) Get(_ context.Context, productID, warehouseID string) (*entity.InventoryLevel, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	for _, l := range v.s.levels {
		if l.ProductID == productID && l.WarehouseID == warehouseID {
			out := l
			return &out, nil
		}
	}
	return nil, nil
}

func (v *LevelView) AddQuantity(_ context.Context, productID, warehouseID string, delta int64) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	now := time.Now().UTC()
	for i := range v.s.levels {
		l := &v.s.levels[i]
		if l.ProductID == productID && l.WarehouseID == warehouseID {
			l.Quantity += delta
			l.UpdatedAt = now
			return nil
		}
	}
	v.s.levels = append(v.s.levels, entity.InventoryLevel{
		ProductID: productID, WarehouseID: warehouseID, Quantity: delta, UpdatedAt: now,
	})
	return nil
}

func (v *LevelView) ListWithProductAndWarehouse(_ context.Context, companyID string) ([]repository.InventoryRow, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	rows := make([]repository.InventoryRow, 0, len(v.s.levels))
	for _, l := range v.s.levels {
		p := v.s.product(l.ProductID)
		w := v.s.warehouse(l.WarehouseID)
		if p == nil || w == nil || p.CompanyID != companyID || w.CompanyID != companyID {
			continue
		}
		rows = append(rows, repository.InventoryRow{Level: l, Product: *p, Warehouse: *w})
	}
	return rows, nil
}

// ── Sales ────────────────────────────────────────────────────────────────────

// SaleView implementación en memoria de SaleRepository.
type SaleView struct{ s *Store }

func (v *SaleView) Create(_ context.Context, sale *entity.Sale) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	v.s.sales = append(v.s.sales, *sale)
	return nil
}

func (v *SaleView) CountBetween(_ context.Context, productID, companyID string, since, until time.Time) (int64, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	var n int64
	for _, sale := range v.s.sales {
		if inWindow(sale, productID, companyID, since, until) {
			n++
		}
	}
	return n, nil
}

func (v *SaleView) SumQuantityBetween(_ context.Context, productID, companyID string, since, until time.Time) (repository.SaleTotals, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	var t repository.SaleTotals
	for _, sale := range v.s.sales {
		if !inWindow(sale, productID, companyID, since, until) {
			continue
		}
		t.Quantity += sale.Quantity
		if sale.Quantity < 0 {
			t.NegativeLines++
		}
	}
	return t, nil
}

func inWindow(sale entity.Sale, productID, companyID string, since, until time.Time) bool {
	return sale.ProductID == productID &&
		sale.CompanyID == companyID &&
		!sale.SoldAt.Before(since) &&
		sale.SoldAt.Before(until)
}

// ── Suppliers ────────────────────────────────────────────────────────────────

// SupplierView implementación en memoria de SupplierRepository.
type SupplierView struct{ s *Store }

func (v *SupplierView) Create(_ context.Context, sup *entity.Supplier) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	for _, x := range v.s.suppliers {
		if x.ID == sup.ID {
			return domain.ErrDuplicate
		}
	}
	v.s.suppliers = append(v.s.suppliers, *sup)
	return nil
}

func (v *SupplierView) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	if sup := v.s.supplier(id); sup != nil {
		out := *sup
		return &out, nil
	}
	return nil, nil
}

// LinkProduct crea el vínculo o actualiza su lead time si ya existe.
func (v *SupplierView) LinkProduct(_ context.Context, link *entity.SupplierProduct) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	for i := range v.s.links {
		if v.s.links[i].SupplierID == link.SupplierID && v.s.links[i].ProductID == link.ProductID {
			v.s.links[i].LeadTimeDays = link.LeadTimeDays
			return nil
		}
	}
	v.s.links = append(v.s.links, *link)
	return nil
}

func (v *SupplierView) FindShortestLeadTime(_ context.Context, productID, companyID string) (*repository.SupplierCandidate, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	var candidates []repository.SupplierCandidate
	for _, l := range v.s.links {
		if l.ProductID != productID {
			continue
		}
		sup := v.s.supplier(l.SupplierID)
		if sup == nil || sup.CompanyID != companyID {
			continue
		}
		candidates = append(candidates, repository.SupplierCandidate{Supplier: *sup, LeadTimeDays: l.LeadTimeDays})
	}
	return invdomain.PickPreferredSupplier(candidates), nil
}

// ── Lookups (requieren el lock tomado) ───────────────────────────────────────

func (s *state) product(id string) *entity.Product {
	for i := range s.products {
		if s.products[i].ID == id {
			return &s.products[i]
		}
	}
	return nil
}

func (s *state) warehouse(id string) *entity.Warehouse {
	for i := range s.warehouses {
		if s.warehouses[i].ID == id {
			return &s.warehouses[i]
		}
	}
	return nil
}

func (s *state) supplier(id string) *entity.Supplier {
	for i := range s.suppliers {
		if s.suppliers[i].ID == id {
			return &s.suppliers[i]
		}
	}
	return nil
}
