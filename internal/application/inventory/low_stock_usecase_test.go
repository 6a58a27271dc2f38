package inventory_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockalert-api/internal/application/dto"
	appinventory "github.com/jhoicas/stockalert-api/internal/application/inventory"
	"github.com/jhoicas/stockalert-api/internal/domain"
	"github.com/jhoicas/stockalert-api/internal/domain/entity"
	invdomain "github.com/jhoicas/stockalert-api/internal/domain/inventory"
	"github.com/jhoicas/stockalert-api/internal/domain/repository"
	"github.com/jhoicas/stockalert-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: empresa c1 con bodega w1, otra empresa c2 con bodega w2.
// Reloj fijo en fixedNow.
// ──────────────────────────────────────────────────────────────────────────────

var fixedNow = time.Date(2026, 6, 30, 12, 0, 0, 0, time.UTC)

type fixture struct {
	t     *testing.T
	store *memory.Store
	ctx   context.Context
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{t: t, store: memory.NewStore(), ctx: context.Background()}
	require.NoError(t, f.store.Companies().Create(f.ctx, &entity.Company{ID: "c1", Name: "Acme"}))
	require.NoError(t, f.store.Companies().Create(f.ctx, &entity.Company{ID: "c2", Name: "Otra"}))
	require.NoError(t, f.store.Warehouses().Create(f.ctx, &entity.Warehouse{ID: "w1", CompanyID: "c1", Name: "Central"}))
	require.NoError(t, f.store.Warehouses().Create(f.ctx, &entity.Warehouse{ID: "w2", CompanyID: "c2", Name: "Ajena"}))
	return f
}

func intPtr(v int) *int     { return &v }
func i64Ptr(v int64) *int64 { return &v }

func (f *fixture) product(id string, typeID *int, override *int64) {
	f.t.Helper()
	require.NoError(f.t, f.store.Products().Create(f.ctx, &entity.Product{
		ID: id, CompanyID: "c1", Name: "Producto " + id, SKU: "SKU-" + id,
		ProductTypeID: typeID, LowStockThreshold: override,
	}))
}

func (f *fixture) stock(productID, warehouseID string, qty int64) {
	f.t.Helper()
	require.NoError(f.t, f.store.Levels().AddQuantity(f.ctx, productID, warehouseID, qty))
}

func (f *fixture) sale(productID string, qty int64, daysAgo int) {
	f.t.Helper()
	require.NoError(f.t, f.store.Sales().Create(f.ctx, &entity.Sale{
		ID: fmt.Sprintf("%s-%d-%d", productID, qty, daysAgo), CompanyID: "c1", ProductID: productID,
		WarehouseID: "w1", Quantity: qty, SoldAt: fixedNow.Add(-time.Duration(daysAgo) * 24 * time.Hour),
	}))
}

func (f *fixture) supplier(id string, lead int, productID string) {
	f.t.Helper()
	require.NoError(f.t, f.store.Suppliers().Create(f.ctx, &entity.Supplier{ID: id, CompanyID: "c1", Name: "Prov " + id, ContactEmail: id + "@x.co"}))
	require.NoError(f.t, f.store.Suppliers().LinkProduct(f.ctx, &entity.SupplierProduct{SupplierID: id, ProductID: productID, LeadTimeDays: lead}))
}

func (f *fixture) useCase(cfg appinventory.LowStockConfig, opts ...appinventory.Option) *appinventory.LowStockUseCase {
	opts = append([]appinventory.Option{appinventory.WithClock(func() time.Time { return fixedNow })}, opts...)
	return appinventory.NewLowStockUseCase(
		f.store.Companies(), f.store.Levels(), f.store.Sales(), f.store.Suppliers(), cfg, opts...,
	)
}

func defaultCfg() appinventory.LowStockConfig {
	return appinventory.LowStockConfig{
		Thresholds: invdomain.ThresholdPolicy{ByType: map[int]int64{1: 10}, Fallback: 5},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Propiedades del motor
// ──────────────────────────────────────────────────────────────────────────────

func TestComputeAlerts_StockNegativoSiempreAlerta(t *testing.T) {
	f := newFixture(t)
	f.product("p1", nil, i64Ptr(0)) // umbral 0: nunca estaría "bajo" por la vía normal
	f.stock("p1", "w1", -4)
	f.supplier("s1", 2, "p1") // aun con proveedor, el backorder no lo sugiere

	out, err := f.useCase(defaultCfg()).ComputeAlerts(f.ctx, "c1", dto.LowStockQuery{})
	require.NoError(t, err)
	require.Equal(t, 1, out.TotalAlerts)

	a := out.Alerts[0]
	assert.Equal(t, int64(-4), a.CurrentStock)
	assert.Equal(t, int64(0), a.Threshold)
	require.NotNil(t, a.DaysUntilStockout)
	assert.Equal(t, int64(0), *a.DaysUntilStockout)
	assert.Nil(t, a.Supplier)
}

func TestComputeAlerts_StockSobreUmbralNoAlerta(t *testing.T) {
	f := newFixture(t)
	f.product("p1", intPtr(1), nil) // umbral 10
	f.stock("p1", "w1", 10)
	f.sale("p1", 50, 1)

	out, err := f.useCase(defaultCfg()).ComputeAlerts(f.ctx, "c1", dto.LowStockQuery{})
	require.NoError(t, err)
	assert.Equal(t, 0, out.TotalAlerts)
	assert.NotNil(t, out.Alerts, "la lista vacía se serializa como [] y no null")
}

func TestComputeAlerts_SinVentasRecientesNoAlerta(t *testing.T) {
	f := newFixture(t)
	f.product("p1", nil, nil) // fallback 5
	f.stock("p1", "w1", 3)
	f.sale("p1", 9, 120) // fuera de la ventana de 90 días

	out, err := f.useCase(defaultCfg()).ComputeAlerts(f.ctx, "c1", dto.LowStockQuery{})
	require.NoError(t, err)
	assert.Equal(t, 0, out.TotalAlerts)
}

func TestComputeAlerts_TipoNoMapeadoUsaFallback(t *testing.T) {
	f := newFixture(t)
	f.product("p1", intPtr(7), nil) // tipo sin mapeo → fallback 5
	f.stock("p1", "w1", 3)
	f.sale("p1", 90, 10)

	out, err := f.useCase(defaultCfg()).ComputeAlerts(f.ctx, "c1", dto.LowStockQuery{})
	require.NoError(t, err)
	require.Equal(t, 1, out.TotalAlerts)
	assert.Equal(t, int64(5), out.Alerts[0].Threshold)
	require.NotNil(t, out.Alerts[0].DaysUntilStockout)
	assert.Equal(t, int64(3), *out.Alerts[0].DaysUntilStockout)
}

func TestComputeAlerts_PronosticoDesconocidoConVentanasDistintas(t *testing.T) {
	f := newFixture(t)
	f.product("p1", nil, i64Ptr(20))
	f.stock("p1", "w1", 12)
	f.sale("p1", 0, 5) // dos eventos recientes con cantidad 0
	f.sale("p1", 0, 6)

	out, err := f.useCase(defaultCfg()).ComputeAlerts(f.ctx, "c1", dto.LowStockQuery{})
	require.NoError(t, err)
	require.Equal(t, 1, out.TotalAlerts)
	assert.Nil(t, out.Alerts[0].DaysUntilStockout, "avgDailySales == 0 → desconocido")

	// Actividad reciente en 30 días, pero el lookback de 3 días no tiene ventas
	f2 := newFixture(t)
	f2.product("p1", nil, i64Ptr(20))
	f2.stock("p1", "w1", 12)
	f2.sale("p1", 40, 10)
	recent, lookback := 30, 3
	out, err = f2.useCase(defaultCfg()).ComputeAlerts(f2.ctx, "c1", dto.LowStockQuery{RecentDays: &recent, LookbackDays: &lookback})
	require.NoError(t, err)
	require.Equal(t, 1, out.TotalAlerts)
	assert.Nil(t, out.Alerts[0].DaysUntilStockout)
	assert.Equal(t, 30, out.RecentDays)
	assert.Equal(t, 3, out.LookbackDays)
}

func TestComputeAlerts_PronosticoYProveedor(t *testing.T) {
	f := newFixture(t)
	f.product("p1", nil, i64Ptr(20))
	f.stock("p1", "w1", 15)
	f.sale("p1", 60, 3)
	f.sale("p1", 30, 45) // total 90 en 90 días → 1/día
	f.supplier("s-lento", 9, "p1")
	f.supplier("s-b", 2, "p1")
	f.supplier("s-a", 2, "p1")

	out, err := f.useCase(defaultCfg()).ComputeAlerts(f.ctx, "c1", dto.LowStockQuery{})
	require.NoError(t, err)
	require.Equal(t, 1, out.TotalAlerts)

	a := out.Alerts[0]
	assert.Equal(t, "p1", a.ProductID)
	assert.Equal(t, "Producto p1", a.ProductName)
	assert.Equal(t, "SKU-p1", a.SKU)
	assert.Equal(t, "w1", a.WarehouseID)
	assert.Equal(t, "Central", a.WarehouseName)
	require.NotNil(t, a.DaysUntilStockout)
	assert.Equal(t, int64(15), *a.DaysUntilStockout)
	require.NotNil(t, a.Supplier)
	assert.Equal(t, "s-a", a.Supplier.ID, "menor lead time; empate por id ascendente")
	assert.Equal(t, 2, a.Supplier.LeadTimeDays)
	assert.Equal(t, "s-a@x.co", a.Supplier.ContactEmail)
}

func TestComputeAlerts_ExcluyeBodegasDeOtraEmpresa(t *testing.T) {
	f := newFixture(t)
	f.product("p1", nil, nil)
	f.stock("p1", "w2", -10) // bodega de c2: par cruzado

	out, err := f.useCase(defaultCfg()).ComputeAlerts(f.ctx, "c1", dto.LowStockQuery{})
	require.NoError(t, err)
	assert.Equal(t, 0, out.TotalAlerts)
}

func TestComputeAlerts_OrdenDeLaFuente(t *testing.T) {
	f := newFixture(t)
	for _, id := range []string{"pc", "pa", "pb"} {
		f.product(id, nil, nil)
		f.stock(id, "w1", -1)
	}
	out, err := f.useCase(defaultCfg()).ComputeAlerts(f.ctx, "c1", dto.LowStockQuery{})
	require.NoError(t, err)
	require.Len(t, out.Alerts, 3)
	assert.Equal(t, []string{"pc", "pa", "pb"},
		[]string{out.Alerts[0].ProductID, out.Alerts[1].ProductID, out.Alerts[2].ProductID})
}

func TestComputeAlerts_Idempotente(t *testing.T) {
	f := newFixture(t)
	f.product("p1", nil, nil)
	f.stock("p1", "w1", 2)
	f.sale("p1", 9, 1)
	f.supplier("s1", 3, "p1")
	f.product("p2", nil, nil)
	f.stock("p2", "w1", -1)

	uc := f.useCase(defaultCfg())
	first, err := uc.ComputeAlerts(f.ctx, "c1", dto.LowStockQuery{})
	require.NoError(t, err)
	second, err := uc.ComputeAlerts(f.ctx, "c1", dto.LowStockQuery{})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestComputeAlerts_ConcurrenciaIndependiente(t *testing.T) {
	f := newFixture(t)
	f.product("p1", nil, nil)
	f.stock("p1", "w1", 2)
	f.sale("p1", 9, 1)
	uc := f.useCase(defaultCfg())

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := uc.ComputeAlerts(f.ctx, "c1", dto.LowStockQuery{})
			if err == nil && out.TotalAlerts != 1 {
				err = fmt.Errorf("esperaba 1 alerta, obtuve %d", out.TotalAlerts)
			}
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Errores
// ──────────────────────────────────────────────────────────────────────────────

// countingLevels cuenta lecturas de inventario para verificar que no hubo acceso a datos.
type countingLevels struct {
	repository.InventoryLevelRepository
	calls int
}

func (c *countingLevels) ListWithProductAndWarehouse(ctx context.Context, companyID string) ([]repository.InventoryRow, error) {
	c.calls++
	return c.InventoryLevelRepository.ListWithProductAndWarehouse(ctx, companyID)
}

func TestComputeAlerts_EmpresaInexistente(t *testing.T) {
	f := newFixture(t)
	levels := &countingLevels{InventoryLevelRepository: f.store.Levels()}
	uc := appinventory.NewLowStockUseCase(f.store.Companies(), levels, f.store.Sales(), f.store.Suppliers(), defaultCfg())

	out, err := uc.ComputeAlerts(f.ctx, "no-existe", dto.LowStockQuery{})
	assert.Nil(t, out)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, levels.calls, "no se lee inventario si la empresa no existe")
}

// countingCompanies cuenta consultas de empresa.
type countingCompanies struct {
	repository.CompanyRepository
	calls int
}

func (c *countingCompanies) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	c.calls++
	return c.CompanyRepository.GetByID(ctx, id)
}

func TestComputeAlerts_VentanasInvalidas(t *testing.T) {
	f := newFixture(t)
	companies := &countingCompanies{CompanyRepository: f.store.Companies()}
	uc := appinventory.NewLowStockUseCase(companies, f.store.Levels(), f.store.Sales(), f.store.Suppliers(), defaultCfg())

	for _, v := range []int{0, -5} {
		v := v
		_, err := uc.ComputeAlerts(f.ctx, "c1", dto.LowStockQuery{RecentDays: &v})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		_, err = uc.ComputeAlerts(f.ctx, "c1", dto.LowStockQuery{LookbackDays: &v})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	assert.Zero(t, companies.calls, "la validación ocurre antes de cualquier acceso a datos")
}

// Ventanas positivas muy grandes siguen siendo válidas: cubren toda la historia
// y nunca terminan en una ventana vacía.
func TestComputeAlerts_VentanaGrande(t *testing.T) {
	f := newFixture(t)
	f.product("p1", nil, i64Ptr(10))
	f.stock("p1", "w1", 3)
	f.sale("p1", 1, 1)
	f.sale("p1", 1, 1000) // fuera de la ventana por defecto de 90 días

	cases := []struct {
		name string
		cfg  appinventory.LowStockConfig
		q    dto.LowStockQuery
		days int64
	}{
		{"reciente 200000", defaultCfg(), dto.LowStockQuery{RecentDays: intPtr(200000)}, 270},
		{"reciente MaxInt", defaultCfg(), dto.LowStockQuery{RecentDays: intPtr(math.MaxInt)}, 270},
		{"lookback 200000", defaultCfg(), dto.LowStockQuery{LookbackDays: intPtr(200000)}, 300000},
		{"lookback MaxInt satura", defaultCfg(), dto.LowStockQuery{LookbackDays: intPtr(math.MaxInt)}, invdomain.MaxStockoutDays},
		{"reciente por configuración", func() appinventory.LowStockConfig {
			cfg := defaultCfg()
			cfg.DefaultRecentDays = 200000
			return cfg
		}(), dto.LowStockQuery{}, 270},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := f.useCase(tc.cfg).ComputeAlerts(f.ctx, "c1", tc.q)
			require.NoError(t, err)
			require.Equal(t, 1, out.TotalAlerts, "la alerta no debe perderse con una ventana grande")
			require.NotNil(t, out.Alerts[0].DaysUntilStockout, "el pronóstico no debe quedar desconocido")
			assert.Equal(t, tc.days, *out.Alerts[0].DaysUntilStockout)
		})
	}
}

func TestComputeAlerts_VentaNegativaEsPrecondicion(t *testing.T) {
	f := newFixture(t)
	f.product("p1", nil, nil)
	f.stock("p1", "w1", 1)
	f.sale("p1", 5, 1)
	f.sale("p1", -2, 2)

	out, err := f.useCase(defaultCfg()).ComputeAlerts(f.ctx, "c1", dto.LowStockQuery{})
	assert.Nil(t, out)
	assert.ErrorIs(t, err, domain.ErrPreconditionViolation)
}

func TestComputeAlerts_LeadTimeNegativoEsPrecondicion(t *testing.T) {
	f := newFixture(t)
	f.product("p1", nil, nil)
	f.stock("p1", "w1", 1)
	f.sale("p1", 5, 1)
	f.supplier("s1", -1, "p1")

	out, err := f.useCase(defaultCfg()).ComputeAlerts(f.ctx, "c1", dto.LowStockQuery{})
	assert.Nil(t, out)
	assert.ErrorIs(t, err, domain.ErrPreconditionViolation)
}

// failingSales simula una caída de la fuente de datos.
type failingSales struct {
	repository.SaleRepository
}

func (failingSales) CountBetween(context.Context, string, string, time.Time, time.Time) (int64, error) {
	return 0, domain.NewDataSourceError("count sales", errors.New("connection reset"))
}

type recordingObserver struct {
	outcomes []string
}

func (r *recordingObserver) ComputationFinished(outcome string, _ int, _ time.Duration) {
	r.outcomes = append(r.outcomes, outcome)
}

func TestComputeAlerts_FallaDeFuenteSinResultadoParcial(t *testing.T) {
	f := newFixture(t)
	f.product("p1", nil, nil)
	f.stock("p1", "w1", -3) // generaría una alerta antes de la falla
	f.product("p2", nil, nil)
	f.stock("p2", "w1", 1)

	obs := &recordingObserver{}
	uc := appinventory.NewLowStockUseCase(
		f.store.Companies(), f.store.Levels(), failingSales{f.store.Sales()}, f.store.Suppliers(),
		defaultCfg(), appinventory.WithObserver(obs),
	)
	out, err := uc.ComputeAlerts(f.ctx, "c1", dto.LowStockQuery{})
	assert.Nil(t, out, "todo o nada")
	assert.ErrorIs(t, err, domain.ErrDataSource)
	assert.Equal(t, []string{"data_source"}, obs.outcomes)
}

func TestComputeAlerts_ObservadorRegistraResultado(t *testing.T) {
	f := newFixture(t)
	obs := &recordingObserver{}
	uc := f.useCase(defaultCfg(), appinventory.WithObserver(obs))

	_, _ = uc.ComputeAlerts(f.ctx, "c1", dto.LowStockQuery{})
	_, _ = uc.ComputeAlerts(f.ctx, "zzz", dto.LowStockQuery{})
	bad := 0
	_, _ = uc.ComputeAlerts(f.ctx, "c1", dto.LowStockQuery{RecentDays: &bad})

	assert.Equal(t, []string{"ok", "not_found", "invalid_argument"}, obs.outcomes)
}

func TestComputeAlerts_MetadatosDelReporte(t *testing.T) {
	f := newFixture(t)
	cfg := defaultCfg()
	cfg.DefaultRecentDays = 30
	out, err := f.useCase(cfg).ComputeAlerts(f.ctx, "c1", dto.LowStockQuery{})
	require.NoError(t, err)
	assert.Equal(t, "c1", out.CompanyID)
	assert.Equal(t, fixedNow, out.GeneratedAt)
	assert.Equal(t, 30, out.RecentDays)
	assert.Equal(t, appinventory.DefaultLookbackDays, out.LookbackDays)
}
