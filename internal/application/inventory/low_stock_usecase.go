package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/stockalert-api/internal/application/dto"
	"github.com/jhoicas/stockalert-api/internal/domain"
	"github.com/jhoicas/stockalert-api/internal/domain/entity"
	invdomain "github.com/jhoicas/stockalert-api/internal/domain/inventory"
	"github.com/jhoicas/stockalert-api/internal/domain/repository"
	"github.com/jhoicas/stockalert-api/pkg/logger"
)

// Ventanas por defecto (días) para actividad reciente y lookback de ventas.
const (
	DefaultRecentDays   = 90
	DefaultLookbackDays = 90
)

// LowStockConfig política del motor de alertas. Se inyecta al construirlo.
type LowStockConfig struct {
	Thresholds          invdomain.ThresholdPolicy
	DefaultRecentDays   int
	DefaultLookbackDays int
}

// DefaultLowStockConfig configuración con los valores históricos del negocio.
func DefaultLowStockConfig() LowStockConfig {
	return LowStockConfig{
		Thresholds:          invdomain.DefaultThresholdPolicy(),
		DefaultRecentDays:   DefaultRecentDays,
		DefaultLookbackDays: DefaultLookbackDays,
	}
}

// Option personaliza el caso de uso (reloj, observador, logger).
type Option func(*LowStockUseCase)

// WithClock fija el reloj; los tests inyectan un instante fijo.
func WithClock(clock func() time.Time) Option {
	return func(uc *LowStockUseCase) { uc.clock = clock }
}

// WithObserver registra un observador de métricas.
func WithObserver(o Observer) Option {
	return func(uc *LowStockUseCase) { uc.observer = o }
}

// WithLogger asigna el logger estructurado.
func WithLogger(l *logger.Logger) Option {
	return func(uc *LowStockUseCase) { uc.log = l }
}

// LowStockUseCase motor de alertas de bajo stock con pronóstico de quiebre y proveedor sugerido.
// Es de solo lectura y no guarda estado entre llamadas: puede usarse en paralelo.
type LowStockUseCase struct {
	companies repository.CompanyRepository
	levels    repository.InventoryLevelRepository
	sales     *SalesAggregator
	suppliers *SupplierResolver
	cfg       LowStockConfig

	clock    func() time.Time
	observer Observer
	log      *logger.Logger
}

// NewLowStockUseCase construye el motor de alertas.
func NewLowStockUseCase(
	companies repository.CompanyRepository,
	levels repository.InventoryLevelRepository,
	sales repository.SaleRepository,
	suppliers repository.SupplierRepository,
	cfg LowStockConfig,
	opts ...Option,
) *LowStockUseCase {
	if cfg.DefaultRecentDays <= 0 {
		cfg.DefaultRecentDays = DefaultRecentDays
	}
	if cfg.DefaultLookbackDays <= 0 {
		cfg.DefaultLookbackDays = DefaultLookbackDays
	}
	uc := &LowStockUseCase{
		companies: companies,
		levels:    levels,
		sales:     NewSalesAggregator(sales),
		suppliers: NewSupplierResolver(suppliers),
		cfg:       cfg,
		clock:     time.Now,
		observer:  nopObserver{},
		log:       logger.Nop(),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// ComputeAlerts calcula las alertas de bajo stock de la empresa.
// Todo o nada: ante cualquier error no se devuelven alertas parciales.
func (uc *LowStockUseCase) ComputeAlerts(ctx context.Context, companyID string, q dto.LowStockQuery) (*dto.LowStockReportDTO, error) {
	started := time.Now()
	report, err := uc.compute(ctx, companyID, q)

	alerts := 0
	if report != nil {
		alerts = report.TotalAlerts
	}
	uc.observer.ComputationFinished(outcomeOf(err), alerts, time.Since(started))

	if err != nil {
		if errors.Is(err, domain.ErrPreconditionViolation) {
			uc.log.Warn().Err(err).Str("company_id", companyID).Msg("datos de origen inconsistentes")
		}
		return nil, err
	}
	uc.log.Debug().
		Str("company_id", companyID).
		Int("alerts", report.TotalAlerts).
		Int("recent_days", report.RecentDays).
		Int("lookback_days", report.LookbackDays).
		Dur("elapsed", time.Since(started)).
		Msg("alertas de bajo stock calculadas")
	return report, nil
}

func (uc *LowStockUseCase) compute(ctx context.Context, companyID string, q dto.LowStockQuery) (*dto.LowStockReportDTO, error) {
	// 1. Validar ventanas antes de tocar datos
	recentDays, err := windowDays("recent_days", q.RecentDays, uc.cfg.DefaultRecentDays)
	if err != nil {
		return nil, err
	}
	lookbackDays, err := windowDays("sales_lookback", q.LookbackDays, uc.cfg.DefaultLookbackDays)
	if err != nil {
		return nil, err
	}

	// 2. La empresa debe existir
	company, err := uc.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("obtener empresa %s: %w", companyID, err)
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}

	// Un único "ahora" para todas las consultas del cálculo
	now := uc.clock().UTC()
	recentSince := windowStart(now, recentDays)
	lookbackSince := windowStart(now, lookbackDays)

	rows, err := uc.levels.ListWithProductAndWarehouse(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("listar inventario de %s: %w", companyID, err)
	}

	// 3. Evaluar cada par (producto, bodega) en el orden de la fuente
	alerts := make([]dto.LowStockAlertDTO, 0)
	for i := range rows {
		row := &rows[i]
		threshold := uc.cfg.Thresholds.Resolve(&row.Product)
		stock := row.Level.Quantity

		// Backorder: siempre urgente, sin confirmar demanda ni buscar proveedor
		if stock < 0 {
			zero := int64(0)
			alerts = append(alerts, toAlertDTO(entity.LowStockAlert{
				ProductID:         row.Product.ID,
				ProductName:       row.Product.Name,
				SKU:               row.Product.SKU,
				WarehouseID:       row.Warehouse.ID,
				WarehouseName:     row.Warehouse.Name,
				CurrentStock:      stock,
				Threshold:         threshold,
				DaysUntilStockout: &zero,
			}))
			continue
		}
		if stock >= threshold {
			continue
		}

		recent, err := uc.sales.RecentActivityCount(ctx, row.Product.ID, companyID, recentSince, now)
		if err != nil {
			return nil, err
		}
		if recent == 0 {
			// Sin demanda confirmada: stock muerto, no se alerta
			continue
		}

		totalSold, err := uc.sales.TotalSoldSince(ctx, row.Product.ID, companyID, lookbackSince, now)
		if err != nil {
			return nil, err
		}
		alert := entity.LowStockAlert{
			ProductID:     row.Product.ID,
			ProductName:   row.Product.Name,
			SKU:           row.Product.SKU,
			WarehouseID:   row.Warehouse.ID,
			WarehouseName: row.Warehouse.Name,
			CurrentStock:  stock,
			Threshold:     threshold,
		}
		if d, ok := invdomain.ForecastStockoutDays(stock, totalSold, lookbackDays); ok {
			alert.DaysUntilStockout = &d
		}

		candidate, err := uc.suppliers.ResolvePreferredSupplier(ctx, row.Product.ID, companyID)
		if err != nil {
			return nil, err
		}
		if candidate != nil {
			s := candidate.Supplier
			alert.Supplier = &s
			alert.SupplierLeadTimeDays = candidate.LeadTimeDays
		}
		alerts = append(alerts, toAlertDTO(alert))
	}

	return &dto.LowStockReportDTO{
		CompanyID:    companyID,
		Alerts:       alerts,
		TotalAlerts:  len(alerts),
		GeneratedAt:  now,
		RecentDays:   recentDays,
		LookbackDays: lookbackDays,
	}, nil
}

// windowDays aplica el valor por defecto y exige un entero positivo.
func windowDays(name string, override *int, def int) (int, error) {
	if override == nil {
		return def, nil
	}
	if *override <= 0 {
		return 0, domain.InvalidInputf("%s debe ser un entero positivo (recibido %d)", name, *override)
	}
	return *override, nil
}

// maxWindowDays supera cualquier historia representable; ventanas mayores empiezan en el instante cero.
const maxWindowDays = 4_000_000

// windowStart inicio de la ventana [start, now) de n días. Nunca queda después de now.
func windowStart(now time.Time, n int) time.Time {
	if n > maxWindowDays {
		return time.Time{}
	}
	start := now.AddDate(0, 0, -n)
	if start.Before(time.Time{}) {
		return time.Time{}
	}
	return start
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_argument"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrPreconditionViolation):
		return "precondition"
	case errors.Is(err, domain.ErrDataSource):
		return "data_source"
	default:
		return "error"
	}
}

func toAlertDTO(a entity.LowStockAlert) dto.LowStockAlertDTO {
	out := dto.LowStockAlertDTO{
		ProductID:         a.ProductID,
		ProductName:       a.ProductName,
		SKU:               a.SKU,
		WarehouseID:       a.WarehouseID,
		WarehouseName:     a.WarehouseName,
		CurrentStock:      a.CurrentStock,
		Threshold:         a.Threshold,
		DaysUntilStockout: a.DaysUntilStockout,
	}
	if a.Supplier != nil {
		out.Supplier = &dto.AlertSupplierDTO{
			ID:           a.Supplier.ID,
			Name:         a.Supplier.Name,
			ContactEmail: a.Supplier.ContactEmail,
			LeadTimeDays: a.SupplierLeadTimeDays,
		}
	}
	return out
}
