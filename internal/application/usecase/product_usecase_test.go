package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockalert-api/internal/application/dto"
	"github.com/jhoicas/stockalert-api/internal/application/usecase"
	"github.com/jhoicas/stockalert-api/internal/domain"
	"github.com/jhoicas/stockalert-api/internal/domain/entity"
	"github.com/jhoicas/stockalert-api/internal/infrastructure/memory"
)

func seedStore(t *testing.T) *memory.Store {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.Companies().Create(ctx, &entity.Company{ID: "c1", Name: "Acme"}))
	require.NoError(t, s.Companies().Create(ctx, &entity.Company{ID: "c2", Name: "Otra"}))
	require.NoError(t, s.Warehouses().Create(ctx, &entity.Warehouse{ID: "w1", CompanyID: "c1", Name: "Central"}))
	require.NoError(t, s.Warehouses().Create(ctx, &entity.Warehouse{ID: "w3", CompanyID: "c1", Name: "Norte"}))
	require.NoError(t, s.Warehouses().Create(ctx, &entity.Warehouse{ID: "w2", CompanyID: "c2", Name: "Ajena"}))
	return s
}

func newProductUC(s *memory.Store) *usecase.ProductUseCase {
	return usecase.NewProductUseCase(memory.NewTxRunner(s), s.Companies(), s.Products(), s.Warehouses())
}

func price(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func TestProductCreate_StockInicialPorBodega(t *testing.T) {
	s := seedStore(t)
	ctx := context.Background()

	out, err := newProductUC(s).Create(ctx, "c1", dto.CreateProductRequest{
		SKU: "T-1", Name: "Tornillo", Price: price("1.505"),
		Warehouses: []dto.WarehouseStockInput{{WarehouseID: "w1", InitialQuantity: 10}, {WarehouseID: "w3", InitialQuantity: 0}},
	})
	require.NoError(t, err)
	assert.Equal(t, "1.51", out.Price.StringFixed(2))
	assert.Len(t, out.Stock, 2)

	lvl, err := s.Levels().Get(ctx, out.ID, "w1")
	require.NoError(t, err)
	require.NotNil(t, lvl)
	assert.Equal(t, int64(10), lvl.Quantity)
}

func TestProductCreate_FormatoLegacy(t *testing.T) {
	s := seedStore(t)
	ctx := context.Background()

	out, err := newProductUC(s).Create(ctx, "c1", dto.CreateProductRequest{
		SKU: "T-2", Name: "Tuerca", Price: price("0"), WarehouseID: "w1", InitialQuantity: 7,
	})
	require.NoError(t, err)
	lvl, _ := s.Levels().Get(ctx, out.ID, "w1")
	require.NotNil(t, lvl)
	assert.Equal(t, int64(7), lvl.Quantity)
}

func TestProductCreate_Errores(t *testing.T) {
	s := seedStore(t)
	ctx := context.Background()
	uc := newProductUC(s)

	_, err := uc.Create(ctx, "c1", dto.CreateProductRequest{SKU: "A", Name: "A"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "price es obligatorio")

	_, err = uc.Create(ctx, "c1", dto.CreateProductRequest{SKU: "A", Name: "A", Price: price("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, "c1", dto.CreateProductRequest{SKU: "", Name: "A", Price: price("1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, "c1", dto.CreateProductRequest{SKU: "A", Name: "A", Price: price("1"), WarehouseID: "w2"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "bodega de otra empresa")

	_, err = uc.Create(ctx, "c1", dto.CreateProductRequest{SKU: "A", Name: "A", Price: price("1"), WarehouseID: "zzz"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "bodega inexistente")

	_, err = uc.Create(ctx, "nope", dto.CreateProductRequest{SKU: "A", Name: "A", Price: price("1")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Create(ctx, "c1", dto.CreateProductRequest{SKU: "A", Name: "A", Price: price("1")})
	require.NoError(t, err)
	_, err = uc.Create(ctx, "c1", dto.CreateProductRequest{SKU: "A", Name: "Otro", Price: price("1")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(ctx, "c2", dto.CreateProductRequest{SKU: "A", Name: "A", Price: price("1")})
	assert.NoError(t, err, "el SKU es único por empresa")
}

func TestProductCreate_NadaSeGuardaSiFallaLaValidacion(t *testing.T) {
	s := seedStore(t)
	ctx := context.Background()

	_, err := newProductUC(s).Create(ctx, "c1", dto.CreateProductRequest{
		SKU: "T-9", Name: "X", Price: price("1"),
		Warehouses: []dto.WarehouseStockInput{{WarehouseID: "w1", InitialQuantity: 1}, {WarehouseID: "w2", InitialQuantity: 1}},
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	p, err := s.Products().GetByCompanyAndSKU(ctx, "c1", "T-9")
	require.NoError(t, err)
	assert.Nil(t, p)
}
