package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockalert-api/internal/application/dto"
	"github.com/jhoicas/stockalert-api/internal/application/usecase"
	"github.com/jhoicas/stockalert-api/internal/domain"
	"github.com/jhoicas/stockalert-api/internal/domain/entity"
)

func intPtr(v int) *int { return &v }

func TestSupplier_CrearYVincular(t *testing.T) {
	s := seedStore(t)
	ctx := context.Background()
	require.NoError(t, s.Products().Create(ctx, &entity.Product{ID: "p1", CompanyID: "c1", SKU: "T-1", Name: "Tornillo"}))
	require.NoError(t, s.Products().Create(ctx, &entity.Product{ID: "p2", CompanyID: "c2", SKU: "T-1", Name: "Ajeno"}))
	uc := usecase.NewSupplierUseCase(s.Companies(), s.Products(), s.Suppliers())

	sup, err := uc.Create(ctx, "c1", dto.CreateSupplierRequest{Name: " Ferretería ", ContactEmail: "ventas@f.co"})
	require.NoError(t, err)
	assert.Equal(t, "Ferretería", sup.Name)

	link, err := uc.LinkProduct(ctx, "c1", sup.ID, dto.LinkSupplierProductRequest{ProductID: "p1", LeadTimeDays: intPtr(0)})
	require.NoError(t, err)
	assert.Equal(t, 0, link.LeadTimeDays)

	c, err := s.Suppliers().FindShortestLeadTime(ctx, "p1", "c1")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, sup.ID, c.Supplier.ID)

	_, err = uc.LinkProduct(ctx, "c1", sup.ID, dto.LinkSupplierProductRequest{ProductID: "p1", LeadTimeDays: intPtr(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.LinkProduct(ctx, "c1", sup.ID, dto.LinkSupplierProductRequest{ProductID: "p1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "lead_time_days es obligatorio")

	_, err = uc.LinkProduct(ctx, "c1", sup.ID, dto.LinkSupplierProductRequest{ProductID: "p2", LeadTimeDays: intPtr(1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "producto de otra empresa")

	_, err = uc.LinkProduct(ctx, "c2", sup.ID, dto.LinkSupplierProductRequest{ProductID: "p2", LeadTimeDays: intPtr(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound, "proveedor de otra empresa")
}

func TestSupplier_EmpresaInexistente(t *testing.T) {
	s := seedStore(t)
	uc := usecase.NewSupplierUseCase(s.Companies(), s.Products(), s.Suppliers())
	_, err := uc.Create(context.Background(), "nope", dto.CreateSupplierRequest{Name: "X"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCompanyYWarehouse(t *testing.T) {
	s := seedStore(t)
	ctx := context.Background()
	companies := usecase.NewCompanyUseCase(s.Companies())
	warehouses := usecase.NewWarehouseUseCase(s.Companies(), s.Warehouses())

	c, err := companies.Create(ctx, dto.CreateCompanyRequest{Name: "Nueva"})
	require.NoError(t, err)
	got, err := companies.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Nueva", got.Name)

	_, err = companies.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = companies.Create(ctx, dto.CreateCompanyRequest{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = warehouses.Create(ctx, c.ID, dto.CreateWarehouseRequest{Name: "B1"})
	require.NoError(t, err)
	_, err = warehouses.Create(ctx, c.ID, dto.CreateWarehouseRequest{Name: "B2"})
	require.NoError(t, err)

	list, err := warehouses.List(ctx, c.ID, dto.PageRequest{Limit: 1})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "B1", list.Items[0].Name)

	list, err = warehouses.List(ctx, c.ID, dto.PageRequest{Limit: 10, Offset: 1})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "B2", list.Items[0].Name)

	list, err = warehouses.List(ctx, c.ID, dto.PageRequest{Limit: 1000})
	require.NoError(t, err)
	assert.Equal(t, dto.MaxPageLimit, list.Page.Limit, "el límite se recorta al tope")
	assert.Len(t, list.Items, 2)

	_, err = warehouses.List(ctx, "nope", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
