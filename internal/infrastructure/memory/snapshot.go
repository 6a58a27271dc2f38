package memory

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/jhoicas/stockalert-api/internal/domain/entity"
)

// Snapshot formato YAML de un volcado de datos para evaluar alertas fuera de línea.
type Snapshot struct {
	Companies []struct {
		ID   string `yaml:"id"`
		Name string `yaml:"name"`
	} `yaml:"companies"`
	Warehouses []struct {
		ID        string `yaml:"id"`
		CompanyID string `yaml:"company_id"`
		Name      string `yaml:"name"`
		Address   string `yaml:"address"`
	} `yaml:"warehouses"`
	Products []struct {
		ID                string `yaml:"id"`
		CompanyID         string `yaml:"company_id"`
		Name              string `yaml:"name"`
		SKU               string `yaml:"sku"`
		Price             string `yaml:"price"`
		ProductTypeID     *int   `yaml:"product_type_id"`
		LowStockThreshold *int64 `yaml:"low_stock_threshold"`
	} `yaml:"products"`
	Inventory []struct {
		ProductID   string `yaml:"product_id"`
		WarehouseID string `yaml:"warehouse_id"`
		Quantity    int64  `yaml:"quantity"`
	} `yaml:"inventory"`
	Sales []struct {
		ID          string    `yaml:"id"`
		CompanyID   string    `yaml:"company_id"`
		ProductID   string    `yaml:"product_id"`
		WarehouseID string    `yaml:"warehouse_id"`
		Quantity    int64     `yaml:"quantity"`
		SoldAt      time.Time `yaml:"sold_at"`
	} `yaml:"sales"`
	Suppliers []struct {
		ID           string `yaml:"id"`
		CompanyID    string `yaml:"company_id"`
		Name         string `yaml:"name"`
		ContactEmail string `yaml:"contact_email"`
	} `yaml:"suppliers"`
	SupplierProducts []struct {
		SupplierID   string `yaml:"supplier_id"`
		ProductID    string `yaml:"product_id"`
		LeadTimeDays int    `yaml:"lead_time_days"`
	} `yaml:"supplier_products"`
}

// LoadSnapshot decodifica un snapshot YAML y lo carga en un Store nuevo.
// Los datos se cargan tal cual (incluidas ventas o lead times negativos): la validación
// de precondiciones es responsabilidad del motor de alertas.
func LoadSnapshot(r io.Reader) (*Store, error) {
	var snap Snapshot
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&snap); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decodificar snapshot: %w", err)
	}

	ctx := context.Background()
	s := NewStore()
	for _, c := range snap.Companies {
		if err := s.Companies().Create(ctx, &entity.Company{ID: c.ID, Name: c.Name}); err != nil {
			return nil, fmt.Errorf("empresa %s: %w", c.ID, err)
		}
	}
	for _, w := range snap.Warehouses {
		if err := s.Warehouses().Create(ctx, &entity.Warehouse{
			ID: w.ID, CompanyID: w.CompanyID, Name: w.Name, Address: w.Address,
		}); err != nil {
			return nil, fmt.Errorf("bodega %s: %w", w.ID, err)
		}
	}
	for _, p := range snap.Products {
		price := decimal.Zero
		if p.Price != "" {
			var err error
			if price, err = decimal.NewFromString(p.Price); err != nil {
				return nil, fmt.Errorf("producto %s: precio inválido %q: %w", p.ID, p.Price, err)
			}
		}
		if err := s.Products().Create(ctx, &entity.Product{
			ID: p.ID, CompanyID: p.CompanyID, Name: p.Name, SKU: p.SKU, Price: price,
			ProductTypeID: p.ProductTypeID, LowStockThreshold: p.LowStockThreshold,
		}); err != nil {
			return nil, fmt.Errorf("producto %s: %w", p.ID, err)
		}
	}
	for _, inv := range snap.Inventory {
		if existing, _ := s.Levels().Get(ctx, inv.ProductID, inv.WarehouseID); existing != nil {
			return nil, fmt.Errorf("inventario duplicado para (%s, %s)", inv.ProductID, inv.WarehouseID)
		}
		if err := s.Levels().AddQuantity(ctx, inv.ProductID, inv.WarehouseID, inv.Quantity); err != nil {
			return nil, err
		}
	}
	for _, sale := range snap.Sales {
		if err := s.Sales().Create(ctx, &entity.Sale{
			ID: sale.ID, CompanyID: sale.CompanyID, ProductID: sale.ProductID,
			WarehouseID: sale.WarehouseID, Quantity: sale.Quantity, SoldAt: sale.SoldAt.UTC(),
		}); err != nil {
			return nil, err
		}
	}
	for _, sup := range snap.Suppliers {
		if err := s.Suppliers().Create(ctx, &entity.Supplier{
			ID: sup.ID, CompanyID: sup.CompanyID, Name: sup.Name, ContactEmail: sup.ContactEmail,
		}); err != nil {
			return nil, fmt.Errorf("proveedor %s: %w", sup.ID, err)
		}
	}
	for _, l := range snap.SupplierProducts {
		if err := s.Suppliers().LinkProduct(ctx, &entity.SupplierProduct{
			SupplierID: l.SupplierID, ProductID: l.ProductID, LeadTimeDays: l.LeadTimeDays,
		}); err != nil {
			return nil, err
		}
	}
	return s, nil
}
