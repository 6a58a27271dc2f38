package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockalert-api/internal/application/inventory"
	"github.com/jhoicas/stockalert-api/internal/application/usecase"
	"github.com/jhoicas/stockalert-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC   *usecase.CompanyUseCase
	WarehouseUC *usecase.WarehouseUseCase
	ProductUC   *usecase.ProductUseCase
	SupplierUC  *usecase.SupplierUseCase
	RecordSale  *inventory.RecordSaleUseCase
	LowStock    *inventory.LowStockUseCase
	PDF         LowStockPDFRenderer
	Logger      *logger.Logger

	// JWTSecret vacío = rutas de empresa sin verificación de tenant.
	JWTSecret string
	JWTIssuer string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	api := app.Group("/api")

	companyHandler := NewCompanyHandler(deps.CompanyUC, log)
	api.Post("/companies", companyHandler.Create)

	// Rutas de una empresa: protegidas por tenant si hay secreto JWT
	company := api.Group("/companies/:companyID")
	for _, h := range TenantGuard(deps.JWTSecret, deps.JWTIssuer) {
		company.Use(h)
	}
	company.Get("/", companyHandler.GetByID)

	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC, log)
	company.Post("/warehouses", warehouseHandler.Create)
	company.Get("/warehouses", warehouseHandler.List)

	productHandler := NewProductHandler(deps.ProductUC, log)
	company.Post("/products", productHandler.Create)

	saleHandler := NewSaleHandler(deps.RecordSale, log)
	company.Post("/sales", saleHandler.Create)

	supplierHandler := NewSupplierHandler(deps.SupplierUC, log)
	company.Post("/suppliers", supplierHandler.Create)
	company.Post("/suppliers/:supplierID/products", supplierHandler.LinkProduct)

	alertHandler := NewAlertHandler(deps.LowStock, deps.CompanyUC, deps.PDF, log)
	company.Get("/alerts/low-stock", alertHandler.LowStock)
	company.Get("/alerts/low-stock.pdf", alertHandler.LowStockPDF)
}
