package dto

import "time"

// LowStockQuery parámetros opcionales de GET /api/companies/{id}/alerts/low-stock.
// nil = usar el valor por defecto configurado.
type LowStockQuery struct {
	RecentDays   *int
	LookbackDays *int
}

// AlertSupplierDTO proveedor sugerido para reponer.
type AlertSupplierDTO struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ContactEmail string `json:"contact_email"`
	LeadTimeDays int    `json:"lead_time_days"`
}

// LowStockAlertDTO alerta de bajo stock para un par (producto, bodega).
type LowStockAlertDTO struct {
	ProductID         string            `json:"product_id"`
	ProductName       string            `json:"product_name"`
	SKU               string            `json:"sku"`
	WarehouseID       string            `json:"warehouse_id"`
	WarehouseName     string            `json:"warehouse_name"`
	CurrentStock      int64             `json:"current_stock"`
	Threshold         int64             `json:"threshold"`
	DaysUntilStockout *int64            `json:"days_until_stockout"` // null = desconocido
	Supplier          *AlertSupplierDTO `json:"supplier"`
}

// LowStockReportDTO respuesta del motor de alertas.
type LowStockReportDTO struct {
	CompanyID    string             `json:"company_id"`
	Alerts       []LowStockAlertDTO `json:"alerts"`
	TotalAlerts  int                `json:"total_alerts"`
	GeneratedAt  time.Time          `json:"generated_at"`
	RecentDays   int                `json:"recent_days"`
	LookbackDays int                `json:"lookback_days"`
}
