package entity

// LowStockAlert resultado efímero del motor de alertas (no se persiste).
type LowStockAlert struct {
	ProductID     string
	ProductName   string
	SKU           string
	WarehouseID   string
	WarehouseName string
	CurrentStock  int64
	Threshold     int64

	// DaysUntilStockout nil = desconocido (sin velocidad de venta en la ventana de lookback).
	DaysUntilStockout *int64
	// Supplier nil = sin proveedor vinculado (o stock negativo).
	Supplier             *Supplier
	SupplierLeadTimeDays int
}
