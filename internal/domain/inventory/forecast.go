package inventory

import (
	"math"

	"github.com/shopspring/decimal"
)

// MaxStockoutDays cota superior del pronóstico; resultados mayores saturan a este valor.
const MaxStockoutDays int64 = math.MaxInt32

// ForecastStockoutDays estima los días hasta quiebre de stock.
//
//	promedioDiario = totalSold / max(1, lookbackDays)
//	días = floor(currentStock / promedioDiario) = floor(currentStock * lookbackDays / totalSold)
//
// Devuelve ok=false si el promedio es cero (pronóstico desconocido).
// El cociente es entero exacto (sin flotantes) y satura en MaxStockoutDays.
// Precondición: totalSold >= 0 y currentStock >= 0; el llamador valida.
func ForecastStockoutDays(currentStock, totalSold int64, lookbackDays int) (days int64, ok bool) {
	if lookbackDays < 1 {
		lookbackDays = 1
	}
	if totalSold <= 0 {
		return 0, false
	}
	if currentStock <= 0 {
		return 0, true
	}
	num := decimal.NewFromInt(currentStock).Mul(decimal.NewFromInt(int64(lookbackDays)))
	q, _ := num.QuoRem(decimal.NewFromInt(totalSold), 0)
	if q.GreaterThan(decimal.NewFromInt(MaxStockoutDays)) {
		return MaxStockoutDays, true
	}
	return q.IntPart(), true
}
