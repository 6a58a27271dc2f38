package inventory_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stockalert-api/internal/domain/inventory"
)

func TestForecastStockoutDays(t *testing.T) {
	cases := []struct {
		name     string
		stock    int64
		sold     int64
		lookback int
		wantDays int64
		wantOK   bool
	}{
		{"promedio 1 por día", 15, 90, 90, 15, true},
		{"sin ventas en lookback es desconocido", 12, 0, 90, 0, false},
		{"trunca hacia cero", 10, 30, 90, 30, true},
		{"fracción se descarta", 7, 2, 3, 10, true},
		{"lookback cero se eleva a 1", 5, 5, 0, 1, true},
		{"lookback negativo se eleva a 1", 5, 10, -3, 0, true},
		{"stock cero", 0, 9, 90, 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			days, ok := inventory.ForecastStockoutDays(tc.stock, tc.sold, tc.lookback)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.wantDays, days)
			assert.GreaterOrEqual(t, days, int64(0), "el pronóstico nunca es negativo")
		})
	}
}

func TestForecastStockoutDays_Satura(t *testing.T) {
	days, ok := inventory.ForecastStockoutDays(math.MaxInt64, 1, 365)
	assert.True(t, ok)
	assert.Equal(t, inventory.MaxStockoutDays, days)

	days, ok = inventory.ForecastStockoutDays(int64(math.MaxInt32), 1, 1)
	assert.True(t, ok)
	assert.Equal(t, inventory.MaxStockoutDays, days, "en el límite exacto no satura, devuelve el mismo valor")
}
