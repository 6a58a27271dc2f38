package inventory

import "github.com/jhoicas/stockalert-api/internal/domain/entity"

// Valores por defecto de la política de umbrales.
const (
	DefaultFallbackThreshold int64 = 10
)

// DefaultThresholdsByType mapeo tipo de producto → umbral usado cuando no hay configuración explícita.
func DefaultThresholdsByType() map[int]int64 {
	return map[int]int64{1: 10, 2: 20, 3: 50}
}

// ThresholdPolicy configuración de umbrales de bajo stock (servicio de dominio).
// Se construye una vez y se pasa al motor; no hay estado global mutable.
type ThresholdPolicy struct {
	ByType   map[int]int64
	Fallback int64
}

// DefaultThresholdPolicy política con los valores históricos del negocio.
func DefaultThresholdPolicy() ThresholdPolicy {
	return ThresholdPolicy{ByType: DefaultThresholdsByType(), Fallback: DefaultFallbackThreshold}
}

// Resolve devuelve el umbral efectivo del producto:
//  1. override explícito (incluido 0),
//  2. umbral del tipo si el tipo es conocido,
//  3. fallback.
func (p ThresholdPolicy) Resolve(product *entity.Product) int64 {
	if product.LowStockThreshold != nil {
		return *product.LowStockThreshold
	}
	if product.ProductTypeID != nil {
		if t, ok := p.ByType[*product.ProductTypeID]; ok {
			return t
		}
	}
	return p.Fallback
}
