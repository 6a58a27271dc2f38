// Command lowstock evalúa las alertas de bajo stock de una empresa sobre un snapshot YAML,
// sin base de datos, e imprime el reporte en JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jhoicas/stockalert-api/internal/application/dto"
	"github.com/jhoicas/stockalert-api/internal/application/inventory"
	invdomain "github.com/jhoicas/stockalert-api/internal/domain/inventory"
	"github.com/jhoicas/stockalert-api/internal/infrastructure/memory"
	"github.com/jhoicas/stockalert-api/pkg/config"
	"github.com/jhoicas/stockalert-api/pkg/logger"
)

func main() {
	log := logger.New(logger.Config{Env: "development", Level: "info", Output: os.Stderr})
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Error().Err(err).Msg("lowstock")
		os.Exit(1)
	}
}

// run separa el parseo de flags de main para poder probarlo.
func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("lowstock", flag.ContinueOnError)
	var (
		snapshotPath = fs.String("snapshot", "", "Ruta del snapshot YAML")
		companyID    = fs.String("company", "", "ID de la empresa a evaluar")
		recentDays   = fs.Int("recent-days", 0, "Ventana de actividad reciente en días (0 = por defecto)")
		lookbackDays = fs.Int("lookback-days", 0, "Ventana de ventas para el pronóstico en días (0 = por defecto)")
		nowRaw       = fs.String("now", "", "Instante de evaluación en RFC3339 (vacío = ahora)")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *snapshotPath == "" || *companyID == "" {
		return fmt.Errorf("-snapshot y -company son obligatorios")
	}

	now := time.Now().UTC()
	if *nowRaw != "" {
		t, err := time.Parse(time.RFC3339, *nowRaw)
		if err != nil {
			return fmt.Errorf("-now inválido: %w", err)
		}
		now = t
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}

	f, err := os.Open(*snapshotPath)
	if err != nil {
		return fmt.Errorf("abrir snapshot: %w", err)
	}
	defer f.Close()
	store, err := memory.LoadSnapshot(f)
	if err != nil {
		return err
	}

	uc := inventory.NewLowStockUseCase(
		store.Companies(), store.Levels(), store.Sales(), store.Suppliers(),
		inventory.LowStockConfig{
			Thresholds: invdomain.ThresholdPolicy{
				ByType:   cfg.Alerts.ThresholdsByType,
				Fallback: cfg.Alerts.FallbackThreshold,
			},
			DefaultRecentDays:   cfg.Alerts.RecentDays,
			DefaultLookbackDays: cfg.Alerts.LookbackDays,
		},
		inventory.WithClock(func() time.Time { return now }),
	)

	var q dto.LowStockQuery
	if *recentDays != 0 {
		q.RecentDays = recentDays
	}
	if *lookbackDays != 0 {
		q.LookbackDays = lookbackDays
	}
	report, err := uc.ComputeAlerts(context.Background(), *companyID, q)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
