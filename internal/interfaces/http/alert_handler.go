package http

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockalert-api/internal/application/dto"
	"github.com/jhoicas/stockalert-api/internal/application/inventory"
	"github.com/jhoicas/stockalert-api/internal/application/usecase"
	"github.com/jhoicas/stockalert-api/internal/domain"
	"github.com/jhoicas/stockalert-api/pkg/logger"
)

// LowStockPDFRenderer genera la versión PDF del reporte de alertas.
type LowStockPDFRenderer interface {
	GenerateLowStockPDF(ctx context.Context, companyName string, report *dto.LowStockReportDTO) ([]byte, error)
}

// AlertHandler expone el motor de alertas de bajo stock.
type AlertHandler struct {
	uc        *inventory.LowStockUseCase
	companies *usecase.CompanyUseCase
	pdf       LowStockPDFRenderer
	log       *logger.Logger
}

// NewAlertHandler construye el handler.
func NewAlertHandler(uc *inventory.LowStockUseCase, companies *usecase.CompanyUseCase, pdf LowStockPDFRenderer, log *logger.Logger) *AlertHandler {
	return &AlertHandler{uc: uc, companies: companies, pdf: pdf, log: log}
}

// LowStock godoc
// @Summary      Alertas de bajo stock
// @Description  Pares (producto, bodega) bajo su umbral con ventas recientes, con días estimados hasta el quiebre
// @Description  (null = desconocido) y el proveedor de menor lead time. El stock negativo siempre alerta con 0 días.
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        companyID       path   string  true   "ID de la empresa"
// @Param        recent_days     query  int     false  "Ventana de actividad reciente (días)"  default(90)
// @Param        sales_lookback  query  int     false  "Ventana del promedio de ventas (días)" default(90)
// @Success      200  {object}  dto.LowStockReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/companies/{companyID}/alerts/low-stock [get]
func (h *AlertHandler) LowStock(c *fiber.Ctx) error {
	report, err := h.compute(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(report)
}

// LowStockPDF godoc
// @Summary      Alertas de bajo stock (PDF)
// @Tags         alerts
// @Security     Bearer
// @Produce      application/pdf
// @Param        companyID       path   string  true   "ID de la empresa"
// @Param        recent_days     query  int     false  "Ventana de actividad reciente (días)"
// @Param        sales_lookback  query  int     false  "Ventana del promedio de ventas (días)"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{companyID}/alerts/low-stock.pdf [get]
func (h *AlertHandler) LowStockPDF(c *fiber.Ctx) error {
	report, err := h.compute(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	company, err := h.companies.GetByID(c.UserContext(), report.CompanyID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	doc, err := h.pdf.GenerateLowStockPDF(c.UserContext(), company.Name, report)
	if err != nil {
		return respondError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="low-stock-%s.pdf"`, report.GeneratedAt.Format("20060102-1504")))
	return c.Send(doc)
}

func (h *AlertHandler) compute(c *fiber.Ctx) (*dto.LowStockReportDTO, error) {
	recent, err := queryDays(c, "recent_days")
	if err != nil {
		return nil, err
	}
	lookback, err := queryDays(c, "sales_lookback")
	if err != nil {
		return nil, err
	}
	return h.uc.ComputeAlerts(c.UserContext(), c.Params("companyID"), dto.LowStockQuery{
		RecentDays:   recent,
		LookbackDays: lookback,
	})
}

// queryDays: ausente → nil (valor por defecto); no numérico → InvalidInput.
// El signo lo valida el motor.
func queryDays(c *fiber.Ctx, name string) (*int, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, domain.InvalidInputf("%s debe ser un entero (recibido %q)", name, raw)
	}
	return &n, nil
}
