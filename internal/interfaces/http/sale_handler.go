package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockalert-api/internal/application/dto"
	"github.com/jhoicas/stockalert-api/internal/application/inventory"
	"github.com/jhoicas/stockalert-api/pkg/logger"
)

// SaleHandler registro de ventas.
type SaleHandler struct {
	uc  *inventory.RecordSaleUseCase
	log *logger.Logger
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *inventory.RecordSaleUseCase, log *logger.Logger) *SaleHandler {
	return &SaleHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Registrar venta
// @Description  Inserta el evento de venta y descuenta el stock de la bodega. El stock puede quedar negativo.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        companyID  path  string                 true  "ID de la empresa"
// @Param        body       body  dto.RecordSaleRequest  true  "product_id, warehouse_id, quantity (> 0), sold_at opcional"
// @Success      201  {object}  dto.SaleResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{companyID}/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.RecordSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.RecordSale(c.UserContext(), c.Params("companyID"), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
