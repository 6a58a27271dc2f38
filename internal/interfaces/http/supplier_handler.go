package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockalert-api/internal/application/dto"
	"github.com/jhoicas/stockalert-api/internal/application/usecase"
	"github.com/jhoicas/stockalert-api/pkg/logger"
)

// SupplierHandler proveedores y vínculos proveedor-producto.
type SupplierHandler struct {
	uc  *usecase.SupplierUseCase
	log *logger.Logger
}

// NewSupplierHandler construye el handler.
func NewSupplierHandler(uc *usecase.SupplierUseCase, log *logger.Logger) *SupplierHandler {
	return &SupplierHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear proveedor
// @Tags         suppliers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        companyID  path  string                     true  "ID de la empresa"
// @Param        body       body  dto.CreateSupplierRequest  true  "Datos del proveedor"
// @Success      201  {object}  dto.SupplierResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{companyID}/suppliers [post]
func (h *SupplierHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), c.Params("companyID"), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// LinkProduct godoc
// @Summary      Vincular producto a proveedor
// @Description  Crea o actualiza el lead time (días, >= 0) del proveedor para el producto.
// @Tags         suppliers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        companyID   path  string                          true  "ID de la empresa"
// @Param        supplierID  path  string                          true  "ID del proveedor"
// @Param        body        body  dto.LinkSupplierProductRequest  true  "product_id, lead_time_days"
// @Success      201  {object}  dto.SupplierProductResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{companyID}/suppliers/{supplierID}/products [post]
func (h *SupplierHandler) LinkProduct(c *fiber.Ctx) error {
	var in dto.LinkSupplierProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.LinkProduct(c.UserContext(), c.Params("companyID"), c.Params("supplierID"), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
