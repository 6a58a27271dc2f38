package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockalert-api/internal/application/dto"
	"github.com/jhoicas/stockalert-api/internal/application/usecase"
	"github.com/jhoicas/stockalert-api/pkg/logger"
)

// ProductHandler alta de productos con inventario inicial.
type ProductHandler struct {
	uc  *usecase.ProductUseCase
	log *logger.Logger
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, log *logger.Logger) *ProductHandler {
	return &ProductHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear producto
// @Description  Crea el producto y su stock inicial por bodega en una sola transacción.
// @Description  Acepta `warehouses: [{warehouse_id, initial_quantity}]` o el formato legacy `warehouse_id` + `initial_quantity`.
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        companyID  path  string                    true  "ID de la empresa"
// @Param        body       body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201  {object}  dto.ProductResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/companies/{companyID}/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), c.Params("companyID"), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
