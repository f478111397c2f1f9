package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/insumos-api/internal/application/dto"
	"github.com/tu-usuario/insumos-api/internal/application/inventory"
	"github.com/tu-usuario/insumos-api/internal/domain/entity"
)

// InputHandler maneja las peticiones HTTP de insumos (protegido).
type InputHandler struct {
	uc         *inventory.InputUseCase
	aggregator *inventory.StockAggregator
}

// NewInputHandler construye el handler.
func NewInputHandler(uc *inventory.InputUseCase, aggregator *inventory.StockAggregator) *InputHandler {
	return &InputHandler{uc: uc, aggregator: aggregator}
}

func inputResponse(in *entity.Input) dto.InputResponse {
	return dto.InputResponse{
		ID:           in.ID,
		Code:         in.Code,
		Name:         in.Name,
		UnitMeasure:  in.UnitMeasure,
		UnitCost:     in.UnitCost,
		CurrentStock: in.CurrentStock,
		MinStock:     in.MinStock,
		MaxStock:     in.MaxStock,
		IsActive:     in.IsActive,
		CreatedAt:    in.CreatedAt,
	}
}

// Create godoc
// @Summary      Crear insumo
// @Tags         inputs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInputRequest  true  "code, name, unit_measure, unit_cost, min_stock, max_stock"
// @Success      201   {object}  dto.InputResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inputs [post]
func (h *InputHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInputRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	input, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(inputResponse(input))
}

// GetByID godoc
// @Summary      Obtener insumo por ID
// @Tags         inputs
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "Input ID"
// @Success      200  {object}  dto.InputResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inputs/{id} [get]
func (h *InputHandler) GetByID(c *fiber.Ctx) error {
	input, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(inputResponse(input))
}

// Update godoc
// @Summary      Actualizar metadatos del insumo
// @Description  current_stock no se edita aquí: lo escribe el agregador a partir de los lotes activos.
// @Tags         inputs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "Input ID"
// @Param        body  body  dto.UpdateInputRequest  true  "campos opcionales"
// @Success      200   {object}  dto.InputResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inputs/{id} [put]
func (h *InputHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateInputRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	input, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(inputResponse(input))
}

// List godoc
// @Summary      Listar insumos
// @Tags         inputs
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "máx. resultados (default 20)"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}  dto.InputResponse
// @Router       /api/inputs [get]
func (h *InputHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	inputs, err := h.uc.List(page)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.InputResponse, 0, len(inputs))
	for _, in := range inputs {
		out = append(out, inputResponse(in))
	}
	return c.JSON(out)
}

// ListLowStock godoc
// @Summary      Insumos con stock bajo
// @Description  Insumos cuyo stock agregado está en o por debajo del mínimo configurado.
// @Tags         inputs
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.InputResponse
// @Router       /api/inputs/low-stock [get]
func (h *InputHandler) ListLowStock(c *fiber.Ctx) error {
	inputs, err := h.aggregator.ListLowStock()
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.InputResponse, 0, len(inputs))
	for _, in := range inputs {
		out = append(out, inputResponse(in))
	}
	return c.JSON(out)
}

// Recalculate godoc
// @Summary      Reconciliar stock del insumo
// @Description  Recalcula current_stock como la suma de los lotes activos y devuelve el total.
// @Tags         inputs
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "Input ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inputs/{id}/recalculate [post]
func (h *InputHandler) Recalculate(c *fiber.Ctx) error {
	total, err := h.aggregator.Recalculate(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"input_id": c.Params("id"), "current_stock": total})
}
