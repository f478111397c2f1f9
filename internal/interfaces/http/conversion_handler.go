package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/insumos-api/internal/application/conversion"
	"github.com/tu-usuario/insumos-api/internal/application/dto"
	"github.com/tu-usuario/insumos-api/internal/domain/entity"
)

// ConversionHandler maneja el flujo de conversión de insumos a producto
// terminado (protegido).
type ConversionHandler struct {
	uc    *conversion.UseCase
	pdfUC *conversion.PDFUseCase
}

// NewConversionHandler construye el handler.
func NewConversionHandler(uc *conversion.UseCase, pdfUC *conversion.PDFUseCase) *ConversionHandler {
	return &ConversionHandler{uc: uc, pdfUC: pdfUC}
}

func conversionActor(c *fiber.Ctx) conversion.Actor {
	return conversion.Actor{ID: GetUserID(c), Name: GetUserName(c)}
}

func conversionResponse(conv *entity.Conversion, inputs []*entity.ConversionInputItem, outputs []*entity.ConversionOutputItem) dto.ConversionResponse {
	out := dto.ConversionResponse{
		ID:               conv.ID,
		ConversionNumber: conv.ConversionNumber,
		ConversionType:   conv.ConversionType,
		TemplateID:       conv.TemplateID,
		Status:           conv.Status,
		ConversionDate:   conv.ConversionDate,
		Notes:            conv.Notes,
		TotalInputCost:   conv.TotalInputCost,
		TotalOutputCost:  conv.TotalOutputCost,
		CreatedByName:    conv.CreatedByName,
		ApprovedByName:   conv.ApprovedByName,
		ApprovedAt:       conv.ApprovedAt,
		CreatedAt:        conv.CreatedAt,
		InputItems:       make([]dto.ConversionInputItemResponse, 0, len(inputs)),
		OutputItems:      make([]dto.ConversionOutputItemResponse, 0, len(outputs)),
	}
	for _, it := range inputs {
		out.InputItems = append(out.InputItems, inputItemResponse(it))
	}
	for _, it := range outputs {
		out.OutputItems = append(out.OutputItems, outputItemResponse(it))
	}
	return out
}

func inputItemResponse(it *entity.ConversionInputItem) dto.ConversionInputItemResponse {
	return dto.ConversionInputItemResponse{
		ID:             it.ID,
		InputVariantID: it.InputVariantID,
		InputCode:      it.InputCode,
		InputName:      it.InputName,
		UnitCost:       it.UnitCost,
		Quantity:       it.Quantity,
		TotalCost:      it.TotalCost,
	}
}

func outputItemResponse(it *entity.ConversionOutputItem) dto.ConversionOutputItemResponse {
	return dto.ConversionOutputItemResponse{
		ID:          it.ID,
		VariantID:   it.VariantID,
		VariantName: it.VariantName,
		UnitPrice:   it.UnitPrice,
		Quantity:    it.Quantity,
		TotalValue:  it.TotalValue,
	}
}

// respondWithConversion recarga la cabecera con sus líneas para la respuesta.
func (h *ConversionHandler) respondWithConversion(c *fiber.Ctx, status int, id string) error {
	conv, inputs, outputs, err := h.uc.GetByID(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(status).JSON(conversionResponse(conv, inputs, outputs))
}

// Create godoc
// @Summary      Crear conversión manual (borrador)
// @Tags         conversions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateConversionRequest  true  "conversion_date, notes (opcionales)"
// @Success      201   {object}  dto.ConversionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/conversions [post]
func (h *ConversionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateConversionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	conv, err := h.uc.Create(c.Context(), conversionActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return h.respondWithConversion(c, fiber.StatusCreated, conv.ID)
}

// CreateFromTemplate godoc
// @Summary      Crear conversión desde receta de plantilla (borrador)
// @Description  Deriva las líneas de entrada de la receta de la variante (cantidad deseada × cantidad de receta) y agrega la línea de salida por la variante objetivo.
// @Tags         conversions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateFromTemplateRequest  true  "template_variant_id, output_variant_id, quantity entera > 0"
// @Success      201   {object}  dto.ConversionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/conversions/from-template [post]
func (h *ConversionHandler) CreateFromTemplate(c *fiber.Ctx) error {
	var in dto.CreateFromTemplateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	conv, err := h.uc.CreateFromTemplate(c.Context(), conversionActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return h.respondWithConversion(c, fiber.StatusCreated, conv.ID)
}

// GetByID godoc
// @Summary      Obtener conversión con sus líneas
// @Tags         conversions
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "Conversion ID"
// @Success      200  {object}  dto.ConversionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/conversions/{id} [get]
func (h *ConversionHandler) GetByID(c *fiber.Ctx) error {
	return h.respondWithConversion(c, fiber.StatusOK, c.Params("id"))
}

// List godoc
// @Summary      Listar conversiones
// @Tags         conversions
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "DRAFT | PENDING | APPROVED | CANCELLED"
// @Param        from    query  string  false  "fecha inicial (RFC3339)"
// @Param        to      query  string  false  "fecha final (RFC3339)"
// @Param        limit   query  int     false  "máx. resultados (default 20)"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {array}   dto.ConversionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/conversions [get]
func (h *ConversionHandler) List(c *fiber.Ctx) error {
	var q dto.ConversionListQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	conversions, err := h.uc.List(q)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.ConversionResponse, 0, len(conversions))
	for _, conv := range conversions {
		out = append(out, conversionResponse(conv, nil, nil))
	}
	return c.JSON(out)
}

// Stats godoc
// @Summary      Agregados del flujo de conversión
// @Tags         conversions
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ConversionStatsResponse
// @Router       /api/conversions/stats [get]
func (h *ConversionHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.uc.Stats()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ConversionStatsResponse{
		CountByStatus:      stats.CountByStatus,
		TotalApprovedCost:  stats.TotalApprovedCost,
		TotalApprovedValue: stats.TotalApprovedValue,
		LastApprovedAt:     stats.LastApprovedAt,
	})
}

// Submit godoc
// @Summary      Enviar a aprobación (DRAFT → PENDING)
// @Description  Exige al menos una línea por lado y revalida el stock de cada ingrediente.
// @Tags         conversions
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "Conversion ID"
// @Success      200  {object}  dto.ConversionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/conversions/{id}/submit [post]
func (h *ConversionHandler) Submit(c *fiber.Ctx) error {
	conv, err := h.uc.SubmitForApproval(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return h.respondWithConversion(c, fiber.StatusOK, conv.ID)
}

// Approve godoc
// @Summary      Aprobar conversión (PENDING → APPROVED)
// @Description  Transfiere stock de forma atómica: debita insumos, acredita producto terminado y escribe los movimientos de ambos lados.
// @Tags         conversions
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "Conversion ID"
// @Success      200  {object}  dto.ConversionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/conversions/{id}/approve [post]
func (h *ConversionHandler) Approve(c *fiber.Ctx) error {
	conv, err := h.uc.Approve(c.Context(), conversionActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return h.respondWithConversion(c, fiber.StatusOK, conv.ID)
}

// Cancel godoc
// @Summary      Cancelar conversión (DRAFT|PENDING → CANCELLED)
// @Tags         conversions
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "Conversion ID"
// @Success      200  {object}  dto.ConversionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/conversions/{id}/cancel [post]
func (h *ConversionHandler) Cancel(c *fiber.Ctx) error {
	conv, err := h.uc.Cancel(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return h.respondWithConversion(c, fiber.StatusOK, conv.ID)
}

// Delete godoc
// @Summary      Borrar conversión (solo DRAFT o CANCELLED)
// @Tags         conversions
// @Security     Bearer
// @Param        id   path  string  true  "Conversion ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/conversions/{id} [delete]
func (h *ConversionHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddInputItem agrega una línea de consumo a un borrador.
// @Summary      Agregar línea de consumo
// @Tags         conversions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "Conversion ID"
// @Param        body  body  dto.AddInputItemRequest  true  "input_variant_id, quantity > 0"
// @Success      201   {object}  dto.ConversionInputItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/conversions/{id}/inputs [post]
func (h *ConversionHandler) AddInputItem(c *fiber.Ctx) error {
	var in dto.AddInputItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.uc.AddInputItem(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(inputItemResponse(item))
}

// UpdateInputItem cambia la cantidad de una línea de consumo.
// @Summary      Actualizar línea de consumo
// @Tags         conversions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id      path  string                 true  "Conversion ID"
// @Param        itemId  path  string                 true  "Item ID"
// @Param        body    body  dto.UpdateItemRequest  true  "quantity > 0"
// @Success      200     {object}  dto.ConversionInputItemResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      409     {object}  dto.ErrorResponse
// @Router       /api/conversions/{id}/inputs/{itemId} [put]
func (h *ConversionHandler) UpdateInputItem(c *fiber.Ctx) error {
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.uc.UpdateInputItem(c.Params("id"), c.Params("itemId"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(inputItemResponse(item))
}

// RemoveInputItem quita una línea de consumo de un borrador.
// @Summary      Quitar línea de consumo
// @Tags         conversions
// @Security     Bearer
// @Param        id      path  string  true  "Conversion ID"
// @Param        itemId  path  string  true  "Item ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/conversions/{id}/inputs/{itemId} [delete]
func (h *ConversionHandler) RemoveInputItem(c *fiber.Ctx) error {
	if err := h.uc.RemoveInputItem(c.Params("id"), c.Params("itemId")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddOutputItem agrega una línea de producción a un borrador.
// @Summary      Agregar línea de producción
// @Tags         conversions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "Conversion ID"
// @Param        body  body  dto.AddOutputItemRequest  true  "variant_id, quantity > 0, unit_price opcional"
// @Success      201   {object}  dto.ConversionOutputItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/conversions/{id}/outputs [post]
func (h *ConversionHandler) AddOutputItem(c *fiber.Ctx) error {
	var in dto.AddOutputItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.uc.AddOutputItem(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(outputItemResponse(item))
}

// UpdateOutputItem cambia la cantidad de una línea de producción.
// @Summary      Actualizar línea de producción
// @Tags         conversions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id      path  string                 true  "Conversion ID"
// @Param        itemId  path  string                 true  "Item ID"
// @Param        body    body  dto.UpdateItemRequest  true  "quantity > 0"
// @Success      200     {object}  dto.ConversionOutputItemResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      409     {object}  dto.ErrorResponse
// @Router       /api/conversions/{id}/outputs/{itemId} [put]
func (h *ConversionHandler) UpdateOutputItem(c *fiber.Ctx) error {
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.uc.UpdateOutputItem(c.Params("id"), c.Params("itemId"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(outputItemResponse(item))
}

// RemoveOutputItem quita una línea de producción de un borrador.
// @Summary      Quitar línea de producción
// @Tags         conversions
// @Security     Bearer
// @Param        id      path  string  true  "Conversion ID"
// @Param        itemId  path  string  true  "Item ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/conversions/{id}/outputs/{itemId} [delete]
func (h *ConversionHandler) RemoveOutputItem(c *fiber.Ctx) error {
	if err := h.uc.RemoveOutputItem(c.Params("id"), c.Params("itemId")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// PDF godoc
// @Summary      Comprobante PDF de la conversión
// @Tags         conversions
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "Conversion ID"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/conversions/{id}/pdf [get]
func (h *ConversionHandler) PDF(c *fiber.Ctx) error {
	data, err := h.pdfUC.GeneratePDF(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `inline; filename="conversion.pdf"`)
	return c.Send(data)
}
