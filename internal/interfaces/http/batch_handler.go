package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/insumos-api/internal/application/dto"
	"github.com/tu-usuario/insumos-api/internal/application/inventory"
	"github.com/tu-usuario/insumos-api/internal/domain/entity"
)

// BatchHandler maneja las peticiones HTTP del libro de lotes (protegido).
type BatchHandler struct {
	uc *inventory.BatchUseCase
}

// NewBatchHandler construye el handler.
func NewBatchHandler(uc *inventory.BatchUseCase) *BatchHandler {
	return &BatchHandler{uc: uc}
}

func actorFrom(c *fiber.Ctx) inventory.Actor {
	return inventory.Actor{ID: GetUserID(c), Name: GetUserName(c)}
}

func batchResponse(b *entity.InputBatch) dto.BatchResponse {
	return dto.BatchResponse{
		ID:                b.ID,
		InputID:           b.InputID,
		BatchNumber:       b.BatchNumber,
		InitialQuantity:   b.InitialQuantity,
		CurrentQuantity:   b.CurrentQuantity,
		ReservedQuantity:  b.ReservedQuantity,
		AvailableQuantity: b.AvailableQuantity(),
		UnitCost:          b.UnitCost,
		TotalCost:         b.TotalCost(),
		PurchaseDate:      b.PurchaseDate,
		ExpiryDate:        b.ExpiryDate,
		IsActive:          b.IsActive,
		CreatedAt:         b.CreatedAt,
	}
}

func movementResponses(movements []*entity.InputBatchMovement) []dto.MovementResponse {
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.MovementResponse{
			ID:            m.ID,
			InputID:       m.InputID,
			BatchID:       m.BatchID,
			Type:          m.Type,
			Quantity:      m.Quantity,
			Reason:        m.Reason,
			Reference:     m.Reference,
			CreatedAt:     m.CreatedAt,
			CreatedByName: m.CreatedByName,
		})
	}
	return out
}

// Create godoc
// @Summary      Registrar entrada de mercancía (lote nuevo)
// @Tags         batches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "Input ID"
// @Param        body  body  dto.CreateBatchRequest  true  "batch_number, quantity, unit_cost, fechas"
// @Success      201   {object}  dto.BatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inputs/{id}/batches [post]
func (h *BatchHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	batch, err := h.uc.CreateBatch(c.Context(), actorFrom(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(batchResponse(batch))
}

// GetByID godoc
// @Summary      Obtener lote por ID
// @Tags         batches
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "Batch ID"
// @Success      200  {object}  dto.BatchResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/batches/{id} [get]
func (h *BatchHandler) GetByID(c *fiber.Ctx) error {
	batch, err := h.uc.GetBatch(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(batchResponse(batch))
}

// Update godoc
// @Summary      Actualizar metadatos del lote
// @Description  Las cantidades solo se mueven vía ajuste/reserva/liberación/salida.
// @Tags         batches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "Batch ID"
// @Param        body  body  dto.UpdateBatchRequest  true  "campos opcionales"
// @Success      200   {object}  dto.BatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/batches/{id} [put]
func (h *BatchHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	batch, err := h.uc.UpdateBatch(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(batchResponse(batch))
}

// ListByInput godoc
// @Summary      Listar lotes de un insumo
// @Tags         batches
// @Security     Bearer
// @Produce      json
// @Param        id           path   string  true   "Input ID"
// @Param        active_only  query  bool    false  "solo lotes activos"
// @Success      200  {array}   dto.BatchResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inputs/{id}/batches [get]
func (h *BatchHandler) ListByInput(c *fiber.Ctx) error {
	batches, err := h.uc.ListBatchesByInput(c.Params("id"), c.QueryBool("active_only"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.BatchResponse, 0, len(batches))
	for _, b := range batches {
		out = append(out, batchResponse(b))
	}
	return c.JSON(out)
}

// Adjust godoc
// @Summary      Ajustar cantidad del lote
// @Description  Fija current_quantity en el valor indicado (reconteo o daño) y registra un AJUSTE.
// @Tags         batches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "Batch ID"
// @Param        body  body  dto.AdjustQuantityRequest  true  "new_quantity, reason"
// @Success      200   {object}  dto.BatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/batches/{id}/adjust [post]
func (h *BatchHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	batch, err := h.uc.AdjustQuantity(c.Context(), actorFrom(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(batchResponse(batch))
}

// Reserve godoc
// @Summary      Reservar stock del lote
// @Description  Aparta unidades para una orden: salen del pool gastable y quedan como reservadas.
// @Tags         batches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "Batch ID"
// @Param        body  body  dto.ReserveRequest  true  "quantity, order_ref"
// @Success      200   {object}  dto.BatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/batches/{id}/reserve [post]
func (h *BatchHandler) Reserve(c *fiber.Ctx) error {
	var in dto.ReserveRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	batch, err := h.uc.Reserve(c.Context(), actorFrom(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(batchResponse(batch))
}

// Release godoc
// @Summary      Liberar una reserva del lote
// @Tags         batches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "Batch ID"
// @Param        body  body  dto.ReserveRequest  true  "quantity, order_ref"
// @Success      200   {object}  dto.BatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/batches/{id}/release [post]
func (h *BatchHandler) Release(c *fiber.Ctx) error {
	var in dto.ReserveRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	batch, err := h.uc.Release(c.Context(), actorFrom(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(batchResponse(batch))
}

// Output godoc
// @Summary      Registrar salida definitiva de lo reservado
// @Tags         batches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "Batch ID"
// @Param        body  body  dto.OutputRequest  true  "quantity, production_ref"
// @Success      200   {object}  dto.BatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/batches/{id}/output [post]
func (h *BatchHandler) Output(c *fiber.Ctx) error {
	var in dto.OutputRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	batch, err := h.uc.RecordOutput(c.Context(), actorFrom(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(batchResponse(batch))
}

// MovementsByInput godoc
// @Summary      Libro de movimientos de un insumo
// @Tags         batches
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "Input ID"
// @Param        from    query  string  false  "fecha inicial (RFC3339)"
// @Param        to      query  string  false  "fecha final (RFC3339)"
// @Param        limit   query  int     false  "máx. resultados (default 20)"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/inputs/{id}/movements [get]
func (h *BatchHandler) MovementsByInput(c *fiber.Ctx) error {
	var q dto.ListMovementsQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	movements, err := h.uc.ListMovementsByInput(c.Params("id"), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(movementResponses(movements))
}

// MovementsByBatch godoc
// @Summary      Últimos movimientos de un lote
// @Tags         batches
// @Security     Bearer
// @Produce      json
// @Param        id     path   string  true   "Batch ID"
// @Param        limit  query  int     false  "máx. resultados (default 50)"
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/batches/{id}/movements [get]
func (h *BatchHandler) MovementsByBatch(c *fiber.Ctx) error {
	movements, err := h.uc.ListMovementsByBatch(c.Params("id"), c.QueryInt("limit"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(movementResponses(movements))
}
