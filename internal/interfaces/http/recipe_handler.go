package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/insumos-api/internal/application/dto"
	"github.com/tu-usuario/insumos-api/internal/application/recipe"
	"github.com/tu-usuario/insumos-api/internal/domain/entity"
)

// RecipeHandler maneja la lista de materiales y las consultas de
// disponibilidad (protegido).
type RecipeHandler struct {
	uc *recipe.UseCase
}

// NewRecipeHandler construye el handler.
func NewRecipeHandler(uc *recipe.UseCase) *RecipeHandler {
	return &RecipeHandler{uc: uc}
}

func recipeResponses(recipes []*entity.TemplateRecipe) []dto.RecipeResponse {
	out := make([]dto.RecipeResponse, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, dto.RecipeResponse{
			ID:             r.ID,
			ProductID:      r.ProductID,
			VariantID:      r.VariantID,
			InputVariantID: r.InputVariantID,
			Quantity:       r.Quantity,
		})
	}
	return out
}

// Upsert godoc
// @Summary      Crear o actualizar fila de receta
// @Description  Una fila por par (variante producible, variante de insumo); repetir el par actualiza la cantidad.
// @Tags         recipes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpsertRecipeRequest  true  "variant_id, input_variant_id, quantity > 0"
// @Success      200   {object}  dto.RecipeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/recipes [put]
func (h *RecipeHandler) Upsert(c *fiber.Ctx) error {
	var in dto.UpsertRecipeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	rec, err := h.uc.Upsert(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.RecipeResponse{
		ID:             rec.ID,
		ProductID:      rec.ProductID,
		VariantID:      rec.VariantID,
		InputVariantID: rec.InputVariantID,
		Quantity:       rec.Quantity,
	})
}

// ListByVariant godoc
// @Summary      Receta de una variante producible
// @Tags         recipes
// @Security     Bearer
// @Produce      json
// @Param        id   path     string  true  "Variant ID"
// @Success      200  {array}  dto.RecipeResponse
// @Router       /api/variants/{id}/recipes [get]
func (h *RecipeHandler) ListByVariant(c *fiber.Ctx) error {
	recipes, err := h.uc.ListByVariant(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(recipeResponses(recipes))
}

// ListByProduct godoc
// @Summary      Recetas de todas las variantes de una plantilla
// @Tags         recipes
// @Security     Bearer
// @Produce      json
// @Param        id   path     string  true  "Template ID"
// @Success      200  {array}  dto.RecipeResponse
// @Router       /api/templates/{id}/recipes [get]
func (h *RecipeHandler) ListByProduct(c *fiber.Ctx) error {
	recipes, err := h.uc.ListByProduct(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(recipeResponses(recipes))
}

// Delete godoc
// @Summary      Eliminar fila de receta
// @Tags         recipes
// @Security     Bearer
// @Param        id   path  string  true  "Recipe ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/recipes/{id} [delete]
func (h *RecipeHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AvailableStock godoc
// @Summary      Unidades producibles de una variante
// @Description  Mínimo de floor(stock del ingrediente / cantidad por unidad) sobre toda la receta; sin recetas la variante no es producible.
// @Tags         recipes
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "Variant ID"
// @Success      200  {object}  dto.AvailableStockResponse
// @Router       /api/variants/{id}/available-stock [get]
func (h *RecipeHandler) AvailableStock(c *fiber.Ctx) error {
	units, err := h.uc.AvailableStock(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.AvailableStockResponse{VariantID: c.Params("id"), AvailableUnits: units})
}

// AvailableStockForProduct godoc
// @Summary      Disponibilidad de todas las variantes de una plantilla
// @Tags         recipes
// @Security     Bearer
// @Produce      json
// @Param        id   path     string  true  "Template ID"
// @Success      200  {array}  dto.AvailableStockResponse
// @Router       /api/templates/{id}/available-stock [get]
func (h *RecipeHandler) AvailableStockForProduct(c *fiber.Ctx) error {
	out, err := h.uc.AvailableStockForAllVariants(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AssociateInputs godoc
// @Summary      Asociar insumos a una plantilla en masa
// @Description  Empareja variantes de insumo con las variantes de la plantilla por color/talla y crea las recetas (cantidad 1; se ajusta después con Upsert).
// @Tags         recipes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "Template ID"
// @Param        body  body  dto.AssociateInputsRequest true  "input_ids"
// @Success      200   {object}  dto.AssociateInputsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/templates/{id}/associate-inputs [post]
func (h *RecipeHandler) AssociateInputs(c *fiber.Ctx) error {
	var in dto.AssociateInputsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	created, err := h.uc.AssociateInputsToTemplate(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.AssociateInputsResponse{RecipesCreated: created})
}
