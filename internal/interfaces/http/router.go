package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/insumos-api/internal/application/conversion"
	"github.com/tu-usuario/insumos-api/internal/application/inventory"
	"github.com/tu-usuario/insumos-api/internal/application/recipe"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	InputUC      *inventory.InputUseCase
	Aggregator   *inventory.StockAggregator
	BatchUC      *inventory.BatchUseCase
	RecipeUC     *recipe.UseCase
	ConversionUC *conversion.UseCase
	PDFUC        *conversion.PDFUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Insumos y agregador de stock
	inputs := protected.Group("/inputs")
	inputHandler := NewInputHandler(deps.InputUC, deps.Aggregator)
	inputs.Post("/", inputHandler.Create)
	inputs.Get("/", inputHandler.List)
	inputs.Get("/low-stock", inputHandler.ListLowStock)
	inputs.Get("/:id", inputHandler.GetByID)
	inputs.Put("/:id", inputHandler.Update)
	inputs.Post("/:id/recalculate", inputHandler.Recalculate)

	// Libro de lotes
	batchHandler := NewBatchHandler(deps.BatchUC)
	inputs.Post("/:id/batches", batchHandler.Create)
	inputs.Get("/:id/batches", batchHandler.ListByInput)
	inputs.Get("/:id/movements", batchHandler.MovementsByInput)

	batches := protected.Group("/batches")
	batches.Get("/:id", batchHandler.GetByID)
	batches.Put("/:id", batchHandler.Update)
	batches.Post("/:id/adjust", batchHandler.Adjust)
	batches.Post("/:id/reserve", batchHandler.Reserve)
	batches.Post("/:id/release", batchHandler.Release)
	batches.Post("/:id/output", batchHandler.Output)
	batches.Get("/:id/movements", batchHandler.MovementsByBatch)

	// Recetas y disponibilidad
	recipeHandler := NewRecipeHandler(deps.RecipeUC)
	recipes := protected.Group("/recipes")
	recipes.Put("/", recipeHandler.Upsert)
	recipes.Delete("/:id", recipeHandler.Delete)

	variants := protected.Group("/variants")
	variants.Get("/:id/recipes", recipeHandler.ListByVariant)
	variants.Get("/:id/available-stock", recipeHandler.AvailableStock)

	templates := protected.Group("/templates")
	templates.Get("/:id/recipes", recipeHandler.ListByProduct)
	templates.Get("/:id/available-stock", recipeHandler.AvailableStockForProduct)
	templates.Post("/:id/associate-inputs", recipeHandler.AssociateInputs)

	// Conversiones
	conversionHandler := NewConversionHandler(deps.ConversionUC, deps.PDFUC)
	conversions := protected.Group("/conversions")
	conversions.Post("/", conversionHandler.Create)
	conversions.Post("/from-template", conversionHandler.CreateFromTemplate)
	conversions.Get("/", conversionHandler.List)
	conversions.Get("/stats", conversionHandler.Stats)
	conversions.Get("/:id", conversionHandler.GetByID)
	conversions.Delete("/:id", conversionHandler.Delete)
	conversions.Post("/:id/submit", conversionHandler.Submit)
	conversions.Post("/:id/approve", conversionHandler.Approve)
	conversions.Post("/:id/cancel", conversionHandler.Cancel)
	conversions.Get("/:id/pdf", conversionHandler.PDF)
	conversions.Post("/:id/inputs", conversionHandler.AddInputItem)
	conversions.Put("/:id/inputs/:itemId", conversionHandler.UpdateInputItem)
	conversions.Delete("/:id/inputs/:itemId", conversionHandler.RemoveInputItem)
	conversions.Post("/:id/outputs", conversionHandler.AddOutputItem)
	conversions.Put("/:id/outputs/:itemId", conversionHandler.UpdateOutputItem)
	conversions.Delete("/:id/outputs/:itemId", conversionHandler.RemoveOutputItem)
}
