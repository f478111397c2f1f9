package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appconversion "github.com/tu-usuario/insumos-api/internal/application/conversion"
	"github.com/tu-usuario/insumos-api/internal/application/inventory"
	"github.com/tu-usuario/insumos-api/internal/application/recipe"
	infrapdf "github.com/tu-usuario/insumos-api/internal/infrastructure/pdf"
	"github.com/tu-usuario/insumos-api/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/insumos-api/internal/interfaces/http"
	"github.com/tu-usuario/insumos-api/pkg/config"
	"github.com/tu-usuario/insumos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	inputRepo := postgres.NewInputRepository(pool)
	batchRepo := postgres.NewInputBatchRepository(pool)
	movementRepo := postgres.NewInputBatchMovementRepository(pool)
	inputVariantRepo := postgres.NewInputVariantRepository(pool)
	templateVarRepo := postgres.NewTemplateVariantRepository(pool)
	recipeRepo := postgres.NewTemplateRecipeRepository(pool)
	conversionRepo := postgres.NewConversionRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	inputUC := inventory.NewInputUseCase(inputRepo)
	aggregator := inventory.NewStockAggregator(txRunner, inputRepo)
	batchUC := inventory.NewBatchUseCase(txRunner, inputRepo, batchRepo, movementRepo)
	recipeUC := recipe.NewUseCase(recipeRepo, inputVariantRepo, templateVarRepo, inputRepo)
	conversionUC := appconversion.NewUseCase(
		txRunner, conversionRepo, inputVariantRepo, templateVarRepo, recipeRepo, inputRepo,
	)

	// PDF: comprobante imprimible de la conversión
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	pdfUC := appconversion.NewPDFUseCase(conversionUC, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Insumos API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		InputUC:      inputUC,
		Aggregator:   aggregator,
		BatchUC:      batchUC,
		RecipeUC:     recipeUC,
		ConversionUC: conversionUC,
		PDFUC:        pdfUC,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
