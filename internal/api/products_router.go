package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"

	"github.com/AutoJunjie/aidlc-AWSomeShop/internal/api/handler"
	"github.com/AutoJunjie/aidlc-AWSomeShop/internal/api/middleware"
	"github.com/AutoJunjie/aidlc-AWSomeShop/internal/core/ports"
	healthhandlers "github.com/AutoJunjie/aidlc-AWSomeShop/internal/infrastructure/http/handlers"
)

// NewProductsRouter builds the Echo instance for the products service. Token
// verification is delegated to the auth service through verifier; this
// service never sees the signing secret.
func NewProductsRouter(
	productService ports.ProductService,
	verifier middleware.TokenVerifier,
	maxUploadBytes int64,
	readinessChecks map[string]healthhandlers.CheckFunc,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("products_service"))

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	productHandler := handler.NewProductHandler(productService, maxUploadBytes)
	guard := middleware.RemoteAuth(verifier)
	admin := middleware.RequireAdmin()

	// --- Catalog routes ---
	products := e.Group("/api/products", guard)
	products.GET("", productHandler.List)
	products.GET("/:id", productHandler.Get)
	products.POST("", productHandler.Create, admin)
	products.PUT("/:id", productHandler.Update, admin)
	products.DELETE("/:id", productHandler.Delete, admin)
	products.POST("/:id/image", productHandler.UploadImage, admin)

	// Service-to-service read path, trusted network only.
	e.GET("/internal/products/:id", productHandler.Get)

	// --- Health probes (no auth required) ---
	healthHandler := healthhandlers.NewHealthHandler()
	readinessHandler := healthhandlers.NewReadinessHandler(readinessChecks)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
