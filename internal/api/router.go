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

// NewAuthRouter builds the Echo instance for the auth service. Dependencies
// are constructed once in main and injected here.
func NewAuthRouter(
	authService ports.AuthService,
	readinessChecks map[string]healthhandlers.CheckFunc,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("auth_service"))

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(authService)
	guard := middleware.Auth(authService)

	e.POST("/api/auth/login", authHandler.Login)
	e.POST("/api/auth/register", authHandler.Register)
	e.GET("/api/auth/me", authHandler.Me, guard)
	e.POST("/api/auth/logout", authHandler.Logout, guard)
	e.GET("/api/auth/verify", authHandler.Verify) // soft contract, no guard

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
