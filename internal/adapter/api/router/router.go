package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"tabadul/internal/adapter/api/middleware"
)

func Setup(e *echo.Echo, callerMiddleware *middleware.CallerMiddleware, metricsHandler http.Handler) {
	v1 := e.Group("/v1")
	v1.Use(callerMiddleware.Identify)

	SetupListingRouter(v1)
	SetupReferenceRouter(v1)
	SetupQuickAddRouter(v1)
	SetupHealthRouter(e, metricsHandler)
}
