package router

import (
	"github.com/labstack/echo/v4"

	"tabadul/internal/adapter/api/handler"
)

func SetupReferenceRouter(v1 *echo.Group) {
	referenceHandler := handler.GetReferenceHandler()

	v1.GET("/reference", referenceHandler.GetReference)
	v1.POST("/reference/reload", referenceHandler.ReloadReference)
}

func SetupQuickAddRouter(v1 *echo.Group) {
	quickAddHandler := handler.GetQuickAddHandler()

	v1.POST("/quick-add/:kind", quickAddHandler.Add)
}
