package router

import (
	"github.com/labstack/echo/v4"

	"tabadul/internal/adapter/api/handler"
)

func SetupListingRouter(v1 *echo.Group) {
	listingHandler := handler.GetListingHandler()
	bulkHandler := handler.GetBulkHandler()

	listings := v1.Group("/listings")
	listings.GET("", listingHandler.ListListings)
	listings.POST("", listingHandler.CreateListing)

	listings.GET("/export", bulkHandler.ExportListings)
	listings.POST("/import", bulkHandler.ImportListings)

	listings.GET("/:id", listingHandler.GetListing)
	listings.PUT("/:id", listingHandler.UpdateListing)
	listings.DELETE("/:id", listingHandler.DeleteListing)
}
