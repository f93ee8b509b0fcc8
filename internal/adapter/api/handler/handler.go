package handler

import (
	"tabadul/internal/usecase"
)

var (
	listingHandler   *ListingHandler
	bulkHandler      *BulkHandler
	referenceHandler *ReferenceHandler
	quickAddHandler  *QuickAddHandler
	healthHandler    *HealthHandler
)

func Setup(
	catalogUseCase *usecase.CatalogUseCase,
	bulkUseCase *usecase.BulkUseCase,
	quickAddUseCase *usecase.QuickAddUseCase,
	maxUploadSize int64,
) {
	listingHandler = NewListingHandler(catalogUseCase, maxUploadSize)
	bulkHandler = NewBulkHandler(catalogUseCase, bulkUseCase)
	referenceHandler = NewReferenceHandler(catalogUseCase.References())
	quickAddHandler = NewQuickAddHandler(quickAddUseCase)
	healthHandler = NewHealthHandler()
}

func GetListingHandler() *ListingHandler {
	return listingHandler
}

func GetBulkHandler() *BulkHandler {
	return bulkHandler
}

func GetReferenceHandler() *ReferenceHandler {
	return referenceHandler
}

func GetQuickAddHandler() *QuickAddHandler {
	return quickAddHandler
}

func GetHealthHandler() *HealthHandler {
	return healthHandler
}
