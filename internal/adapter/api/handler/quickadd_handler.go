package handler

import (
	"github.com/labstack/echo/v4"

	"tabadul/internal/usecase"
	"tabadul/pkg/errors"
	"tabadul/pkg/response"
)

type QuickAddHandler struct {
	quickAddUseCase *usecase.QuickAddUseCase
}

func NewQuickAddHandler(quickAddUseCase *usecase.QuickAddUseCase) *QuickAddHandler {
	return &QuickAddHandler{
		quickAddUseCase: quickAddUseCase,
	}
}

// Add takes a flat JSON object of string fields; the kind path parameter
// selects the entity type.
func (h *QuickAddHandler) Add(c echo.Context) error {
	fields := map[string]string{}
	if err := c.Echo().JSONSerializer.Deserialize(c, &fields); err != nil {
		return response.Error(c, errors.BadRequest("Body must be a JSON object of string fields", err))
	}

	result, err := h.quickAddUseCase.Add(c.Request().Context(), c.Param("kind"), fields)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, result)
}
