package handler

import (
	"github.com/labstack/echo/v4"

	"tabadul/internal/usecase"
	"tabadul/pkg/response"
)

type ReferenceHandler struct {
	refs *usecase.ReferenceCache
}

func NewReferenceHandler(refs *usecase.ReferenceCache) *ReferenceHandler {
	return &ReferenceHandler{
		refs: refs,
	}
}

func (h *ReferenceHandler) GetReference(c echo.Context) error {
	snap, err := h.refs.Snapshot(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, snap)
}

func (h *ReferenceHandler) ReloadReference(c echo.Context) error {
	snap, err := h.refs.Reload(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, snap)
}
