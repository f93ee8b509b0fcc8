package handler

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"

	"tabadul/internal/usecase"
	"tabadul/pkg/errors"
	"tabadul/pkg/response"
)

// maxImportSize caps the uploaded import sheet.
const maxImportSize = 20 << 20

type BulkHandler struct {
	catalogUseCase *usecase.CatalogUseCase
	bulkUseCase    *usecase.BulkUseCase
}

func NewBulkHandler(catalogUseCase *usecase.CatalogUseCase, bulkUseCase *usecase.BulkUseCase) *BulkHandler {
	return &BulkHandler{
		catalogUseCase: catalogUseCase,
		bulkUseCase:    bulkUseCase,
	}
}

type exportQuery struct {
	listQuery
	Format  string `query:"format" validate:"omitempty,oneof=csv xlsx"`
	Profile string `query:"profile" validate:"omitempty,oneof=minimal full"`
}

// ExportListings accepts the same filter and sort parameters as the listing
// index.
func (h *BulkHandler) ExportListings(c echo.Context) error {
	var q exportQuery
	if err := c.Bind(&q); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&q); err != nil {
		return response.Error(c, err)
	}

	format, err := usecase.ParseTableFormat(q.Format)
	if err != nil {
		return response.Error(c, err)
	}
	columns, err := usecase.ColumnsForProfile(q.Profile)
	if err != nil {
		return response.Error(c, err)
	}

	listings, err := h.catalogUseCase.Browse(c.Request().Context(), q.toListingQuery())
	if err != nil {
		return response.Error(c, err)
	}

	blob, err := h.bulkUseCase.Export(listings, columns, format)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Blob(c, format.ContentType(), "listings."+string(format), blob)
}

func (h *BulkHandler) ImportListings(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return response.Error(c, errors.BadRequest("Missing or invalid file", err))
	}
	if fh.Size > maxImportSize {
		return response.Error(c, errors.BadRequest("Import file too large", nil))
	}

	formatName := c.FormValue("format")
	if formatName == "" {
		formatName = strings.TrimPrefix(strings.ToLower(filepath.Ext(fh.Filename)), ".")
	}
	format, err := usecase.ParseTableFormat(formatName)
	if err != nil {
		return response.Error(c, err)
	}

	src, err := fh.Open()
	if err != nil {
		return response.Error(c, errors.Internal("Unable to read file", err))
	}
	defer src.Close()

	blob, err := io.ReadAll(src)
	if err != nil {
		return response.Error(c, errors.Internal("Unable to read file", err))
	}

	report, err := h.bulkUseCase.Import(c.Request().Context(), blob, format)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, report)
}
