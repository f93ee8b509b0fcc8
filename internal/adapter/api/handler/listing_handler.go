package handler

import (
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"tabadul/internal/domain/entity"
	"tabadul/internal/usecase"
	"tabadul/pkg/errors"
	"tabadul/pkg/logger"
	"tabadul/pkg/response"
	"tabadul/pkg/utils"
)

type ListingHandler struct {
	catalogUseCase *usecase.CatalogUseCase
	maxFileSize    int64
}

func NewListingHandler(catalogUseCase *usecase.CatalogUseCase, maxFileSize int64) *ListingHandler {
	return &ListingHandler{
		catalogUseCase: catalogUseCase,
		maxFileSize:    maxFileSize,
	}
}

type listQuery struct {
	Q     string `query:"q"`
	Sort  string `query:"sort" validate:"omitempty,oneof=title price modelYear createdAt category"`
	Order string `query:"order" validate:"omitempty,oneof=asc desc"`
}

func (q listQuery) toListingQuery() usecase.ListingQuery {
	return usecase.ListingQuery{
		TextFilter: q.Q,
		SortKey:    q.Sort,
		SortOrder:  usecase.SortOrder(q.Order),
	}
}

// listingForm mirrors the posts document field names so admin forms can post
// them as-is.
type listingForm struct {
	Title         string   `form:"title" validate:"required"`
	Description   string   `form:"description"`
	Category      string   `form:"category"`
	Tags          []string `form:"tags"`
	Price         float64  `form:"price"`
	ModelYear     string   `form:"modelYear"`
	ContactNumber string   `form:"contactNumber"`
	ImageURLs     []string `form:"imageUrls"`
	IsFeatured    bool     `form:"isFeatured"`
	UserID        string   `form:"userId"`
	Latitude      string   `form:"latitude"`
	Longitude     string   `form:"longitude"`
}

func (f listingForm) toDraft(callerID string) (entity.ListingDraft, error) {
	draft := entity.ListingDraft{
		Title:         f.Title,
		Description:   f.Description,
		Category:      f.Category,
		Tags:          splitValues(f.Tags),
		Price:         f.Price,
		ContactNumber: f.ContactNumber,
		ImageURLs:     splitValues(f.ImageURLs),
		IsFeatured:    f.IsFeatured,
		OwnerID:       f.UserID,
	}
	if draft.OwnerID == "" {
		draft.OwnerID = callerID
	}

	if f.ModelYear != "" {
		year, err := strconv.Atoi(f.ModelYear)
		if err != nil {
			return draft, errors.Validation("modelYear", "model year must be a number")
		}
		draft.ModelYear = &year
	}

	if f.Latitude != "" || f.Longitude != "" {
		lat, latErr := strconv.ParseFloat(f.Latitude, 64)
		lng, lngErr := strconv.ParseFloat(f.Longitude, 64)
		if latErr != nil || lngErr != nil {
			return draft, errors.Validation("location", "latitude and longitude must both be numbers")
		}
		draft.Location = &entity.Location{Latitude: lat, Longitude: lng}
	}

	return draft, nil
}

// splitValues accepts both repeated form keys and a single comma separated
// value.
func splitValues(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func callerID(c echo.Context) string {
	if uid, ok := c.Get("uid").(string); ok {
		return uid
	}
	return ""
}

func (h *ListingHandler) ListListings(c echo.Context) error {
	var q listQuery
	if err := c.Bind(&q); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&q); err != nil {
		return response.Error(c, err)
	}

	listings, err := h.catalogUseCase.Browse(c.Request().Context(), q.toListingQuery())
	if err != nil {
		return response.Error(c, err)
	}

	page := utils.PageFromQuery(c)
	start, end := page.Bounds(len(listings))

	return response.Paginated(c, listings[start:end], int64(len(listings)), page.Number, page.Size)
}

func (h *ListingHandler) GetListing(c echo.Context) error {
	listing, err := h.catalogUseCase.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listing)
}

func (h *ListingHandler) CreateListing(c echo.Context) error {
	draft, files, err := h.readListing(c)
	if err != nil {
		return response.Error(c, err)
	}
	defer closeAll(files)

	listing, err := h.catalogUseCase.Create(c.Request().Context(), draft, imageFiles(files))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, listing)
}

func (h *ListingHandler) UpdateListing(c echo.Context) error {
	draft, files, err := h.readListing(c)
	if err != nil {
		return response.Error(c, err)
	}
	defer closeAll(files)

	listing, err := h.catalogUseCase.Update(c.Request().Context(), c.Param("id"), draft, imageFiles(files))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listing)
}

func (h *ListingHandler) DeleteListing(c echo.Context) error {
	id := c.Param("id")
	if err := h.catalogUseCase.Delete(c.Request().Context(), id); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"id":      id,
		"message": "Listing deleted successfully",
	})
}

type openedFile struct {
	name        string
	contentType string
	body        multipart.File
}

func imageFiles(files []openedFile) []usecase.ImageFile {
	out := make([]usecase.ImageFile, len(files))
	for i, f := range files {
		out[i] = usecase.ImageFile{Name: f.name, ContentType: f.contentType, Body: f.body}
	}
	return out
}

func closeAll(files []openedFile) {
	for _, f := range files {
		f.body.Close()
	}
}

// readListing binds the form fields and opens the "images" parts in the order
// they were sent.
func (h *ListingHandler) readListing(c echo.Context) (entity.ListingDraft, []openedFile, error) {
	var form listingForm
	if err := c.Bind(&form); err != nil {
		return entity.ListingDraft{}, nil, err
	}
	if err := c.Validate(&form); err != nil {
		return entity.ListingDraft{}, nil, err
	}

	draft, err := form.toDraft(callerID(c))
	if err != nil {
		return draft, nil, err
	}

	mf, err := c.MultipartForm()
	if err != nil {
		// urlencoded bodies carry no files
		return draft, nil, nil
	}

	headers := mf.File["images"]
	files := make([]openedFile, 0, len(headers))
	for _, fh := range headers {
		if fh.Size > h.maxFileSize {
			closeAll(files)
			logger.Warn("Image too large: %s (%d bytes)", fh.Filename, fh.Size)
			return draft, nil, errors.BadRequest(fmt.Sprintf("%s exceeds maximum allowed size (%dMB)", fh.Filename, h.maxFileSize/(1024*1024)), nil)
		}

		src, err := fh.Open()
		if err != nil {
			closeAll(files)
			return draft, nil, errors.Internal("Unable to read file", err)
		}
		files = append(files, openedFile{
			name:        fh.Filename,
			contentType: fh.Header.Get("Content-Type"),
			body:        src,
		})
	}

	return draft, files, nil
}
