package utils

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Page is a 1-based page request read from the page and limit query params.
type Page struct {
	Number int
	Size   int
}

// PageFromQuery reads page and limit. Missing or invalid values fall back to
// page 1 and the default size; limit is capped at maxPageSize.
func PageFromQuery(c echo.Context) Page {
	number, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("limit"))

	if number <= 0 {
		number = 1
	}
	if size <= 0 || size > maxPageSize {
		size = defaultPageSize
	}

	return Page{Number: number, Size: size}
}

// Bounds returns the [start, end) window of the page over total items,
// clamped so it can slice a collection of that length directly.
func (p Page) Bounds(total int) (start, end int) {
	start = (p.Number - 1) * p.Size
	if start > total {
		start = total
	}
	end = start + p.Size
	if end > total {
		end = total
	}
	return start, end
}
