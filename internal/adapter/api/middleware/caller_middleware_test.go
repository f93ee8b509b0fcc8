package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestIdentify(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"default caller", "", "owner-1"},
		{"header override", "uid-9", "uid-9"},
		{"blank header", "   ", "owner-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/v1/listings", nil)
			if tt.header != "" {
				req.Header.Set(CallerHeader, tt.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			var got string
			h := NewCallerMiddleware("owner-1").Identify(func(c echo.Context) error {
				got, _ = c.Get("uid").(string)
				return c.NoContent(http.StatusOK)
			})

			if assert.NoError(t, h(c)) {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
