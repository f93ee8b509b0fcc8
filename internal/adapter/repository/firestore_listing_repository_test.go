package repository

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"tabadul/internal/domain/entity"
)

func TestViewCountAcceptsLegacyShapes(t *testing.T) {
	assert.Equal(t, 12, viewCount(int64(12)))
	assert.Equal(t, 3, viewCount(float64(3)))
	assert.Equal(t, 2, viewCount([]interface{}{"u1", "u2"}))
	assert.Equal(t, 0, viewCount(nil))
	assert.Equal(t, 0, viewCount("many"))
}

func TestPriceValueAcceptsLegacyShapes(t *testing.T) {
	assert.Equal(t, 1500.0, priceValue(int64(1500)))
	assert.Equal(t, 99.5, priceValue(99.5))
	assert.Equal(t, 2500.0, priceValue("2500"))
	assert.Equal(t, 12.75, priceValue(" 12.75 "))
	assert.Equal(t, 0.0, priceValue("call me"))
	assert.Equal(t, 0.0, priceValue("NaN"))
	assert.Equal(t, 0.0, priceValue(math.Inf(1)))
	assert.Equal(t, 0.0, priceValue(nil))
	assert.Equal(t, 0.0, priceValue(true))
}

func TestListingDocumentNeverStoresNilArrays(t *testing.T) {
	doc := toListingDocument(&entity.Listing{Title: "Camry", OwnerID: "u1", Views: 4})

	assert.Equal(t, "u1", doc.UserID)
	assert.Equal(t, int64(4), doc.Views)
	assert.Equal(t, 0.0, doc.Price)
	assert.NotNil(t, doc.Tags)
	assert.NotNil(t, doc.ImageURLs)
	assert.NotNil(t, doc.Likes)
	assert.NotNil(t, doc.Complaints)
}
