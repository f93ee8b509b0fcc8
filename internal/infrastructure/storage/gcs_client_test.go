package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDownloadURLEscapesKeyAsOneSegment(t *testing.T) {
	url := DownloadURL("tabadul-plus.firebasestorage.app", "postImages/1700000000000_my car.jpg", "tok")

	assert.Equal(t,
		"https://firebasestorage.googleapis.com/v0/b/tabadul-plus.firebasestorage.app/o/postImages%2F1700000000000_my%20car.jpg?alt=media&token=tok",
		url)
}
