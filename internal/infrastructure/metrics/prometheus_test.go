package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestManagerCountsOutcomes(t *testing.T) {
	m := NewManager("test")

	m.ObserveOperation("create", time.Now(), nil)
	m.ObserveOperation("create", time.Now(), errors.New("boom"))
	m.ObserveUpload(nil)
	m.ObserveImportRow(errors.New("unknown category"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.listingOperations.WithLabelValues("create", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.listingOperations.WithLabelValues("create", OutcomeFailure)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.assetUploads.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.importRows.WithLabelValues(OutcomeFailure)))
}

func TestNilManagerIsNoop(t *testing.T) {
	var m *Manager

	assert.NotPanics(t, func() {
		m.ObserveOperation("delete", time.Now(), nil)
		m.ObserveUpload(nil)
		m.ObserveImportRow(nil)
	})
}
