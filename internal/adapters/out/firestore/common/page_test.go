// internal/adapters/out/firestore/common/page_test.go
package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePage(t *testing.T) {
	n, pp := NormalizePage(0, 0, 12, 100)
	assert.Equal(t, 1, n)
	assert.Equal(t, 12, pp)

	n, pp = NormalizePage(-3, 500, 12, 100)
	assert.Equal(t, 1, n)
	assert.Equal(t, 100, pp)

	n, pp = NormalizePage(4, 25, 12, 100)
	assert.Equal(t, 4, n)
	assert.Equal(t, 25, pp)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 1, TotalPages(0, 12))
	assert.Equal(t, 1, TotalPages(12, 12))
	assert.Equal(t, 2, TotalPages(13, 12))
	assert.Equal(t, 1, TotalPages(5, 0))
}

func TestSlicePage(t *testing.T) {
	lo, hi := SlicePage(25, 1, 10)
	assert.Equal(t, 0, lo)
	assert.Equal(t, 10, hi)

	lo, hi = SlicePage(25, 3, 10)
	assert.Equal(t, 20, lo)
	assert.Equal(t, 25, hi)

	// A page past the end is empty.
	lo, hi = SlicePage(25, 4, 10)
	assert.Equal(t, 25, lo)
	assert.Equal(t, 25, hi)
}
