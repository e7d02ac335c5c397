// internal/domain/cart/entity_test.go
package cart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestCart(t *testing.T) *Cart {
	t.Helper()
	c, err := New("user-1", testNow)
	require.NoError(t, err)
	return c
}

func TestNew(t *testing.T) {
	c := newTestCart(t)
	assert.Equal(t, "user-1", c.ID)
	assert.Empty(t, c.Lines)
	assert.Zero(t, c.Total)

	_, err := New("  ", testNow)
	assert.ErrorIs(t, err, ErrInvalidCart)
}

func TestAddLineAppendsAndMerges(t *testing.T) {
	c := newTestCart(t)

	require.NoError(t, c.AddLine("l1", "p1", "Air Runner", "42", 2, 8900, testNow))
	require.Len(t, c.Lines, 1)
	assert.Equal(t, 2*8900, c.Total)

	// Same (product, size) merges into the existing line.
	require.NoError(t, c.AddLine("l2", "p1", "Air Runner", "42", 3, 8900, testNow))
	require.Len(t, c.Lines, 1)
	assert.Equal(t, 5, c.Lines[0].Qty)
	assert.Equal(t, "l1", c.Lines[0].ID)

	// Different size appends.
	require.NoError(t, c.AddLine("l3", "p1", "Air Runner", "43", 1, 8900, testNow))
	require.Len(t, c.Lines, 2)
	assert.Equal(t, 6*8900, c.Total)
}

func TestAddLineQtyBounds(t *testing.T) {
	c := newTestCart(t)

	assert.ErrorIs(t, c.AddLine("l1", "p1", "n", "42", 0, 100, testNow), ErrQtyOutOfRange)
	assert.ErrorIs(t, c.AddLine("l1", "p1", "n", "42", 11, 100, testNow), ErrQtyOutOfRange)

	require.NoError(t, c.AddLine("l1", "p1", "n", "42", 7, 100, testNow))
	// Merge that would exceed the cap leaves the cart untouched.
	assert.ErrorIs(t, c.AddLine("l2", "p1", "n", "42", 4, 100, testNow), ErrQtyExceedsCap)
	assert.Equal(t, 7, c.Lines[0].Qty)
	assert.Equal(t, 700, c.Total)
}

func TestAddLineValidation(t *testing.T) {
	c := newTestCart(t)

	assert.ErrorIs(t, c.AddLine("l1", "", "n", "42", 1, 100, testNow), ErrInvalidLine)
	assert.ErrorIs(t, c.AddLine("l1", "p1", "n", "", 1, 100, testNow), ErrInvalidLine)
	assert.ErrorIs(t, c.AddLine("l1", "p1", "n", "42", 1, -1, testNow), ErrInvalidLine)
	assert.ErrorIs(t, c.AddLine("", "p1", "n", "42", 1, 100, testNow), ErrInvalidLine)
}

func TestMergedQty(t *testing.T) {
	c := newTestCart(t)
	require.NoError(t, c.AddLine("l1", "p1", "n", "42", 3, 100, testNow))

	assert.Equal(t, 5, c.MergedQty("p1", "42", 2))
	assert.Equal(t, 2, c.MergedQty("p1", "43", 2))
	assert.Equal(t, 2, c.MergedQty("p2", "42", 2))
}

func TestSetLineQty(t *testing.T) {
	c := newTestCart(t)
	require.NoError(t, c.AddLine("l1", "p1", "n", "42", 3, 100, testNow))

	require.NoError(t, c.SetLineQty("l1", 8, testNow))
	assert.Equal(t, 8, c.Lines[0].Qty)
	assert.Equal(t, 800, c.Total)

	assert.ErrorIs(t, c.SetLineQty("l1", 11, testNow), ErrQtyExceedsCap)
	assert.ErrorIs(t, c.SetLineQty("nope", 2, testNow), ErrLineNotFound)

	// qty 0 removes the line.
	require.NoError(t, c.SetLineQty("l1", 0, testNow))
	assert.Empty(t, c.Lines)
	assert.Zero(t, c.Total)
}

func TestRemoveLine(t *testing.T) {
	c := newTestCart(t)
	require.NoError(t, c.AddLine("l1", "p1", "n", "42", 3, 100, testNow))
	require.NoError(t, c.AddLine("l2", "p2", "m", "40", 1, 250, testNow))

	require.NoError(t, c.RemoveLine("l1", testNow))
	require.Len(t, c.Lines, 1)
	assert.Equal(t, "l2", c.Lines[0].ID)
	assert.Equal(t, 250, c.Total)

	assert.ErrorIs(t, c.RemoveLine("l1", testNow), ErrLineNotFound)
}

func TestClearIsIdempotent(t *testing.T) {
	c := newTestCart(t)
	require.NoError(t, c.AddLine("l1", "p1", "n", "42", 3, 100, testNow))

	c.Clear(testNow)
	assert.Empty(t, c.Lines)
	assert.Zero(t, c.Total)

	c.Clear(testNow)
	assert.Empty(t, c.Lines)
	assert.Zero(t, c.Total)
}
