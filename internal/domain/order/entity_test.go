// internal/domain/order/entity_test.go
package order

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func testLines() []Line {
	return []Line{
		{ProductID: "p1", ProductName: "Air Runner", Size: "42", Qty: 2, UnitPrice: 8900},
		{ProductID: "p2", ProductName: "Court Low", Size: "40", Qty: 1, UnitPrice: 6500},
	}
}

func TestNewDerivesTotals(t *testing.T) {
	o, err := New("o1", "u1", testLines(), 500, testNow)
	require.NoError(t, err)

	assert.Equal(t, 2*8900+6500, o.Subtotal)
	assert.Equal(t, o.Subtotal+500, o.Total)
	assert.Equal(t, StatusPending, o.Status)
}

func TestNewValidation(t *testing.T) {
	_, err := New("", "u1", testLines(), 0, testNow)
	assert.ErrorIs(t, err, ErrInvalidID)

	_, err = New("o1", "", testLines(), 0, testNow)
	assert.ErrorIs(t, err, ErrInvalidUserID)

	_, err = New("o1", "u1", nil, 0, testNow)
	assert.ErrorIs(t, err, ErrEmptyLines)

	_, err = New("o1", "u1", []Line{{ProductID: "p1", Size: "42", Qty: 0, UnitPrice: 100}}, 0, testNow)
	assert.ErrorIs(t, err, ErrQtyOutOfRange)

	_, err = New("o1", "u1", []Line{{ProductID: "p1", Size: "42", Qty: 11, UnitPrice: 100}}, 0, testNow)
	assert.ErrorIs(t, err, ErrQtyOutOfRange)

	_, err = New("o1", "u1", []Line{{ProductID: "", Size: "42", Qty: 1, UnitPrice: 100}}, 0, testNow)
	assert.ErrorIs(t, err, ErrInvalidLine)

	_, err = New("o1", "u1", testLines(), -1, testNow)
	assert.ErrorIs(t, err, ErrInvalidLine)
}

func TestNormalizeOverridesStoredTotals(t *testing.T) {
	o, err := New("o1", "u1", testLines(), 500, testNow)
	require.NoError(t, err)

	// Simulate a document whose stored totals drifted.
	o.Subtotal = 1
	o.Total = 2
	o.Normalize()

	assert.Equal(t, 2*8900+6500, o.Subtotal)
	assert.Equal(t, o.Subtotal+500, o.Total)
}

func TestPricingShippingFor(t *testing.T) {
	p := Pricing{ShippingFlatFee: 500, FreeShippingMin: 10000}

	assert.Equal(t, 500, p.ShippingFor(0))
	assert.Equal(t, 500, p.ShippingFor(9999))
	// At the threshold shipping is still charged; only above it is free.
	assert.Equal(t, 500, p.ShippingFor(10000))
	assert.Equal(t, 0, p.ShippingFor(10001))
}
