// internal/domain/product/entity_test.go
package product

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory(" MEN ")
	require.NoError(t, err)
	assert.Equal(t, CategoryMen, c)

	c, err = ParseCategory("women")
	require.NoError(t, err)
	assert.Equal(t, CategoryWomen, c)

	_, err = ParseCategory("kids")
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestNewNormalizes(t *testing.T) {
	p, err := New("", " Air Runner ", "desc", 8900, 10,
		[]string{"43", "42", " 42 ", ""}, " white ", []string{"Men", "men", "WOMEN"}, testNow)
	require.NoError(t, err)

	assert.Equal(t, "Air Runner", p.Name)
	assert.Equal(t, "white", p.Color)
	assert.Equal(t, []string{"42", "43"}, p.Sizes)
	assert.Equal(t, []Category{CategoryMen, CategoryWomen}, p.Categories)
}

func TestNewValidation(t *testing.T) {
	_, err := New("", "", "d", 100, 1, []string{"42"}, "", []string{"men"}, testNow)
	assert.ErrorIs(t, err, ErrInvalidName)

	_, err = New("", "n", "d", -1, 1, []string{"42"}, "", []string{"men"}, testNow)
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = New("", "n", "d", 100, -1, []string{"42"}, "", []string{"men"}, testNow)
	assert.ErrorIs(t, err, ErrInvalidStock)

	_, err = New("", "n", "d", 100, 1, nil, "", []string{"men"}, testNow)
	assert.ErrorIs(t, err, ErrInvalidSizes)

	_, err = New("", "n", "d", 100, 1, []string{"42"}, "", nil, testNow)
	assert.ErrorIs(t, err, ErrInvalidCategory)

	_, err = New("", "n", "d", 100, 1, []string{"42"}, "", []string{"kids"}, testNow)
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestHasSize(t *testing.T) {
	p, err := New("", "n", "d", 100, 1, []string{"42", "43"}, "", []string{"men"}, testNow)
	require.NoError(t, err)

	assert.True(t, p.HasSize("42"))
	assert.True(t, p.HasSize(" 43 "))
	assert.False(t, p.HasSize("44"))
}

func TestHasCategory(t *testing.T) {
	p, err := New("", "n", "d", 100, 1, []string{"42"}, "", []string{"men"}, testNow)
	require.NoError(t, err)

	assert.True(t, p.HasCategory("MEN"))
	assert.False(t, p.HasCategory("women"))
	assert.False(t, p.HasCategory("kids"))
}
