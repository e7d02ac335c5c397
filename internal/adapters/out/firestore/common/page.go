// internal/adapters/out/firestore/common/page.go
package common

// NormalizePage clamps 1-indexed pagination input.
// perPage <= 0 falls back to def; max > 0 caps perPage.
func NormalizePage(number, perPage, def, max int) (int, int) {
	if number < 1 {
		number = 1
	}
	if perPage <= 0 {
		perPage = def
	}
	if max > 0 && perPage > max {
		perPage = max
	}
	return number, perPage
}

// TotalPages returns the page count for a total at perPage per page.
// An empty result still reports 1 page so clients always get a valid page.
func TotalPages(total, perPage int) int {
	if perPage <= 0 {
		return 1
	}
	pages := (total + perPage - 1) / perPage
	if pages < 1 {
		pages = 1
	}
	return pages
}

// SlicePage returns the half-open index range [lo, hi) of a 1-indexed page
// over a slice of length total.
func SlicePage(total, number, perPage int) (int, int) {
	lo := (number - 1) * perPage
	if lo >= total {
		return total, total
	}
	hi := lo + perPage
	if hi > total {
		hi = total
	}
	return lo, hi
}
