// Package query implements the pure list-view logic shared by the
// in-memory stores: case-insensitive substring search, sentinel-aware
// equality filters, and 1-based offset pagination. Functions here are
// stateless and never mutate their input.
package query

import "strings"

// Sentinel filter values that disable the corresponding filter.
const (
	AllStatuses   = "All Status"
	AllCategories = "All Categories"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 10
)

// Page describes a pagination request. Zero values fall back to
// DefaultPage / DefaultPerPage.
type Page struct {
	Number  int
	PerPage int
}

// PageResult is one page of a filtered sequence.
type PageResult[T any] struct {
	Items       []T
	Total       int
	Pages       int
	CurrentPage int
}

func (p Page) normalized() Page {
	if p.Number <= 0 {
		p.Number = DefaultPage
	}
	if p.PerPage <= 0 {
		p.PerPage = DefaultPerPage
	}
	return p
}

// MatchesSearch reports whether any of the fields contains term,
// case-insensitively. An empty term matches everything.
func MatchesSearch(term string, fields ...string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// MatchesFilter reports whether value equals want. An empty want or
// the filter's own sentinel value disables the filter and matches all.
// Sentinels of other filters are treated as ordinary values, so a
// category literally named "All Status" stays filterable.
func MatchesFilter(want, value, sentinel string) bool {
	if want == "" || want == sentinel {
		return true
	}
	return want == value
}

// Filter returns the elements of items for which keep returns true,
// preserving order. The input slice is never modified.
func Filter[T any](items []T, keep func(T) bool) []T {
	filtered := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// Paginate slices items into the requested page. Out-of-range pages
// yield an empty (non-nil) slice. Pages is ceil(total/per_page) and 0
// for an empty input.
func Paginate[T any](items []T, page Page) PageResult[T] {
	page = page.normalized()

	total := len(items)
	pages := (total + page.PerPage - 1) / page.PerPage

	start := (page.Number - 1) * page.PerPage
	end := start + page.PerPage
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return PageResult[T]{
		Items:       items[start:end],
		Total:       total,
		Pages:       pages,
		CurrentPage: page.Number,
	}
}
