// Package query implements the in-memory list filtering shared by every
// listing endpoint: a free-text substring match over a fixed set of record
// fields combined with categorical equality selectors. Records are fetched
// from the store first; filtering always runs over the already-loaded slice
// so result order is the store's order.
package query

import "strings"

// All is the sentinel selector value meaning "do not filter on this field".
const All = "all"

// Selector describes one categorical filter over records of type T.
type Selector[T any] struct {
	// Name is the key the filter state uses to address this selector.
	Name string
	// Value extracts the record field the selector compares against.
	Value func(T) string
	// Fold makes the comparison case-insensitive.
	Fold bool
}

// Filters maps selector names to the requested values. A missing key or the
// All sentinel leaves the selector inactive.
type Filters map[string]string

// Definition describes the filterable surface of an entity list: the fields
// the free-text term searches across and the categorical selectors.
type Definition[T any] struct {
	SearchFields []func(T) string
	Selectors    []Selector[T]
}

// Apply returns the subsequence of items matching the term and filters,
// preserving the original order. An empty term and all-sentinel filters
// reduce every predicate to true, so the full list comes back unchanged.
func (d Definition[T]) Apply(items []T, term string, filters Filters) []T {
	term = strings.ToLower(strings.TrimSpace(term))

	matched := make([]T, 0, len(items))
	for _, item := range items {
		if d.matchesTerm(item, term) && d.matchesSelectors(item, filters) {
			matched = append(matched, item)
		}
	}
	return matched
}

func (d Definition[T]) matchesTerm(item T, term string) bool {
	if term == "" {
		return true
	}
	for _, field := range d.SearchFields {
		if strings.Contains(strings.ToLower(field(item)), term) {
			return true
		}
	}
	return false
}

func (d Definition[T]) matchesSelectors(item T, filters Filters) bool {
	for _, sel := range d.Selectors {
		want, ok := filters[sel.Name]
		if !ok || want == "" || want == All {
			continue
		}
		got := sel.Value(item)
		if sel.Fold {
			if !strings.EqualFold(got, want) {
				return false
			}
		} else if got != want {
			return false
		}
	}
	return true
}
