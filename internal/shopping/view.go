package shopping

import (
	"fmt"
	"strings"

	"github.com/Makepad-fr/pantry/internal/model"
)

// Filter selects which items a view shows. Besides the three state filters
// every category value is a valid filter on its own.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterUnchecked Filter = "unchecked"
	FilterChecked   Filter = "checked"
)

// Filters lists every filter in the order the list UI offers them.
func Filters() []Filter {
	out := []Filter{FilterAll, FilterUnchecked, FilterChecked}
	for _, c := range model.Categories() {
		out = append(out, Filter(c))
	}
	return out
}

func ParseFilter(s string) (Filter, error) {
	f := Filter(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterUnchecked, FilterChecked:
		return f, nil
	}
	if model.Category(f).Valid() {
		return f, nil
	}
	return "", fmt.Errorf("unknown filter %q", s)
}

// Next returns the filter after f, wrapping around.
func (f Filter) Next() Filter {
	all := Filters()
	for i, g := range all {
		if g == f {
			return all[(i+1)%len(all)]
		}
	}
	return FilterAll
}

// Label is the text shown on the filter control.
func (f Filter) Label() string {
	switch f {
	case FilterAll:
		return "All Items"
	case FilterUnchecked:
		return "To Buy"
	case FilterChecked:
		return "Purchased"
	}
	return model.Category(f).Label()
}

func (f Filter) match(it model.Item) bool {
	switch f {
	case FilterAll:
		return true
	case FilterUnchecked:
		return !it.Checked
	case FilterChecked:
		return it.Checked
	}
	return it.Category == model.Category(f)
}

// Project returns the items that pass f and, unless includeChecked is set,
// are not checked. Order follows items; the input is never modified.
func Project(items []model.Item, f Filter, includeChecked bool) []model.Item {
	out := make([]model.Item, 0, len(items))
	for _, it := range items {
		if !f.match(it) {
			continue
		}
		if !includeChecked && it.Checked {
			continue
		}
		out = append(out, it)
	}
	return out
}
