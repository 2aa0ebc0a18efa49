package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownCategory = errors.New("unknown category")
	ErrUnknownPriority = errors.New("unknown priority")
)

// Category is the closed set of aisles an item can belong to.
type Category string

const (
	CategoryVegetables Category = "vegetables"
	CategoryProtein    Category = "protein"
	CategoryGrains     Category = "grains"
	CategoryDairy      Category = "dairy"
	CategorySpices     Category = "spices"
	CategoryFruits     Category = "fruits"
	CategoryOther      Category = "other"
)

var categories = []Category{
	CategoryVegetables,
	CategoryProtein,
	CategoryGrains,
	CategoryDairy,
	CategorySpices,
	CategoryFruits,
	CategoryOther,
}

var categoryLabels = map[Category]string{
	CategoryVegetables: "🥦 Vegetables",
	CategoryProtein:    "🍗 Protein",
	CategoryGrains:     "🌾 Grains",
	CategoryDairy:      "🥛 Dairy",
	CategorySpices:     "🌶️ Spices",
	CategoryFruits:     "🍎 Fruits",
	CategoryOther:      "📦 Other",
}

// Categories returns every category in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
	return c, nil
}

func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

func (c Category) String() string { return string(c) }

// Label is the human-facing name, emoji included.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, string(c))
	}
	return []byte(c), nil
}

func (c *Category) UnmarshalText(b []byte) error {
	v, err := ParseCategory(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Priority is optional; the zero value means "not set" and is treated as
// medium wherever it matters.
type Priority string

const (
	PriorityNone   Priority = ""
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ParsePriority accepts high, medium, low or the empty string.
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if p != PriorityNone && !p.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownPriority, s)
	}
	return p, nil
}

func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Effective resolves an absent priority to medium.
func (p Priority) Effective() Priority {
	if p == PriorityNone {
		return PriorityMedium
	}
	return p
}

func (p Priority) String() string { return string(p) }

func (p Priority) MarshalText() ([]byte, error) {
	if p != PriorityNone && !p.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPriority, string(p))
	}
	return []byte(p), nil
}

func (p *Priority) UnmarshalText(b []byte) error {
	v, err := ParsePriority(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}
