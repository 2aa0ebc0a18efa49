package model

import (
	"errors"
	"strings"
)

var ErrEmptyName = errors.New("empty name")

// Item is one shopping-list line: an ingredient to buy or already bought.
type Item struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Quantity string   `json:"quantity"`
	Category Category `json:"category"`
	Checked  bool     `json:"checked"`
	Priority Priority `json:"priority,omitempty"`
}

// Draft is an item that has not been given an id yet.
type Draft struct {
	Name     string
	Quantity string
	Category Category
	Priority Priority
}

// Normalize trims the free-form text fields.
func (d Draft) Normalize() Draft {
	d.Name = strings.TrimSpace(d.Name)
	d.Quantity = strings.TrimSpace(d.Quantity)
	return d
}

// Validate reports whether d can become an Item.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrEmptyName
	}
	if !d.Category.Valid() {
		return ErrUnknownCategory
	}
	if d.Priority != PriorityNone && !d.Priority.Valid() {
		return ErrUnknownPriority
	}
	return nil
}

// Item turns the draft into an unchecked item with the given id.
func (d Draft) Item(id int64) Item {
	return Item{
		ID:       id,
		Name:     d.Name,
		Quantity: d.Quantity,
		Category: d.Category,
		Priority: d.Priority,
	}
}
