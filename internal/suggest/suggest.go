// Package suggest fills the list with recommended items for signed-in users.
package suggest

import (
	"errors"

	"github.com/Makepad-fr/pantry/internal/auth"
	"github.com/Makepad-fr/pantry/internal/model"
	"github.com/Makepad-fr/pantry/internal/shopping"
)

var ErrLoginRequired = errors.New("please login to use AI features")

// Drafts is the fixed recommendation set.
func Drafts() []model.Draft {
	return []model.Draft{
		{Name: "Tomatoes", Quantity: "4 pieces", Category: model.CategoryVegetables, Priority: model.PriorityMedium},
		{Name: "Onions", Quantity: "2 pieces", Category: model.CategoryVegetables, Priority: model.PriorityMedium},
		{Name: "Olive Oil", Quantity: "500ml", Category: model.CategoryOther, Priority: model.PriorityHigh},
	}
}

// Suggest appends the recommendations to s. Without a user nothing changes.
func Suggest(s *shopping.Store, u *auth.User) ([]model.Item, error) {
	if u == nil {
		return nil, ErrLoginRequired
	}
	return s.BulkAdd(Drafts())
}
