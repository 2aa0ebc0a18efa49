package shopping

import (
	"fmt"
	"math"

	"github.com/Makepad-fr/pantry/internal/model"
)

// Unit prices used for the cost estimate, keyed by effective priority.
// Sample figures, not a pricing model.
var unitPrice = map[model.Priority]float64{
	model.PriorityHigh:   5,
	model.PriorityMedium: 3,
	model.PriorityLow:    2,
}

// Summary is the header block of the list. Always computed from the whole
// list, never from a filtered view.
type Summary struct {
	Total         int
	Unchecked     int
	Checked       int
	EstimatedCost float64
	Completion    int
}

func Summarize(items []model.Item) Summary {
	return Summary{
		Total:         TotalCount(items),
		Unchecked:     UncheckedCount(items),
		Checked:       CheckedCount(items),
		EstimatedCost: EstimatedCost(items),
		Completion:    CompletionPercentage(items),
	}
}

func TotalCount(items []model.Item) int { return len(items) }

func UncheckedCount(items []model.Item) int {
	n := 0
	for _, it := range items {
		if !it.Checked {
			n++
		}
	}
	return n
}

func CheckedCount(items []model.Item) int {
	return len(items) - UncheckedCount(items)
}

// EstimatedCost adds up the unit price of every item still to buy.
func EstimatedCost(items []model.Item) float64 {
	var total float64
	for _, it := range items {
		if it.Checked {
			continue
		}
		total += unitPrice[it.Priority.Effective()]
	}
	return total
}

// CompletionPercentage is the rounded share of checked items, 0 for an
// empty list.
func CompletionPercentage(items []model.Item) int {
	if len(items) == 0 {
		return 0
	}
	return int(math.Round(100 * float64(CheckedCount(items)) / float64(len(items))))
}

func FormatCost(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
