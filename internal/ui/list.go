package ui

import (
	"fmt"

	"github.com/Makepad-fr/pantry/internal/model"
	"github.com/Makepad-fr/pantry/internal/shopping"
)

const maxNameWidth = 60

// Header is the title line with the live counts.
func Header(s shopping.Summary) string {
	t := Current()
	return fmt.Sprintf("%s  %s %d  %s %d  %s %d  %s",
		t.Title.Render("Smart Shopping List"),
		t.Pending.Render(t.SymPending), s.Unchecked,
		t.Success.Render(t.SymDone), s.Checked,
		t.Accent.Render("Total"), s.Total,
		t.Accent.Render(shopping.FormatCost(s.EstimatedCost)),
	)
}

// Stats is the four-number footer of the list.
func Stats(s shopping.Summary) []string {
	t := Current()
	return []string{
		fmt.Sprintf("%s %d", t.Muted.Render("Total Items   "), s.Total),
		fmt.Sprintf("%s %d", t.Muted.Render("To Purchase   "), s.Unchecked),
		fmt.Sprintf("%s %s", t.Muted.Render("Estimated Cost"), shopping.FormatCost(s.EstimatedCost)),
		fmt.Sprintf("%s %d%%", t.Muted.Render("Completed     "), s.Completion),
	}
}

// ItemLine renders one item, e.g. "☐ Eggs  1 dozen  🥛 Dairy  #12".
func ItemLine(it model.Item) string {
	t := Current()
	box := t.Muted.Render(t.BoxUnchecked)
	name := truncate(it.Name, maxNameWidth)
	if it.Checked {
		box = t.Success.Render(t.BoxChecked)
		name = t.Done.Render(name)
	}
	line := fmt.Sprintf("%s %s  %s  %s  %s", box, name,
		t.Muted.Render(it.Quantity),
		it.Category.Label(),
		t.Muted.Render(fmt.Sprintf("#%d", it.ID)))
	if it.Priority == model.PriorityHigh {
		line += "  " + t.High.Render("🔥 High Priority")
	}
	return line
}

// ItemLines renders items, or a placeholder when there are none.
func ItemLines(items []model.Item) []string {
	if len(items) == 0 {
		return []string{Current().Muted.Render("no items")}
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, ItemLine(it))
	}
	return out
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
