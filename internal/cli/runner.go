package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/pantry/internal/model"
	"github.com/Makepad-fr/pantry/internal/persist"
	"github.com/Makepad-fr/pantry/internal/shopping"
	"github.com/Makepad-fr/pantry/internal/suggest"
	"github.com/Makepad-fr/pantry/internal/tui"
	"github.com/Makepad-fr/pantry/internal/ui"
	"github.com/Makepad-fr/pantry/internal/watch"
)

func exactArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usagef("usage: pantry %s", usage)
		}
		return nil
	}
}

func parseID(cmd string, s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(s, "#"), 10, 64)
	if err != nil {
		return 0, usagef("%s: not a number: %s", cmd, s)
	}
	return id, nil
}

// -------------- subcommands ----------------

func newListCmd(a *app) *cobra.Command {
	var (
		filter      string
		hideChecked bool
		group       bool
	)
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List items",
		Args:    exactArgs(0, "ls [--filter F] [--hide-checked] [--group]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := shopping.ParseFilter(filter)
			if err != nil {
				return usageError{err.Error()}
			}
			items := a.items(cmd.Context()).Items()
			sum := shopping.Summarize(items)
			t := ui.Current()

			var lines []string
			lines = append(lines, ui.Header(sum))
			lines = append(lines, t.Muted.Render(ui.ProgressBar(sum.Completion, 28)))
			lines = append(lines, t.Accent.Render("Filter: ")+f.Label())
			lines = append(lines, "")
			if group {
				lines = append(lines, groupLines(shopping.Project(items, f, !hideChecked))...)
			} else {
				lines = append(lines, ui.ItemLines(shopping.Project(items, f, !hideChecked))...)
			}
			lines = append(lines, "")
			lines = append(lines, t.Muted.Render("Tip: add with `pantry add Eggs --qty \"1 dozen\" --category dairy`"))
			fmt.Fprintln(cmd.OutOrStdout(), ui.Panel(lines))
			return nil
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "all", "all, unchecked, checked or a category")
	cmd.Flags().BoolVar(&hideChecked, "hide-checked", false, "hide purchased items")
	cmd.Flags().BoolVar(&group, "group", false, "group output by to buy/purchased")
	return cmd
}

func newAddCmd(a *app) *cobra.Command {
	var qty, category, priority string
	cmd := &cobra.Command{
		Use:   "add <name...>",
		Short: "Add an item (name can be multiple words)",
		Example: `  pantry add Eggs --qty "1 dozen" --category dairy --priority high
  pantry add Olive Oil --category other`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return usagef("usage: pantry add <name...>")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := model.ParseCategory(category)
			if err != nil {
				return usageError{err.Error()}
			}
			p, err := model.ParsePriority(priority)
			if err != nil {
				return usageError{err.Error()}
			}
			it, err := a.items(cmd.Context()).Add(model.Draft{
				Name:     strings.Join(args, " "),
				Quantity: qty,
				Category: c,
				Priority: p,
			})
			if errors.Is(err, model.ErrEmptyName) {
				return usagef("add: empty name")
			}
			if err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("added %s (#%d)", it.Name, it.ID))
			return nil
		},
	}
	cmd.Flags().StringVarP(&qty, "qty", "q", "1", "quantity, free text")
	cmd.Flags().StringVarP(&category, "category", "c", string(model.CategoryVegetables), "vegetables, protein, grains, dairy, spices, fruits or other")
	cmd.Flags().StringVarP(&priority, "priority", "p", string(model.PriorityMedium), "high, medium or low")
	return cmd
}

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "check <id>",
		Aliases: []string{"done", "toggle"},
		Short:   "Toggle purchased for an item",
		Args:    exactArgs(1, "check <id>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("check", args[0])
			if err != nil {
				return err
			}
			list := a.items(cmd.Context())
			if _, ok := list.Get(id); !ok {
				ui.Note(cmd.OutOrStdout(), fmt.Sprintf("no item #%d, nothing to do", id))
				return nil
			}
			list.Toggle(id)
			it, _ := list.Get(id)
			state := "to buy"
			if it.Checked {
				state = "purchased"
			}
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("%s: %s", it.Name, state))
			return nil
		},
	}
}

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove"},
		Short:   "Remove an item",
		Args:    exactArgs(1, "rm <id>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("rm", args[0])
			if err != nil {
				return err
			}
			list := a.items(cmd.Context())
			it, ok := list.Get(id)
			if !ok {
				ui.Note(cmd.OutOrStdout(), fmt.Sprintf("no item #%d, nothing to do", id))
				return nil
			}
			list.Remove(id)
			ui.OK(cmd.OutOrStdout(), "removed "+it.Name)
			return nil
		},
	}
}

func newClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every purchased item",
		Args:  exactArgs(0, "clear"),
		RunE: func(cmd *cobra.Command, args []string) error {
			n := a.items(cmd.Context()).ClearChecked()
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("cleared %d purchased", n))
			return nil
		},
	}
}

func newSuggestCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "suggest",
		Short: "Add AI-suggested items (requires login)",
		Args:  exactArgs(0, "suggest"),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.sessions.Current(cmd.Context())
			if err != nil {
				return err
			}
			added, err := suggest.Suggest(a.items(cmd.Context()), u)
			if errors.Is(err, suggest.ErrLoginRequired) {
				return fmt.Errorf("%w. Run: pantry auth login", err)
			}
			if err != nil {
				return err
			}
			for _, it := range added {
				ui.OK(cmd.OutOrStdout(), fmt.Sprintf("added %s (#%d)", it.Name, it.ID))
			}
			return nil
		},
	}
}

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show totals, cost estimate and progress",
		Args:  exactArgs(0, "stats"),
		RunE: func(cmd *cobra.Command, args []string) error {
			sum := shopping.Summarize(a.items(cmd.Context()).Items())
			lines := ui.Stats(sum)
			lines = append(lines, ui.Current().Muted.Render(ui.ProgressBar(sum.Completion, 28)))
			fmt.Fprintln(cmd.OutOrStdout(), ui.Panel(lines))
			return nil
		},
	}
}

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive list",
		Args:  exactArgs(0, "tui"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd)
		},
	}
}

func (a *app) runTUI(cmd *cobra.Command) error {
	ctx := cmd.Context()
	list := a.items(ctx)
	u, err := a.sessions.Current(ctx)
	if err != nil {
		return err
	}
	opt := tui.Options{Store: list, Saver: a.saver, User: u, Log: a.log}

	// other terminals writing the same file show up live
	if js, ok := a.kv.(interface{ Path(string) (string, error) }); ok {
		if path, err := js.Path(persist.ItemsKey); err == nil {
			w, err := watch.New(path, a.log)
			if err != nil {
				a.log.Sugar().Warnf("live reload disabled: %v", err)
			} else {
				defer w.Close()
				opt.Watcher = w
			}
		}
	}

	if err := tui.Run(ctx, opt); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// -------------- rendering helpers --------------

func groupLines(items []model.Item) []string {
	var pend, done []model.Item
	for _, it := range items {
		if it.Checked {
			done = append(done, it)
		} else {
			pend = append(pend, it)
		}
	}
	t := ui.Current()
	var lines []string
	lines = append(lines, t.Accent.Render("To Buy"))
	if len(pend) == 0 {
		lines = append(lines, t.Muted.Render("(none)"))
	} else {
		lines = append(lines, ui.ItemLines(pend)...)
	}
	lines = append(lines, "")
	lines = append(lines, t.Accent.Render("Purchased"))
	if len(done) == 0 {
		lines = append(lines, t.Muted.Render("(none)"))
	} else {
		lines = append(lines, ui.ItemLines(done)...)
	}
	return lines
}
