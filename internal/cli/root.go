package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Makepad-fr/pantry/internal/auth"
	"github.com/Makepad-fr/pantry/internal/config"
	"github.com/Makepad-fr/pantry/internal/logging"
	"github.com/Makepad-fr/pantry/internal/persist"
	"github.com/Makepad-fr/pantry/internal/shopping"
	"github.com/Makepad-fr/pantry/internal/store"
	"github.com/Makepad-fr/pantry/internal/store/jsonstore"
	"github.com/Makepad-fr/pantry/internal/store/sqlitestore"
	"github.com/Makepad-fr/pantry/internal/ui"
)

// usageError marks mistakes in how a command was called (exit code 2).
type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

func usagef(format string, a ...any) error { return usageError{fmt.Sprintf(format, a...)} }

// app is what every subcommand works with. Built in the root's
// PersistentPreRunE, released once the command returns.
type app struct {
	// root flags
	configPath string
	dataDir    string
	backend    string
	theme      string
	verbose    bool

	cfg      *config.Config
	log      *zap.Logger
	kv       store.Store
	saver    *persist.Saver
	list     *shopping.Store
	sessions *auth.Sessions
}

// Execute runs pantry with args and returns the exit code
// (0 ok, 1 error, 2 usage).
func Execute(args []string) int {
	return run(context.Background(), args, os.Stdin, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	a.teardown()
	if err == nil {
		return 0
	}
	ui.Fail(stderr, err.Error())
	var ue usageError
	if errors.As(err, &ue) || strings.HasPrefix(err.Error(), "unknown command") {
		fmt.Fprintln(stderr, ui.Current().Muted.Render("Run `pantry --help` for usage."))
		return 2
	}
	return 1
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "pantry",
		Short: "pantry - a smart shopping list for your kitchen",
		Long: `pantry keeps the shopping list of your smart pantry: what to buy,
what is already in the basket, and roughly what it will cost.

Run without arguments to open the interactive list.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd)
		},
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError{err.Error()}
	})

	f := root.PersistentFlags()
	f.StringVar(&a.configPath, "config", config.DefaultPath(), "config file")
	f.StringVar(&a.dataDir, "data-dir", "", "where the list is stored (overrides config)")
	f.StringVar(&a.backend, "backend", "", "storage backend: json or sqlite (overrides config)")
	f.StringVar(&a.theme, "theme", "", "classic, neon or mono (overrides config)")
	f.BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newListCmd(a),
		newAddCmd(a),
		newCheckCmd(a),
		newRemoveCmd(a),
		newClearCmd(a),
		newSuggestCmd(a),
		newStatsCmd(a),
		newTUICmd(a),
		newAuthCmd(a),
		newConfigCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.dataDir != "" {
		cfg.DataDir = a.dataDir
	}
	if a.backend != "" {
		cfg.Backend = strings.ToLower(a.backend)
	}
	if a.theme != "" {
		cfg.Theme = a.theme
	}
	if err := cfg.Validate(); err != nil {
		return usageError{err.Error()}
	}
	a.cfg = cfg
	ui.SetTheme(cfg.Theme)

	// the interactive list owns the terminal; only log there to a file
	if isInteractive(cmd) && cfg.Log.File == "" && !a.verbose {
		a.log = zap.NewNop()
	} else if a.log, err = logging.New(cfg.Log.Level, cfg.Log.File, a.verbose); err != nil {
		return err
	}

	if cmd.Name() == "init" && cmd.Parent() != nil && cmd.Parent().Name() == "config" {
		return nil
	}

	kv, err := openStore(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Backend, err)
	}
	a.kv = kv
	a.log.Debug("store opened", zap.String("backend", cfg.Backend), zap.String("dir", cfg.DataDir))
	a.sessions = auth.NewSessions(a.kv, a.log)
	return nil
}

func (a *app) teardown() {
	if a.kv != nil {
		if err := a.kv.Close(); err != nil {
			a.log.Warn("close store", zap.Error(err))
		}
	}
	if a.log != nil {
		_ = a.log.Sync()
	}
}

// items loads the saved list on first use and wires saving after changes.
// A fresh install has its default list written on the spot.
func (a *app) items(ctx context.Context) *shopping.Store {
	if a.list == nil {
		a.saver = persist.NewSaver(a.kv, a.log)
		a.list = shopping.New(a.saver.LoadOrSeed(ctx))
		a.list.Observe(a.saver)
	}
	return a.list
}

func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	if cfg.Backend == config.BackendSQLite {
		s, err := sqlitestore.Open(ctx, cfg.DatabasePath())
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	s, err := jsonstore.Open(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func isInteractive(cmd *cobra.Command) bool {
	return cmd.Name() == "tui" || !cmd.HasParent()
}
