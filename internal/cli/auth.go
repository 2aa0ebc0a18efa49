package cli

import (
	"bufio"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/pantry/internal/auth"
	"github.com/Makepad-fr/pantry/internal/config"
	"github.com/Makepad-fr/pantry/internal/ui"
)

// ---------------------------------------------------
// Auth subcommands
// ---------------------------------------------------

func newAuthCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Sign in to unlock AI suggestions",
		Args: func(cmd *cobra.Command, args []string) error {
			return usagef("usage: pantry auth <login|logout|status|whoami>")
		},
		RunE: func(cmd *cobra.Command, args []string) error { return nil },
	}
	cmd.AddCommand(newLoginCmd(a), newLogoutCmd(a), newStatusCmd(a), newWhoAmICmd(a))
	return cmd
}

func newLoginCmd(a *app) *cobra.Command {
	var name, email string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with a name and email",
		Args:  exactArgs(0, "auth login [--name N] [--email E]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(email) == "" {
				in := bufio.NewReader(cmd.InOrStdin())
				fmt.Fprint(cmd.OutOrStdout(), "Email: ")
				line, _ := in.ReadString('\n')
				email = strings.TrimSpace(line)
				if name == "" {
					fmt.Fprint(cmd.OutOrStdout(), "Name (optional): ")
					line, _ = in.ReadString('\n')
					name = strings.TrimSpace(line)
				}
			}
			u, err := a.sessions.Login(cmd.Context(), name, email)
			if err != nil {
				return usagef("login: %v", err)
			}
			ui.OK(cmd.OutOrStdout(), "logged in as "+u.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name (defaults to the part of the email before @)")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		Args:  exactArgs(0, "auth logout"),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.sessions.Current(cmd.Context())
			if err != nil {
				return fmt.Errorf("logout: %w", err)
			}
			if u != nil && u.Source == "env" {
				ui.OK(cmd.OutOrStdout(), "user is provided by "+auth.EnvEmail+" env var (nothing to delete)")
				return nil
			}
			if err := a.sessions.Logout(cmd.Context()); err != nil {
				return fmt.Errorf("logout: %w", err)
			}
			ui.OK(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether someone is signed in",
		Args:  exactArgs(0, "auth status"),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			u, err := a.sessions.Current(cmd.Context())
			if err != nil {
				return err
			}
			if u == nil {
				ui.Note(out, "not logged in")
				fmt.Fprintln(out, "Run: pantry auth login")
				return nil
			}
			fmt.Fprintf(out, "source: %s\n", u.Source)
			if !u.LoggedIn.IsZero() {
				fmt.Fprintf(out, "since: %s\n", u.LoggedIn.UTC().Format(time.RFC3339))
			}
			fmt.Fprintln(out, "env override: "+auth.EnvEmail)
			return nil
		},
	}
}

func newWhoAmICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Print the signed-in user",
		Args:  exactArgs(0, "auth whoami"),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.sessions.Current(cmd.Context())
			if err != nil {
				return err
			}
			if u == nil {
				return usagef("not logged in. Run: pantry auth login")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\n", u.Name, u.Email)
			return nil
		},
	}
}

// ---------------------------------------------------
// Config subcommands
// ---------------------------------------------------

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the config file",
		Args: func(cmd *cobra.Command, args []string) error {
			return usagef("usage: pantry config <init|show>")
		},
		RunE: func(cmd *cobra.Command, args []string) error { return nil },
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "init",
			Short: "Write the current settings to the config file",
			Args:  exactArgs(0, "config init"),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := a.cfg.Save(a.configPath); err != nil {
					return err
				}
				ui.OK(cmd.OutOrStdout(), "wrote "+a.configPath)
				return nil
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective settings",
			Args:  exactArgs(0, "config show"),
			RunE: func(cmd *cobra.Command, args []string) error {
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "config:   %s\n", a.configPath)
				fmt.Fprintf(out, "data_dir: %s\n", a.cfg.DataDir)
				fmt.Fprintf(out, "backend:  %s\n", a.cfg.Backend)
				if a.cfg.Backend == config.BackendSQLite {
					fmt.Fprintf(out, "database: %s\n", a.cfg.DatabasePath())
				}
				fmt.Fprintf(out, "theme:    %s\n", a.cfg.Theme)
				fmt.Fprintf(out, "log:      %s\n", a.cfg.Log.Level)
				return nil
			},
		},
	)
	return cmd
}
