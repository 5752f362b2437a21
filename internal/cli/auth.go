package cli

import (
	"bufio"
	"fmt"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the session credential",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		email, password, err := promptCredentials(cmd)
		if err != nil {
			return err
		}

		// Start each attempt without a stale message from the last one.
		a.session.ClearError()
		if err := a.session.SignIn(cmd.Context(), email, password); err != nil {
			if msg := a.session.LastError(); msg != "" {
				return fmt.Errorf("%s", msg)
			}
			return err
		}

		identity := a.session.Identity()
		fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (%s)\n", identity.DisplayName, identity.Role)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear the stored credential",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		a.session.SignOut()
		fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in identity",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.requireAuth(); err != nil {
			return err
		}
		identity := a.session.Identity()
		fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> role=%s\n", identity.DisplayName, identity.Email, identity.Role)
		return nil
	},
}

// promptCredentials reads email and password, preferring flags, then stdin.
// The password prompt disables echo when attached to a terminal.
func promptCredentials(cmd *cobra.Command) (string, string, error) {
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")

	reader := bufio.NewReader(cmd.InOrStdin())
	if email == "" {
		fmt.Fprint(cmd.OutOrStdout(), "Email: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", "", err
		}
		email = strings.TrimSpace(line)
	}
	if password == "" {
		if term.IsTerminal(int(syscall.Stdin)) {
			fmt.Fprint(cmd.OutOrStdout(), "Password: ")
			raw, err := term.ReadPassword(int(syscall.Stdin))
			fmt.Fprintln(cmd.OutOrStdout())
			if err != nil {
				return "", "", err
			}
			password = string(raw)
		} else {
			line, err := reader.ReadString('\n')
			if err != nil && line == "" {
				return "", "", err
			}
			password = strings.TrimSpace(line)
		}
	}
	if email == "" || password == "" {
		return "", "", fmt.Errorf("email and password are required")
	}
	return email, password, nil
}

func init() {
	loginCmd.Flags().String("email", "", "account email")
	loginCmd.Flags().String("password", "", "account password (prompted when omitted)")
}
