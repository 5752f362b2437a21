// Package cli implements the presalesctl command tree. Each command builds
// the same client stack the admin frontend uses: credential store, session
// store, route guard, and the authenticated request gateway.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"presales/pkg/credentials"
	"presales/pkg/gateway"
	"presales/pkg/guard"
	"presales/pkg/masters"
	"presales/pkg/session"
)

var serverURL string

var rootCmd = &cobra.Command{
	Use:           "presalesctl",
	Short:         "Administer the pre-sales asset manager",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", envOr("PRESALES_SERVER", "http://localhost:8080"),
		"base URL of the presales API")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(mastersCmd)
}

// ExecuteContext runs the root command.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// app is the client stack shared by all commands.
type app struct {
	creds   *credentials.FileStore
	session *session.Store
	guard   *guard.Guard
	gateway *gateway.Client
	masters *masters.Client
}

func newApp() (*app, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("resolving config directory: %w", err)
	}
	creds, err := credentials.NewFileStore(filepath.Join(configDir, "presales"))
	if err != nil {
		return nil, fmt.Errorf("opening credential store: %w", err)
	}

	// Keep structured logs off the terminal unless asked for.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	sess := session.New(creds, serverURL, session.WithLogger(logger))
	gw := gateway.New(creds, sess,
		gateway.WithLogger(logger),
		gateway.WithAuthExpiredHook(func() {
			fmt.Fprintln(os.Stderr, "Session expired. Run 'presalesctl login' to sign in again.")
		}),
	)

	return &app{
		creds:   creds,
		session: sess,
		guard:   guard.New(sess),
		gateway: gw,
		masters: masters.NewClient(gw, serverURL),
	}, nil
}

// requireAuth refuses to run a protected command for a signed-out session,
// the CLI's equivalent of the frontend's redirect to the sign-in page.
func (a *app) requireAuth() error {
	if a.guard.Resolve() == guard.RedirectToLogin {
		return fmt.Errorf("not signed in. Run 'presalesctl login' first")
	}
	return nil
}
