package commands

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"yatra/internal/api"
	"yatra/internal/app"
)

var (
	home       string
	apiURL     string
	passphrase string
	logLevel   string
	timeout    time.Duration
	jsonOut    bool

	wire *app.Wire
)

// Execute runs the CLI.
func Execute() error {
	root := &cobra.Command{
		Use:           "yatra",
		Short:         "Command-line client for the city bus transit API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig(home, app.Overrides{
				BaseURL:    apiURL,
				Passphrase: passphrase,
				LogLevel:   logLevel,
				Timeout:    timeout,
			})
			if err != nil {
				return err
			}
			cfg.OnLoginRequired = func(error) {
				fmt.Fprintln(cmd.ErrOrStderr(), "Session expired. Run `yatra login <username>` to sign in again.")
			}
			wire, err = app.NewWire(cfg)
			return err
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "config dir (default ~/.yatra)")
	root.PersistentFlags().StringVar(&apiURL, "api", "", "API root (default "+api.DefaultBaseURL+")")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase to encrypt stored credentials")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug|info|warn|error")
	root.PersistentFlags().DurationVar(&timeout, "timeout", 0, "per-request timeout (default 15s)")
	root.PersistentFlags().BoolVar(&jsonOut, "json", false, "print results as JSON")

	root.AddCommand(
		registerCmd(), loginCmd(), logoutCmd(), whoamiCmd(), statusCmd(),
		routesCmd(), routeCmd(), schedulesCmd(), findCmd(),
		stopsCmd(), fareCmd(), favouritesCmd(), feedbackCmd(), dashboardCmd(),
	)

	err := root.Execute()
	if wire != nil {
		wire.Close()
	}
	if msg := describe(err); msg != "" {
		fmt.Fprintln(os.Stderr, msg)
	}
	return err
}

// describe renders err for the terminal. Errors the login-required hook
// already reported render as "".
func describe(err error) string {
	if err == nil || errors.Is(err, api.ErrLoginRequired) {
		return ""
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Unauthorized() {
		return "Error: " + err.Error() + "\nThe server rejected your session. Run `yatra login <username>` to sign in."
	}
	return "Error: " + err.Error()
}
