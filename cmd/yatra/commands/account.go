package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"yatra/internal/domain"
)

func registerCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "register <username>",
		Short: "Create an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := wire.Session.Register(cmd.Context(), domain.RegisterInput{
				Username: domain.Username(args[0]),
				Email:    email,
				Password: password,
			})
			if err != nil {
				return err
			}
			return emit(cmd, u, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "Registered %s. Run `yatra login %s` to sign in.\n", u.Username, u.Username)
				return err
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password (at least 8 characters)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func loginCmd() *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Log in and store the session tokens",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := wire.Session.Login(cmd.Context(), domain.Username(args[0]), password); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := wire.Session.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := wire.Session.WhoAmI(cmd.Context())
			if err != nil {
				return err
			}
			return emit(cmd, u, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "%s <%s>\n", u.Username, u.Email)
				return err
			})
		},
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show stored credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := wire.Session.Status()
			if err != nil {
				return err
			}
			return emit(cmd, st, func(w io.Writer) error {
				fmt.Fprintf(w, "API:     %s\n", st.Profile)
				if !st.LoggedIn() {
					_, err := fmt.Fprintln(w, "Session: none")
					return err
				}
				access := "missing"
				if st.HasAccess {
					access = st.AccessFingerprint
					if st.AccessExpiresAt != nil {
						state := "valid"
						if st.AccessExpired {
							state = "expired"
						}
						access += fmt.Sprintf(" (%s, expires %s)", state, st.AccessExpiresAt.Local().Format(time.RFC3339))
					}
				}
				refresh := "missing"
				if st.HasRefresh {
					refresh = st.RefreshFingerprint
				}
				fmt.Fprintf(w, "Access:  %s\n", access)
				_, err := fmt.Fprintf(w, "Refresh: %s\n", refresh)
				return err
			})
		},
	}
}
