package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/FACorreiaa/go-lmsportal/internal/app/models"
)

func newLoginCmd(opts *options) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with the LMS backend",
		Long: `Exchanges an email and password for an access token and stores it.
When --password is omitted the password is prompted for.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.env()
			if err != nil {
				return err
			}

			if email == "" {
				return fmt.Errorf("--email is required")
			}
			if password == "" {
				password, err = pterm.DefaultInteractiveTextInput.WithMask("*").Show("Password")
				if err != nil {
					return fmt.Errorf("failed to read password: %w", err)
				}
			}

			sess, err := e.manager.Login(cmd.Context(), email, password)
			if err != nil {
				if errors.Is(err, models.ErrUnauthenticated) || errors.Is(err, models.ErrForbidden) {
					return fmt.Errorf("login failed: invalid email or password")
				}
				return fmt.Errorf("login failed: %w", err)
			}

			pterm.Success.WithWriter(cmd.OutOrStdout()).Printf("Logged in as %s (%s)\n", displayName(sess), sess.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	return cmd
}

func newLogoutCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.env()
			if err != nil {
				return err
			}
			if err := e.manager.Logout(); err != nil {
				return err
			}
			pterm.Info.WithWriter(cmd.OutOrStdout()).Println("Logged out")
			return nil
		},
	}
}

func newStatusCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Display authentication status",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.env()
			if err != nil {
				return err
			}

			sess := e.manager.Current()
			if sess == nil {
				return fmt.Errorf("not logged in")
			}

			expires := "never"
			if sess.ExpiresAt != nil {
				expires = sess.ExpiresAt.Format(time.RFC1123)
				if sess.ExpiresAt.Before(time.Now()) {
					expires += " (expired)"
				}
			}

			return pterm.DefaultTable.WithWriter(cmd.OutOrStdout()).WithData(pterm.TableData{
				{"User", displayName(sess)},
				{"Email", sess.Email},
				{"Role", string(sess.Role)},
				{"Token expires", expires},
				{"Token file", e.store.Path()},
			}).Render()
		},
	}
}

func displayName(s *models.Session) string {
	if s.FullName != "" {
		return s.FullName
	}
	return s.Email
}
