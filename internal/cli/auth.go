// internal/cli/auth.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gameall123/sito/internal/domain/session"
)

// newLoginCommand handles user login
func newLoginCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the store",
		RunE: func(cmd *cobra.Command, args []string) error {
			username, _ := cmd.Flags().GetString("username")
			password, _ := cmd.Flags().GetString("password")

			result := app.Session.Login(cmd.Context(), username, password)
			if !result.OK {
				return fmt.Errorf("%s", result.Message)
			}

			user := app.Session.User()
			fmt.Fprintf(app.Out, "Signed in as %s (%s)\n", user.Username, user.Email)
			return nil
		},
	}

	cmd.Flags().String("username", "", "account username")
	cmd.Flags().String("password", "", "account password")
	return cmd
}

// newRegisterCommand handles account registration
func newRegisterCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			username, _ := cmd.Flags().GetString("username")
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			confirm, _ := cmd.Flags().GetString("confirm-password")
			fullName, _ := cmd.Flags().GetString("full-name")

			if confirm != password {
				return fmt.Errorf("passwords do not match")
			}

			result := app.Session.Register(cmd.Context(), session.RegisterRequest{
				Username: username,
				Email:    email,
				Password: password,
				FullName: fullName,
			})
			if !result.OK {
				return fmt.Errorf("%s", result.Message)
			}

			fmt.Fprintln(app.Out, "Account created. Sign in with 'sito login'.")
			return nil
		},
	}

	cmd.Flags().String("username", "", "account username")
	cmd.Flags().String("email", "", "account email")
	cmd.Flags().String("password", "", "account password")
	cmd.Flags().String("confirm-password", "", "repeat the password")
	cmd.Flags().String("full-name", "", "full name")
	return cmd
}

// newLogoutCommand clears the session
func newLogoutCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Session.Logout()
			fmt.Fprintln(app.Out, "Signed out.")
			return nil
		},
	}
}

// newWhoamiCommand shows the current session
func newWhoamiCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			user := app.Session.User()
			if user == nil {
				fmt.Fprintln(app.Out, "Not signed in.")
				return nil
			}

			fmt.Fprintf(app.Out, "Username: %s\n", user.Username)
			fmt.Fprintf(app.Out, "Email:    %s\n", user.Email)
			fmt.Fprintf(app.Out, "Name:     %s\n", user.FullName)
			if user.IsAdmin {
				fmt.Fprintln(app.Out, "Role:     admin")
			}
			return nil
		},
	}
}
