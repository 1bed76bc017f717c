package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the backend",
	Long: `Log in with your email and password. The credential is kept until it
expires or you log out.

Examples:
  docchat login
  docchat login --email you@example.com`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account",
	Long:  `Create an account on the backend. Run 'docchat login' afterwards.`,
	Args:  cobra.NoArgs,
	RunE:  runRegister,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored credential",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in account",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

// Flags for login and register.
var authEmail string

func init() {
	loginCmd.Flags().StringVarP(&authEmail, "email", "e", "", "Account email")
	registerCmd.Flags().StringVarP(&authEmail, "email", "e", "", "Account email")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}

// promptCredentials asks for whatever was not given on the command line.
func promptCredentials(cmd *cobra.Command) (email, password string) {
	reader := inputReader(cmd)
	email = authEmail
	if email == "" {
		cmd.Print("Email: ")
		email = readLine(reader)
	}
	cmd.Print("Password: ")
	password = readPassword(cmd, reader)
	return email, password
}

func runLogin(cmd *cobra.Command, _ []string) error {
	if authGate == nil {
		return errors.New("auth service not configured")
	}

	email, password := promptCredentials(cmd)
	if err := authGate.Login(cmd.Context(), email, password); err != nil {
		return fmt.Errorf("login failed: %s", failureMessage(err))
	}

	cmd.Printf("Logged in as %s\n", email)
	if creds := authGate.Credentials(); creds != nil && !creds.ExpiresAt.IsZero() {
		cmd.Printf("Session expires %s\n", creds.ExpiresAt.Local().Format(time.RFC1123))
	}
	return nil
}

func runRegister(cmd *cobra.Command, _ []string) error {
	if authGate == nil {
		return errors.New("auth service not configured")
	}

	email, password := promptCredentials(cmd)
	if err := authGate.Register(cmd.Context(), email, password); err != nil {
		return fmt.Errorf("registration failed: %s", failureMessage(err))
	}

	cmd.Printf("Account created for %s. Run 'docchat login' to continue.\n", email)
	return nil
}

func runLogout(cmd *cobra.Command, _ []string) error {
	if authGate == nil {
		return errors.New("auth service not configured")
	}
	if err := authGate.Logout(cmd.Context()); err != nil {
		return err
	}
	cmd.Println("Logged out.")
	return nil
}

func runWhoami(cmd *cobra.Command, _ []string) error {
	if authGate == nil {
		return errors.New("auth service not configured")
	}

	creds := authGate.Credentials()
	if creds == nil || !authGate.Authenticated() {
		cmd.Println("Not logged in.")
		return nil
	}

	cmd.Printf("Logged in as %s\n", creds.Email)
	if !creds.ExpiresAt.IsZero() {
		cmd.Printf("Expires: %s\n", creds.ExpiresAt.Local().Format(time.RFC1123))
	}
	return nil
}
