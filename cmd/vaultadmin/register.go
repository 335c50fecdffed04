package main

import (
	"fmt"
	"os"
	"syscall"

	"github.com/avolkov/passvault/internal/server/services"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	registerFirstName string
	registerLastName  string
	registerEmail     string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new vault user",
	Long:  "Registers a user account. The login password and the vault key are prompted without echo and never stored in shell history.",
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := promptSecret("Login password: ")
		if err != nil {
			return err
		}
		vaultKey, err := promptSecret("Vault key (6-10 characters): ")
		if err != nil {
			return err
		}

		us, closeDB, err := openServices(cmd.Context())
		if err != nil {
			return err
		}
		defer closeDB()

		user, err := us.Register(cmd.Context(), services.RegisterRequest{
			FirstName: registerFirstName,
			LastName:  registerLastName,
			Email:     registerEmail,
			Password:  password,
			VaultKey:  vaultKey,
		})
		if err != nil {
			return err
		}

		fmt.Printf("registered %s (%s)\n", user.Email, user.ID)
		return nil
	},
}

func promptSecret(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	secret, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading secret: %w", err)
	}
	return string(secret), nil
}

func init() {
	registerCmd.Flags().StringVar(&registerFirstName, "first-name", "", "user's first name")
	registerCmd.Flags().StringVar(&registerLastName, "last-name", "", "user's last name")
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "user's email address")
	_ = registerCmd.MarkFlagRequired("first-name")
	_ = registerCmd.MarkFlagRequired("last-name")
	_ = registerCmd.MarkFlagRequired("email")

	rootCmd.AddCommand(registerCmd)
}
