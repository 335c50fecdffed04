package main

import (
	"fmt"

	"github.com/avolkov/passvault/internal/server/services"
	"github.com/spf13/cobra"
)

// Demo accounts created by the seed command. All of them use the same login
// password and vault key, printed after seeding.
var seedUsers = []services.RegisterRequest{
	{FirstName: "Wilber", LastName: "Jr", Email: "seed1@seedemail1.com", Password: "123abc", VaultKey: "demokey1"},
	{FirstName: "James", LastName: "Wilbert", Email: "seed2@seedemail2.com", Password: "123abc", VaultKey: "demokey1"},
	{FirstName: "Anthony", LastName: "Aleman", Email: "seed3@seedemail3.com", Password: "123abc", VaultKey: "demokey1"},
	{FirstName: "Max", LastName: "Milo", Email: "seed4@seedemail4.com", Password: "123abc", VaultKey: "demokey1"},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create demo users",
	RunE: func(cmd *cobra.Command, args []string) error {
		us, closeDB, err := openServices(cmd.Context())
		if err != nil {
			return err
		}
		defer closeDB()

		for _, req := range seedUsers {
			user, err := us.Register(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("seeding %s: %w", req.Email, err)
			}
			fmt.Printf("seeded %s (%s)\n", user.Email, user.ID)
		}

		fmt.Println(`demo login password: "123abc", vault key: "demokey1"`)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
