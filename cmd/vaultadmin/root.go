package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/avolkov/passvault/internal/server/config"
	"github.com/avolkov/passvault/internal/server/repositories/repomanager"
	"github.com/avolkov/passvault/internal/server/services"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "vaultadmin",
	Short: "Operator tooling for the password vault",
	Long:  "vaultadmin manages vault users directly against the database: registering accounts and seeding demo data.",
}

// openServices connects to the configured database, applies migrations, and
// returns the user service plus a closer for the connection.
func openServices(ctx context.Context) (*services.UserService, func() error, error) {
	cfg := config.LoadConfig()

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("db open error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("migration error: %w", err)
	}

	return services.NewUserService(db, rm, cfg), db.Close, nil
}
