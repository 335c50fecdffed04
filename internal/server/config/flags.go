package config

import (
	"flag"
	"os"
	"time"

	"github.com/avolkov/passvault/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-t int      login token validity, minutes
//	-w int      bcrypt work factor
//
// Secrets are deliberately not accepted as flags; they come from the JSON
// file or the environment. os.Args is first filtered to the flags handled
// here using flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-t", "-w"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")

	tokenValidity := fs.Int("t", int(config.TokenValidityDuration.Minutes()), "token validity (in minutes)")
	fs.IntVar(&config.HashCost, "w", config.HashCost, "bcrypt work factor")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.TokenValidityDuration = time.Duration(*tokenValidity) * time.Minute
}

// parseEnv overlays environment values. The environment wins over every
// other source so deployments can keep secrets out of files and argv.
func parseEnv(config *Config) {
	if v := os.Getenv("PASSVAULT_SYSTEM_SECRET"); v != "" {
		config.SystemSecret = v
	}
	if v := os.Getenv("PASSVAULT_JWT_SECRET"); v != "" {
		config.JWTSecret = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		config.DatabaseDSN = v
	}
}
