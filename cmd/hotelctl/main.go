package main

import (
	"fmt"
	"os"

	"github.com/fekuna/termas-hotel-service/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// options holds the persistent flags shared by every subcommand.
type options struct {
	cfg    *config.Config
	addr   string
	token  string
	userID string
	role   string
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	opts := &options{cfg: cfg}

	rootCmd := &cobra.Command{
		Use:           "hotelctl",
		Short:         "Operate the Termas hotel service",
		Long:          "hotelctl runs database migrations, issues access tokens and calls the hotel gRPC API.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.addr, "addr", "localhost"+cfg.Server.GRPCPort, "gRPC server address")
	rootCmd.PersistentFlags().StringVar(&opts.token, "token", os.Getenv("HOTELCTL_TOKEN"), "bearer token; issued from JWT_SECRET_KEY when empty")
	rootCmd.PersistentFlags().StringVar(&opts.userID, "user", "hotelctl", "user id for self-issued tokens")
	rootCmd.PersistentFlags().StringVar(&opts.role, "role", "admin", "role for self-issued tokens")

	rootCmd.AddCommand(newMigrateCmd(opts))
	rootCmd.AddCommand(newTokenCmd(opts))
	rootCmd.AddCommand(newPOSCmd(opts))
	rootCmd.AddCommand(newReservationsCmd(opts))
	rootCmd.AddCommand(newTokensCmd(opts))
	return rootCmd
}

func main() {
	_ = godotenv.Load()

	if err := newRootCmd(config.LoadEnv()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
