package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/SscSPs/vendor_invoicing/internal/platform/config"
	"github.com/spf13/cobra"
)

var version = "1.0.0"

// @title Vendor Invoicing API
// @version 1.0
// @description Invoice approval workflow and payment ledger for vendor bills.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "invoicing_backend",
		Short: "Vendor invoice workflow and payment ledger service",
		Long: `invoicing_backend runs the vendor invoicing API: invoices move from vendor
submission through admin and accounting approval to payment, with every
payment recorded in a ledger and every transition emitted as an audit event.

Configuration is read from the environment (and an optional .env file).`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newMigrateCmd())
	return rootCmd
}

// setup loads configuration and installs the JSON logger as the default.
func setup() (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	return cfg, logger, nil
}
