package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sagarc03/lakegate/config"
)

var errUnhealthy = errors.New("unhealthy")

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Run one health check and print the report",
	Long: `Build a storage client from the ambient credentials, ping the configured
account once and print the health report as JSON. Exits non-zero when the
health check itself fails. Logs go to stderr so stdout stays valid JSON.`,
	Annotations: map[string]string{logsToStderr: ""},
	RunE:        runProbe,
}

func init() {
	rootCmd.AddCommand(probeCmd)
}

func runProbe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := config.FromContext(ctx)
	if err != nil {
		return err
	}

	factory, closeFactory, err := newStorageFactory(cfg)
	if err != nil {
		return fmt.Errorf("create storage factory: %w", err)
	}
	defer func() { _ = closeFactory() }()

	report, err := newHealthChecker(cfg, factory, slog.Default()).Check(ctx)
	if err != nil {
		slog.Error("health check failed", "err", err)
		return errUnhealthy
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
