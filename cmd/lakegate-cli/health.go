package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
)

var errUnhealthy = errors.New("server reported Unhealthy")

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Show the server health report",
	Long: `Show the server health report, including data lake connectivity.

Exits non-zero when the server reports Unhealthy. A Disconnected data lake
still reports Healthy.`,
	Args: cobra.NoArgs,
	RunE: runHealth,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show service version, environment and endpoints",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runHealth(cmd *cobra.Command, _ []string) error {
	client, err := getClient()
	if err != nil {
		return err
	}

	result, err := client.Health(cmd.Context())
	if err != nil {
		return handleError(os.Stderr, err)
	}

	if err := getFormatter().FormatHealth(os.Stdout, result); err != nil {
		return err
	}
	if !result.Healthy() {
		return errUnhealthy
	}
	return nil
}

func runStatus(cmd *cobra.Command, _ []string) error {
	client, err := getClient()
	if err != nil {
		return err
	}

	result, err := client.Status(cmd.Context())
	if err != nil {
		return handleError(os.Stderr, err)
	}

	return getFormatter().FormatStatus(os.Stdout, result)
}
