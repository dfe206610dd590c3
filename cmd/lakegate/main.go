package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/sagarc03/lakegate/config"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Version: version,
	Use:     "lakegate",
	Short:   "Data lake gateway for raw, processed and curated containers",
	Long: `Lakegate exposes upload, list and download over HTTP for a tiered data
lake without handing storage credentials to clients. Storage access uses the
ambient platform identity of the host.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configFiles, _ := cmd.Flags().GetStringSlice("config")

		cfg, err := config.Load(configFiles, cmd.Flags())
		if err != nil {
			return err
		}

		setupLogging(cfg, logOutput(cmd))
		cmd.SetContext(config.WithContext(cmd.Context(), cfg))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringSlice("config", nil, "config file path, repeatable; later files override earlier ones (default: ./config.yaml)")
	rootCmd.PersistentFlags().String("backend", "", "storage backend: azure, gcs, filesystem (default: azure, env: LAKEGATE_STORAGE_BACKEND)")
	rootCmd.PersistentFlags().String("account", "", "storage account or project (env: DATA_LAKE_STORAGE_ACCOUNT)")
	rootCmd.PersistentFlags().String("endpoint", "", "storage endpoint override, e.g. an emulator (env: LAKEGATE_STORAGE_ENDPOINT)")
	rootCmd.PersistentFlags().String("storage-path", "", "root directory for the filesystem backend (default: ./data)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (default: info)")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
