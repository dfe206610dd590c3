package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sagarc03/lakegate/clientcli"
)

var (
	downloadOutput string
	downloadStdout bool
)

var downloadCmd = &cobra.Command{
	Use:   "download <container> <remote-path> [local-path]",
	Short: "Download a text file from a container",
	Long: `Download a file from a container. The server returns the content decoded
as UTF-8 text.

Examples:
  lakegate-cli download raw incoming/report.csv
  lakegate-cli download raw incoming/report.csv ./report.csv
  lakegate-cli download --stdout curated config.json | jq .`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runDownload,
}

func init() {
	downloadCmd.Flags().StringVarP(&downloadOutput, "output", "o", "", "output file path")
	downloadCmd.Flags().BoolVar(&downloadStdout, "stdout", false, "write content to stdout")
}

func runDownload(cmd *cobra.Command, args []string) error {
	opts := clientcli.DownloadOptions{
		Container:  args[0],
		RemotePath: args[1],
	}
	if len(args) > 2 {
		opts.LocalPath = args[2]
	}
	if downloadOutput != "" {
		opts.LocalPath = downloadOutput
	}
	if downloadStdout {
		opts.LocalPath = "-"
	}

	client, err := getClient()
	if err != nil {
		return err
	}

	result, err := client.Download(cmd.Context(), opts)
	if err != nil {
		return handleError(os.Stderr, err)
	}

	if result.LocalPath == "-" {
		if _, err := fmt.Fprint(os.Stdout, result.Content); err != nil {
			return err
		}
		if jsonOutput {
			return getFormatter().FormatDownload(os.Stderr, result)
		}
		return nil
	}

	return getFormatter().FormatDownload(os.Stdout, result)
}
