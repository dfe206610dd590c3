package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sagarc03/lakegate/clientcli"
)

var uploadRecursive bool

var uploadCmd = &cobra.Command{
	Use:   "upload <container> <local-path> [remote-path]",
	Short: "Upload files into a container",
	Long: `Upload files into a container. An existing file with the same name is
overwritten. The remote path defaults to the local path without leading ./ or /.

Examples:
  lakegate-cli upload raw ./report.csv
  lakegate-cli upload raw ./report.csv incoming/2026/report.csv
  lakegate-cli upload -r processed ./out/ batch-42`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runUpload,
}

func init() {
	uploadCmd.Flags().BoolVarP(&uploadRecursive, "recursive", "r", false, "upload directory recursively")
}

func runUpload(cmd *cobra.Command, args []string) error {
	opts := clientcli.UploadOptions{
		Container: args[0],
		LocalPath: args[1],
		Recursive: uploadRecursive,
	}
	if len(args) > 2 {
		opts.RemotePath = args[2]
	}

	client, err := getClient()
	if err != nil {
		return err
	}

	results, err := client.Upload(cmd.Context(), opts)
	if err != nil {
		return handleError(os.Stderr, err)
	}

	if err := getFormatter().FormatUpload(os.Stdout, results); err != nil {
		return err
	}

	for i := range results {
		if results[i].Err != nil {
			return results[i].Err
		}
	}
	return nil
}
