package main

import (
	"os"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list <container>",
	Aliases: []string{"ls"},
	Short:   "List every path in a container",
	Long: `List every file and directory in a container, recursively, in the order
the storage service returns them.

Examples:
  lakegate-cli list raw
  lakegate-cli list --json curated | jq '.files[].name'`,
	Args: cobra.ExactArgs(1),
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	client, err := getClient()
	if err != nil {
		return err
	}

	result, err := client.List(cmd.Context(), args[0])
	if err != nil {
		return handleError(os.Stderr, err)
	}

	return getFormatter().FormatList(os.Stdout, result)
}
