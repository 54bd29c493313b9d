// Package cli implements the broker command line client. It talks to a
// running broker over HTTP with basic auth credentials.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Execute runs the root command and returns the process exit code.
func Execute() int {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}

// NewRootCmd builds the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "broker-cli",
		Short:         "Command line client for the bookstore service broker",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			output, _ := cmd.Root().PersistentFlags().GetString("output")
			return validateOutputFormat(output)
		},
	}

	bindConnectionFlags(root.PersistentFlags())

	root.AddCommand(newCatalogCmd())
	root.AddCommand(newInstanceCmd())
	root.AddCommand(newBindingCmd())

	return root
}

// bindConnectionFlags registers the connection and output flags shared by
// every subcommand.
func bindConnectionFlags(flags *pflag.FlagSet) {
	flags.String("host", "http://localhost:8080", "Broker base URL")
	flags.String("username", "admin", "Basic auth username")
	flags.String("password", "", "Basic auth password")
	flags.String("output", "table", "Output format: table or json")
}

func validateOutputFormat(output string) error {
	if output != "" && output != "table" && output != "json" {
		return fmt.Errorf("unsupported output format %q: use 'table' or 'json'", output)
	}
	return nil
}

func getOutputFormat(cmd *cobra.Command) string {
	v, _ := cmd.Root().PersistentFlags().GetString("output")
	return v
}
