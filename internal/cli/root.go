// internal/cli/root.go

// Package cli wires the statusboard commands.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// Version is stamped at build time with -ldflags "-X ...cli.Version=...".
var Version = "dev"

// ExitError carries a process exit code without an error message.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

type globalFlags struct {
	configPath string
	debug      bool
}

// NewRootCommand builds the command tree writing to out.
func NewRootCommand(out io.Writer) *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "statusboard",
		Short:         "Service health status board",
		Long:          `statusboard polls a health-check endpoint and shows the result as a web page, a terminal table, metrics and an optional Modbus register block.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	root.SetOut(out)

	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (YAML); empty uses defaults and environment")
	root.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable debug logging")

	root.AddCommand(
		newServeCommand(flags),
		newCheckCommand(flags),
		newWatchCommand(flags),
		newVersionCommand(),
	)

	return root
}

// Execute runs the CLI against os.Args.
func Execute() error {
	return NewRootCommand(os.Stdout).ExecuteContext(context.Background())
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "statusboard %s\n", Version)
		},
	}
}
