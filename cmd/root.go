package cmd

import (
	"os"

	"bundletest/internal/formatting"
	"bundletest/pkg/logging"

	// Built-in modules register themselves for kernel files.
	_ "bundletest/pkg/modules/framework"

	"github.com/spf13/cobra"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments).
	ExitCodeError = 1
)

var (
	outputFormat string
	debugLogging bool
)

// rootCmd represents the base command for the bundletest application.
var rootCmd = newRootCmd()

// newRootCmd builds the command tree. Flags are bound to package variables,
// which are reset to their defaults on every call.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bundletest",
		Short: "Inspect test kernels described by kernel files",
		Long: `bundletest boots the test kernels your Go test suites use, outside of
the tests. Point it at a kernel file to see where the kernel keeps its
cache and logs, or which services its container defines.`,
		// SilenceUsage prevents Cobra from printing the usage message on errors that are handled by the application.
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := logging.LevelWarn
			if debugLogging {
				level = logging.LevelDebug
			}
			logging.Init(level, cmd.ErrOrStderr())
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", string(formatting.FormatTable), "Output format (table, json, yaml)")
	cmd.PersistentFlags().BoolVar(&debugLogging, "debug", false, "Log kernel diagnostics to stderr")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newPathsCmd())
	cmd.AddCommand(newContainerCmd())
	cmd.AddCommand(newModulesCmd())
	return cmd
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
// This function is called by main.main().
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "bundletest version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitCodeError)
	}
}

func newFormatter(cmd *cobra.Command) (formatting.Formatter, error) {
	return formatting.NewFormatter(formatting.Options{
		Format: formatting.OutputFormat(outputFormat),
		Output: cmd.OutOrStdout(),
	})
}
