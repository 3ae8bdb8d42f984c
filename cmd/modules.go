package cmd

import (
	"bundletest/internal/formatting"
	"bundletest/pkg/kerneltest"

	"github.com/spf13/cobra"
)

func newModulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "modules",
		Short: "List the modules and kernels kernel files can refer to",
		Example: `  bundletest modules
  bundletest modules -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter, err := newFormatter(cmd)
			if err != nil {
				return err
			}
			return formatter.FormatRegistry(formatting.Registry{
				Modules: kerneltest.RegisteredModules(),
				Kernels: kerneltest.RegisteredKernels(),
			})
		},
	}
}
