package cmd

import (
	"bundletest/internal/config"
	"bundletest/internal/formatting"

	"github.com/spf13/cobra"
)

func newPathsCmd() *cobra.Command {
	var kernelFile string

	cmd := &cobra.Command{
		Use:   "paths",
		Short: "Print the cache and log directories of a kernel",
		Long: `Print the configuration hash and the cache and log directories a kernel
described by a kernel file uses. Nothing is created on disk.`,
		Example: `  bundletest paths -f kernel.yaml
  bundletest paths -f kernel.yaml -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := config.LoadKernelFile(kernelFile)
			if err != nil {
				return err
			}
			b, err := file.Builder()
			if err != nil {
				return err
			}

			formatter, err := newFormatter(cmd)
			if err != nil {
				return err
			}

			cfg := b.Configuration()
			return formatter.FormatPaths(formatting.Paths{
				Kernel:      b.KernelClass(),
				Environment: cfg.Environment(),
				Namespace:   cfg.Namespace(),
				Hash:        cfg.Hash(),
				CacheDir:    cfg.CacheDir(),
				LogDir:      cfg.LogDir(),
			})
		},
	}

	cmd.Flags().StringVarP(&kernelFile, "file", "f", "kernel.yaml", "Kernel file to load")
	return cmd
}
