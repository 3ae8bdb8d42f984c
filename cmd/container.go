package cmd

import (
	"context"
	"errors"

	"bundletest/internal/config"
	"bundletest/pkg/container"
	"bundletest/pkg/logging"

	"github.com/spf13/cobra"
)

func newContainerCmd() *cobra.Command {
	var (
		kernelFile string
		all        bool
	)

	cmd := &cobra.Command{
		Use:   "container",
		Short: "Boot a kernel and list the services of its container",
		Long: `Boot the kernel described by a kernel file and list the services its
container defines. Only public services are listed unless --all is given.
The kernel is shut down before the command exits.`,
		Example: `  bundletest container -f kernel.yaml
  bundletest container -f kernel.yaml --all -o yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
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

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			k, err := b.BootKernel(ctx)
			if err != nil {
				return err
			}
			defer func() {
				err = errors.Join(err, k.Shutdown(context.Background()))
			}()

			services := k.Container().Describe()
			if !all {
				services = publicServices(services)
			}
			logging.Debug("CLI", "Listing %d services of %s", len(services), file.Path())
			return formatter.FormatServices(services)
		},
	}

	cmd.Flags().StringVarP(&kernelFile, "file", "f", "kernel.yaml", "Kernel file to load")
	cmd.Flags().BoolVar(&all, "all", false, "Include private services")
	return cmd
}

func publicServices(services []container.ServiceInfo) []container.ServiceInfo {
	public := make([]container.ServiceInfo, 0, len(services))
	for _, service := range services {
		if service.Public {
			public = append(public, service)
		}
	}
	return public
}
