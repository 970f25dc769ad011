package main

import (
	"github.com/spf13/cobra"
)

// options are the command line overrides of the configured paths
type options struct {
	configPath  string
	logPath     string
	libraryPath string
}

func newRootCommand() *cobra.Command {
	var opts options

	rootCmd := &cobra.Command{
		Use:           "ridekeeper",
		Short:         "RideKeeper ride file manager",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rk, err := NewRideKeeper(opts)
			if err != nil {
				return err
			}
			rk.Run()
			return nil
		},
	}

	rootCmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Configuration file path")
	rootCmd.Flags().StringVar(&opts.logPath, "log", "", "Log file path")
	rootCmd.Flags().StringVar(&opts.libraryPath, "library", "", "Ride library database path")

	return rootCmd
}
