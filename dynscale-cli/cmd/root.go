// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-scale library.

package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	registryFile       string
	legacyRegistryFile string
	outputFormat       string
	verbose            bool

	logger zerolog.Logger
}

// NewRootCmd builds the dynscale-cli command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "dynscale-cli",
		Short: "Decode SCALE encoded chain data",
		Long: `dynscale-cli decodes SCALE encoded runtime api results into json or yaml.
Types are resolved against a scale-info portable registry (--registry), a legacy
type document (--legacy-registry) or the bundled bittensor chain data types.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch opts.outputFormat {
			case "json", "yaml":
			default:
				return fmt.Errorf("unsupported output format %q", opts.outputFormat)
			}
			opts.logger = newLogger(cmd.ErrOrStderr(), opts.verbose)
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.registryFile, "registry", "", "scale-info portable registry (json)")
	flags.StringVar(&opts.legacyRegistryFile, "legacy-registry", "", "legacy type registry (yaml or json)")
	flags.StringVarP(&opts.outputFormat, "output", "o", "json", "output format: json, yaml")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "trace the decoding steps")

	rootCmd.AddCommand(
		newDecodeCmd(opts),
		newRecordCmd(opts),
		newRegistryCmd(opts),
	)

	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
