// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-scale library.

package cmd

import (
	"github.com/spf13/cobra"
)

type registryInfo struct {
	Names     []string `json:"names" yaml:"names"`
	TypeCount int      `json:"type_count" yaml:"type_count"`
}

func newRegistryCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "registry",
		Short: "List the type names the selected registry resolves",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := opts.loadRegistry()
			if err != nil {
				return err
			}

			info := &registryInfo{
				Names:     registry.Names(),
				TypeCount: len(registry.TypeIds()),
			}
			return opts.writeOutput(cmd.OutOrStdout(), info)
		},
	}
}
