// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-scale library.

package cmd

import (
	dynscale "github.com/pk910/dynamic-scale"
	"github.com/pk910/dynamic-scale/scaleutils"
	"github.com/spf13/cobra"
)

func newDecodeCmd(opts *rootOptions) *cobra.Command {
	var (
		typeStr         string
		legacyAccountId bool
		strict          bool
	)

	decodeCmd := &cobra.Command{
		Use:   "decode <hex>",
		Short: "Decode hex encoded bytes as the given type string",
		Example: `  dynscale-cli decode 0x08010004020004 --type "Vec<(u16, Compact<u64>)>"
  dynscale-cli decode 0x0828... --type SubnetInfo -o yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := scaleutils.FromHex(args[0])
			if err != nil {
				return err
			}

			registry, err := opts.loadRegistry()
			if err != nil {
				return err
			}

			callOpts := []dynscale.CallOption{dynscale.WithLegacyAccountId(legacyAccountId)}
			if strict {
				callOpts = append(callOpts, dynscale.WithStrictLength())
			}

			ds := dynscale.NewDynScale(registry, opts.dynScaleOptions()...)
			value, err := ds.Decode(typeStr, data, callOpts...)
			if err != nil {
				return err
			}

			opts.logger.Debug().Str("type", typeStr).Int("bytes", len(data)).Msg("decoded value")
			return opts.writeOutput(cmd.OutOrStdout(), value)
		},
	}

	decodeCmd.Flags().StringVarP(&typeStr, "type", "t", "", "type string to decode")
	decodeCmd.Flags().BoolVar(&legacyAccountId, "legacy-account-id", true, "decode account ids as byte tuples")
	decodeCmd.Flags().BoolVar(&strict, "strict", false, "fail on trailing bytes")

	_ = decodeCmd.MarkFlagRequired("type")

	return decodeCmd
}
