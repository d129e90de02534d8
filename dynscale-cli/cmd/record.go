// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-scale library.

package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/pk910/dynamic-scale/chaindata"
	"github.com/pk910/dynamic-scale/scaleutils"
	"github.com/spf13/cobra"
)

type recordFunc func(d *chaindata.Decoder, mode string, data []byte) (any, error)

func recordDecoder[T any](rt chaindata.RecordType[T]) recordFunc {
	return func(d *chaindata.Decoder, mode string, data []byte) (any, error) {
		switch mode {
		case "one":
			return chaindata.DecodeOne(d, rt, data)
		case "vec":
			return chaindata.DecodeVec(d, rt, data)
		case "vec-option":
			return chaindata.DecodeVecOption(d, rt, data)
		case "option":
			return chaindata.DecodeOption(d, rt, data)
		}
		return nil, fmt.Errorf("mode %q is not supported for %v", mode, rt.TypeName)
	}
}

var recordKinds = map[string]recordFunc{
	"neuron":       recordDecoder(chaindata.NeuronInfoType),
	"neuron-lite":  recordDecoder(chaindata.NeuronInfoLiteType),
	"axon":         recordDecoder(chaindata.AxonInfoType),
	"prometheus":   recordDecoder(chaindata.PrometheusInfoType),
	"subnet":       recordDecoder(chaindata.SubnetInfoType),
	"subnet-v2":    recordDecoder(chaindata.SubnetInfoV2Type),
	"hyperparams":  recordDecoder(chaindata.SubnetHyperparametersType),
	"ip":           recordDecoder(chaindata.IPInfoType),
	"coldkey-swap": recordDecoder(chaindata.ScheduledColdkeySwapInfoType),
	"delegate": func(d *chaindata.Decoder, mode string, data []byte) (any, error) {
		if mode == "delegated" {
			return d.DecodeDelegated(data)
		}
		return recordDecoder(chaindata.DelegateInfoType)(d, mode, data)
	},
	"stake": func(d *chaindata.Decoder, mode string, data []byte) (any, error) {
		if mode == "map" {
			return d.DecodeStakeInfoMap(data)
		}
		return recordDecoder(chaindata.StakeInfoType)(d, mode, data)
	},
	"account-ids": func(d *chaindata.Decoder, mode string, data []byte) (any, error) {
		return d.DecodeAccountIdList(data)
	},
}

func recordKindNames() string {
	names := make([]string, 0, len(recordKinds))
	for name := range recordKinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, "|")
}

func newRecordCmd(opts *rootOptions) *cobra.Command {
	var (
		kind       string
		mode       string
		configFile string
		ss58Format int
	)

	recordCmd := &cobra.Command{
		Use:   "record <hex>",
		Short: "Decode a chain data record",
		Long: `Decodes runtime api results into chain data records. Addresses are rendered as
ss58 strings, balances in rao and ratios as floats in [0, 1].

Modes: one, vec, vec-option, option, delegated (delegate only), map (stake only).`,
		Example: `  dynscale-cli record 0x0828... --kind subnet
  dynscale-cli record 0x0c01... --kind subnet --mode vec-option --ss58-format 0`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			decodeFn, ok := recordKinds[kind]
			if !ok {
				return fmt.Errorf("unknown record kind %q, expected one of %v", kind, recordKindNames())
			}

			data, err := scaleutils.FromHex(args[0])
			if err != nil {
				return err
			}

			cfg := chaindata.DefaultConfig()
			if configFile != "" {
				raw, err := os.ReadFile(configFile)
				if err != nil {
					return fmt.Errorf("failed reading config: %w", err)
				}
				if cfg, err = chaindata.LoadConfig(raw); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("ss58-format") {
				if ss58Format < 0 {
					return fmt.Errorf("invalid ss58 format %d", ss58Format)
				}
				cfg.SS58Format = uint16(min(ss58Format, 0xffff))
			}

			registry, err := opts.loadRegistry()
			if err != nil {
				return err
			}

			decoder, err := chaindata.NewDecoderWithRegistry(cfg, registry, opts.dynScaleOptions()...)
			if err != nil {
				return err
			}

			record, err := decodeFn(decoder, mode, data)
			if err != nil {
				return err
			}

			opts.logger.Debug().Str("kind", kind).Str("mode", mode).Uint16("ss58_format", cfg.SS58Format).Msg("decoded record")
			return opts.writeOutput(cmd.OutOrStdout(), record)
		},
	}

	flags := recordCmd.Flags()
	flags.StringVarP(&kind, "kind", "k", "", "record kind: "+recordKindNames())
	flags.StringVarP(&mode, "mode", "m", "one", "decode mode")
	flags.StringVar(&configFile, "config", "", "chain data config (yaml)")
	flags.IntVar(&ss58Format, "ss58-format", int(chaindata.DefaultConfig().SS58Format), "ss58 address format")
	_ = recordCmd.MarkFlagRequired("kind")

	return recordCmd
}
