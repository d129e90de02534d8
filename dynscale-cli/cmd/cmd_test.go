// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-scale library.

package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const subnetInfoFixture = "0x0828feff010013ffffffffffffffff214e010104feff0300c8010401040d03a1050000c28ff4070398b6d54370c07a546ab0bab5ca9847eb5890ada1bda127633e607097ad4517dd2ca0f010"

func runCmd(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	rootCmd := NewRootCmd()
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestDecodeCmd(t *testing.T) {
	stdout, _, err := runCmd(t, "decode", "0x08010004020004", "--type", "Vec<(u16, Compact<u64>)>")
	require.NoError(t, err)
	require.JSONEq(t, `[[1, 1], [2, 1]]`, stdout)

	stdout, _, err = runCmd(t, "decode", subnetInfoFixture, "--type", "SubnetInfo", "-o", "yaml")
	require.NoError(t, err)
	require.Contains(t, stdout, "netuid: 2\n")
	require.Contains(t, stdout, "burn: 1138079384\n")

	_, _, err = runCmd(t, "decode", "0x2a00", "--type", "u8", "--strict")
	require.Error(t, err)

	_, _, err = runCmd(t, "decode", "0x00", "--type", "Vec<")
	require.Error(t, err)

	_, _, err = runCmd(t, "decode", "0x2a", "--type", "u8", "-o", "xml")
	require.Error(t, err)

	_, _, err = runCmd(t, "decode", "0x2a")
	require.Error(t, err)
}

func TestDecodeCmdVerbose(t *testing.T) {
	stdout, stderr, err := runCmd(t, "decode", "0x0100", "--type", "u16", "--verbose")
	require.NoError(t, err)
	require.Equal(t, "1\n", stdout)
	require.Contains(t, stderr, "type: u16")
}

func TestRecordCmd(t *testing.T) {
	stdout, _, err := runCmd(t, "record", subnetInfoFixture, "--kind", "subnet")
	require.NoError(t, err)

	record := map[string]any{}
	require.NoError(t, json.Unmarshal([]byte(stdout), &record))
	require.Equal(t, float64(2), record["NetUID"])
	require.Equal(t, "5EcYQ3W77ndrmMWdvVQusoFqY8doxfP3U2zrh7xZQiaz7avY", record["OwnerSS58"])
	require.Equal(t, float64(1138079384), record["Burn"])

	stdout, _, err = runCmd(t, "record", "", "--kind", "delegate", "--mode", "delegated")
	require.NoError(t, err)
	require.JSONEq(t, `[]`, stdout)

	stdout, _, err = runCmd(t, "record", "0x00", "--kind", "coldkey-swap", "--mode", "option")
	require.NoError(t, err)
	require.Contains(t, stdout, `"IsNull": true`)

	_, _, err = runCmd(t, "record", subnetInfoFixture, "--kind", "unknown")
	require.ErrorContains(t, err, "unknown record kind")

	_, _, err = runCmd(t, "record", subnetInfoFixture, "--kind", "subnet", "--mode", "delegated")
	require.Error(t, err)

	_, _, err = runCmd(t, "record", subnetInfoFixture, "--kind", "subnet", "--ss58-format", "20000")
	require.Error(t, err)
}

func TestRecordCmdConfig(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("ss58_format: 0\n"), 0o600))

	stdout, _, err := runCmd(t, "record", subnetInfoFixture, "--kind", "subnet", "--config", configFile)
	require.NoError(t, err)

	record := map[string]any{}
	require.NoError(t, json.Unmarshal([]byte(stdout), &record))
	require.NotEqual(t, "5EcYQ3W77ndrmMWdvVQusoFqY8doxfP3U2zrh7xZQiaz7avY", record["OwnerSS58"])
	require.Equal(t, byte('1'), record["OwnerSS58"].(string)[0])
}

func TestRegistryCmd(t *testing.T) {
	stdout, _, err := runCmd(t, "registry")
	require.NoError(t, err)
	require.Contains(t, stdout, `"SubnetInfo"`)
	require.Contains(t, stdout, `"NeuronInfoLite"`)

	registryFile := filepath.Join(t.TempDir(), "registry.yaml")
	require.NoError(t, os.WriteFile(registryFile, []byte("types:\n  Pair: \"(u8, u16)\"\n"), 0o600))

	stdout, _, err = runCmd(t, "registry", "--legacy-registry", registryFile, "-o", "yaml")
	require.NoError(t, err)
	require.Contains(t, stdout, "- Pair\n")

	stdout, _, err = runCmd(t, "decode", "0x010200", "--type", "Pair", "--legacy-registry", registryFile)
	require.NoError(t, err)
	require.JSONEq(t, `[1, 2]`, stdout)

	_, _, err = runCmd(t, "registry", "--registry", filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}
