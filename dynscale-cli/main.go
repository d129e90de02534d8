// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the dynamic-scale library.

package main

import (
	"github.com/pk910/dynamic-scale/dynscale-cli/cmd"
)

func main() {
	cmd.Execute()
}
