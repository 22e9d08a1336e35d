// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package sixpack is the command-line entry point for the compiler: compile
// a script to a program dump, run one against given inputs, or benchmark
// it. It is ambient tooling, not where correctness lives -- the core
// pipeline is pkg/compiler and pkg/program.
package sixpack

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is filled in when building with make, but not when installing
// via "go install".
var Version string

var rootCmd = &cobra.Command{
	Use:   "sixpack",
	Short: "A compiler for scalar real-valued expression scripts.",
	Long:  "A compiler and interpreter for small scripts of named scalar real-valued expressions.",
}

// Execute runs the CLI (each subcommand file adds itself to rootCmd in its
// init function). Called once by main.main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
	cobra.OnInitialize(func() {
		if getFlag(rootCmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
	})
}
