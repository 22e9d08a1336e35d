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
package sixpack

import (
	"fmt"
	"os"
	"sort"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <script>",
	Short: "Compile a declaration script and run it once against given inputs.",
	Long:  "Compile a declaration script and run it once against given inputs, printing every output.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c, err := compileScriptFile(args[0])
		if err != nil {
			log.Errorf("failed to read script: %v", err)
			os.Exit(1)
		}

		sets, _ := cmd.Flags().GetStringArray("set")

		inputs, err := parseAssignments(sets)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		prog, err := c.Compile()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		mem := prog.AllocateScalarMemory()

		for name, value := range inputs {
			addr, err := prog.GetInputAddress(name)
			if err != nil {
				fmt.Println(err)
				os.Exit(1)
			}

			mem[addr] = value
		}

		log.Debugf("running program with %d input(s)", len(inputs))
		prog.RunScalar(mem)

		names := make([]string, 0, len(prog.Outputs()))
		for name := range prog.Outputs() {
			names = append(names, name)
		}

		sort.Strings(names)

		for _, name := range names {
			addr, _ := prog.GetOutputAddress(name)
			fmt.Printf("%s = %v\n", name, mem[addr])
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringArray("set", nil, "set an input value, name=value (repeatable)")
}
