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

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// compileCmd represents the compile command
var compileCmd = &cobra.Command{
	Use:   "compile <script>",
	Short: "Compile a declaration script and dump the resulting program as JSON.",
	Long:  "Compile a declaration script and dump the resulting program as JSON.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c, err := compileScriptFile(args[0])
		if err != nil {
			log.Errorf("failed to read script: %v", err)
			os.Exit(1)
		}

		log.Debugf("compiling %d output(s)", len(c.GetOutputs()))

		prog, err := c.Compile()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		out, err := prog.Dump()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		outFile, _ := cmd.Flags().GetString("out")
		if outFile == "" {
			fmt.Println(string(out))

			return
		}

		if err := os.WriteFile(outFile, out, 0o644); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().String("out", "", "write the JSON dump here instead of stdout")
}
