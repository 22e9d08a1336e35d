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
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sixpack-lang/sixpack/pkg/bench"
)

// benchCmd represents the bench command
var benchCmd = &cobra.Command{
	Use:   "bench <script>",
	Short: "Run a multi-threaded throughput benchmark against a compiled script.",
	Long: "Compile a declaration script and hammer it with concurrent worker goroutines " +
		"for a fixed duration, reporting aggregate throughput.",
	Args: cobra.ExactArgs(1),
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

		workers, _ := cmd.Flags().GetInt("workers")
		duration, _ := cmd.Flags().GetDuration("duration")
		vector, _ := cmd.Flags().GetBool("vector")

		backend := bench.Scalar
		if vector {
			backend = bench.Vector
		}

		result := bench.Run(prog, bench.Options{
			Workers:  workers,
			Duration: duration,
			Inputs:   inputs,
			Backend:  backend,
		})

		fmt.Printf("%d workers, %s: %d runs (%.0f runs/s)\n",
			result.Workers, result.Duration, result.TotalRuns, result.RunsPerSecond)
	},
}

func init() {
	rootCmd.AddCommand(benchCmd)
	benchCmd.Flags().StringArray("set", nil, "set an input value, name=value (repeatable)")
	benchCmd.Flags().Int("workers", 0, "number of concurrent workers (default: NumCPU)")
	benchCmd.Flags().Duration("duration", time.Second, "how long to run the benchmark")
	benchCmd.Flags().Bool("vector", false, "drive the vector interpreter instead of the scalar one")
}
