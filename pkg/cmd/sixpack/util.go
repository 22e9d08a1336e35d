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
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sixpack-lang/sixpack/pkg/compiler"
	"github.com/sixpack-lang/sixpack/pkg/natives"
)

// getFlag reads an expected bool flag, exiting if the flag doesn't exist.
func getFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// compileScriptFile reads and compiles the script at path, with every
// built-in natives.All function pre-registered.
func compileScriptFile(path string) (*compiler.Compiler, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	c := compiler.NewCompiler()

	for _, fn := range natives.All() {
		if err := c.AddFunction(fn.Name(), fn.Function); err != nil {
			return nil, err
		}
	}

	if err := c.AddSourceScript(string(text)); err != nil {
		return nil, err
	}

	return c, nil
}

// parseAssignments parses a list of "name=value" strings into a map, the
// format --set accepts on both the run and bench subcommands.
func parseAssignments(assignments []string) (map[string]float64, error) {
	values := make(map[string]float64, len(assignments))

	for _, a := range assignments {
		name, raw, ok := strings.Cut(a, "=")
		if !ok {
			return nil, fmt.Errorf("malformed --set %q, expected name=value", a)
		}

		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed --set %q: %w", a, err)
		}

		values[name] = v
	}

	return values, nil
}
