// Copyright (c) 2018 Cisco and/or its affiliates.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at:
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package commands

import (
	"fmt"

	"github.com/ghodss/yaml"
	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:     "get <table> <key>",
	Aliases: []string{"g"},
	Short:   "Read one table entry",
	Example: ` Read a BGP neighbor:
   $ configdbctl get BGP_NEIGHBOR 10.0.0.1`,
	Args: cobra.ExactArgs(2),
	Run:  getFunction,
}

func init() {
	RootCmd.AddCommand(getCmd)
}

func getFunction(cmd *cobra.Command, args []string) {
	cdb := connect()
	defer cdb.Close()

	entry, err := cdb.GetEntry(args[0], cdb.DeserializeKey(args[1]))
	if err != nil {
		exitWithError(err)
	}
	out, err := yaml.Marshal(entry)
	if err != nil {
		exitWithError(err)
	}
	fmt.Print(string(out))
}
