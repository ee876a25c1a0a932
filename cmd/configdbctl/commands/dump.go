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
	"github.com/logrusorgru/aurora"
	"github.com/spf13/cobra"
)

var dumpCmd = &cobra.Command{
	Use:   "dump [table]",
	Short: "Dump a table, or the whole database, as yaml",
	Args:  cobra.MaximumNArgs(1),
	Run:   dumpFunction,
}

var keysCmd = &cobra.Command{
	Use:   "keys <table>",
	Short: "List the row keys of a table",
	Args:  cobra.ExactArgs(1),
	Run:   keysFunction,
}

func init() {
	RootCmd.AddCommand(dumpCmd)
	RootCmd.AddCommand(keysCmd)
}

func dumpFunction(cmd *cobra.Command, args []string) {
	cdb := connect()
	defer cdb.Close()

	var (
		data interface{}
		err  error
	)
	if len(args) == 1 {
		data, err = cdb.GetTable(args[0])
	} else {
		data, err = cdb.GetConfig()
	}
	if err != nil {
		exitWithError(err)
	}
	out, err := yaml.Marshal(data)
	if err != nil {
		exitWithError(err)
	}
	if len(args) == 1 {
		fmt.Printf("%s:\n", aurora.Bold(args[0]))
	}
	fmt.Print(string(out))
}

func keysFunction(cmd *cobra.Command, args []string) {
	cdb := connect()
	defer cdb.Close()

	keys, err := cdb.GetKeys(args[0], true)
	if err != nil {
		exitWithError(err)
	}
	for _, key := range keys {
		fmt.Println(cdb.SerializeKey(key))
	}
}
