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

	"github.com/logrusorgru/aurora"
	"github.com/spf13/cobra"

	"github.com/sonic-net/go-swsssdk/configdb"
)

var watchCmd = &cobra.Command{
	Use:     "watch <table>...",
	Aliases: []string{"w"},
	Short:   "Print content changes of the given tables",
	Long: `
Subscribe to the given tables and print every change until interrupted.
A change with no columns means the entry was deleted.
`,
	Example: ` Watch BGP neighbors and ports:
   $ configdbctl watch BGP_NEIGHBOR PORT`,
	Args: cobra.MinimumNArgs(1),
	Run:  watchFunction,
}

var waitCmd = &cobra.Command{
	Use:   "wait",
	Short: "Block until the database is marked fully populated",
	Args:  cobra.NoArgs,
	Run:   waitFunction,
}

func init() {
	RootCmd.AddCommand(watchCmd)
	RootCmd.AddCommand(waitCmd)
}

func watchFunction(cmd *cobra.Command, args []string) {
	cdb := connect()
	defer cdb.Close()

	for _, table := range args {
		cdb.Subscribe(table, printChange)
	}
	if err := cdb.Listen(); err != nil {
		exitWithError(err)
	}
}

func printChange(table string, key configdb.Key, data configdb.Row) {
	if len(data) == 0 {
		fmt.Printf("%s %s|%s\n", aurora.Red("DEL"), table, configdb.SerializeKey(key, "|"))
		return
	}
	fmt.Printf("%s %s|%s %v\n", aurora.Green("SET"), table, configdb.SerializeKey(key, "|"), data)
}

func waitFunction(cmd *cobra.Command, args []string) {
	cdb := connect()
	defer cdb.Close()

	if err := cdb.WaitForInit(); err != nil {
		exitWithError(err)
	}
	fmt.Println("initialized")
}
