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
	"strings"

	"github.com/spf13/cobra"

	"github.com/sonic-net/go-swsssdk/configdb"
)

var setCmd = &cobra.Command{
	Use:     "set <table> <key> <column=value>...",
	Aliases: []string{"s"},
	Short:   "Write one table entry, pruning columns not given",
	Long: `
Write a table entry.  Columns present in the database but not on the
command line are removed.  A column name ending in '@' takes a
comma-separated list value.
`,
	Example: ` Replace a port entry:
   $ configdbctl set PORT Ethernet0 mtu=9100 lanes@=29,30,31,32`,
	Args: cobra.MinimumNArgs(2),
	Run:  setFunction,
}

var modCmd = &cobra.Command{
	Use:     "mod <table> <key> <column=value>...",
	Aliases: []string{"m"},
	Short:   "Merge columns into one table entry",
	Long: `
Merge columns into a table entry.  Columns not on the command line are
left untouched.  A column name ending in '@' takes a comma-separated
list value.
`,
	Args: cobra.MinimumNArgs(2),
	Run:  modFunction,
}

func init() {
	RootCmd.AddCommand(setCmd)
	RootCmd.AddCommand(modCmd)
}

func setFunction(cmd *cobra.Command, args []string) {
	cdb := connect()
	defer cdb.Close()

	data, err := parseRow(args[2:])
	if err != nil {
		exitWithError(err)
	}
	if err := cdb.SetEntry(args[0], cdb.DeserializeKey(args[1]), data); err != nil {
		exitWithError(err)
	}
}

func modFunction(cmd *cobra.Command, args []string) {
	cdb := connect()
	defer cdb.Close()

	data, err := parseRow(args[2:])
	if err != nil {
		exitWithError(err)
	}
	if err := cdb.ModEntry(args[0], cdb.DeserializeKey(args[1]), data); err != nil {
		exitWithError(err)
	}
}

func parseRow(args []string) (configdb.Row, error) {
	data := configdb.Row{}
	for _, arg := range args {
		kv := strings.SplitN(arg, "=", 2)
		if len(kv) < 2 {
			return nil, fmt.Errorf("expected column=value, got %q", arg)
		}
		if strings.HasSuffix(kv[0], "@") {
			data[strings.TrimSuffix(kv[0], "@")] = configdb.List(strings.Split(kv[1], ",")...)
		} else {
			data[kv[0]] = configdb.Scalar(kv[1])
		}
	}
	return data, nil
}
