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
	"github.com/spf13/cobra"
)

var delCmd = &cobra.Command{
	Use:     "del <table> [key]",
	Aliases: []string{"d"},
	Short:   "Delete one table entry, or a whole table",
	Args:    cobra.RangeArgs(1, 2),
	Run:     delFunction,
}

func init() {
	RootCmd.AddCommand(delCmd)
}

func delFunction(cmd *cobra.Command, args []string) {
	cdb := connect()
	defer cdb.Close()

	if len(args) == 1 {
		if err := cdb.DeleteTable(args[0]); err != nil {
			exitWithError(err)
		}
		return
	}
	if err := cdb.SetEntry(args[0], cdb.DeserializeKey(args[1]), nil); err != nil {
		exitWithError(err)
	}
}
