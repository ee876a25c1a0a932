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
	"os"

	"github.com/spf13/cobra"

	"github.com/sonic-net/go-swsssdk/configdb"
	"github.com/sonic-net/go-swsssdk/db/dbconnector"
)

var globalFlags struct {
	Endpoint   string
	Database   string
	ConfigFile string
}

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "configdbctl",
	Short: "configdbctl manages the configuration database of a network device",
	Long: `
configdbctl reads, writes and watches the typed tables of the device
configuration database (CONFIG_DB by default).
`,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&globalFlags.Endpoint, "endpoint", "e",
		dbconnector.DefaultEndpoint, "Redis endpoint (host:port)")
	RootCmd.PersistentFlags().StringVarP(&globalFlags.Database, "db", "d",
		configdb.ConfigDBName, "Named database to operate on")
	RootCmd.PersistentFlags().StringVar(&globalFlags.ConfigFile, "config", "",
		"Database configuration file (yaml)")
}

// connect builds a connector from the global flags and connects it.
func connect() *configdb.ConfigDBConnector {
	var (
		cfg *dbconnector.Config
		err error
	)
	if globalFlags.ConfigFile != "" {
		cfg, err = dbconnector.LoadConfig(globalFlags.ConfigFile)
		if err != nil {
			exitWithError(err)
		}
	} else {
		cfg = dbconnector.DefaultConfig()
		cfg.Endpoint = globalFlags.Endpoint
	}

	cdb := configdb.NewConfigDBConnector(cfg)
	if err := cdb.DBConnect(globalFlags.Database, false, false); err != nil {
		exitWithError(err)
	}
	return cdb
}

func exitWithError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
