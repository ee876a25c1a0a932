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

// Package dbconnector provides access to the named Redis databases of a
// network device.  Each database is identified by a well-known name
// (APPL_DB, CONFIG_DB, STATE_DB, ...) that maps to a Redis logical
// database id and a key separator.  The entity Connector maintains one
// client per connected database and hands them out to higher layers.
//
// Connection
//   import "github.com/sonic-net/go-swsssdk/db/dbconnector"
//
//   cfg := dbconnector.DefaultConfig()
//   conn := dbconnector.NewConnector(cfg, nil)
//   err := conn.Connect("CONFIG_DB", false)
//
// The server configuration can also be defined in a yaml file and
// loaded with LoadConfig(yamlFile).
package dbconnector
