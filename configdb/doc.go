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

// Package configdb layers a typed table/row/column data model and a
// change-notification mechanism on top of the flat Redis key space of
// the configuration database.  Rows are stored as Redis hashes under
// keys of the form TABLE<sep>key; list-valued columns are marked with a
// reserved '@' suffix on the field name and an otherwise empty row is
// kept alive by a NULL placeholder field.
//
//   +-----+  --> CRUD               +-------------------+  --> hashes    +-------+
//   | app |                         | ConfigDBConnector |                | Redis |
//   +-----+  <-- table callbacks    +-------------------+  <-- keyspace  +-------+
//                                                              events
//
// Write to the config DB:
//   cdb := configdb.NewConfigDBConnector(nil)
//   err := cdb.Connect(false, false)
//   err = cdb.ModEntry("BGP_NEIGHBOR", configdb.NewKey("10.0.0.1"), configdb.Row{
//       "admin_status": configdb.Scalar("up"),
//   })
//
// Watch config changes in a certain table:
//   cdb := configdb.NewConfigDBConnector(nil)
//   cdb.Subscribe("BGP_NEIGHBOR", func(table string, key configdb.Key, data configdb.Row) {
//       log.Infof("%s %v changed: %v", table, key, data)
//   })
//   err := cdb.Connect(true, true)
//   err = cdb.Listen()
//
// Listen owns the goroutine it is called on: events are pulled and the
// registered handlers fired one at a time, so a slow handler delays
// every subsequent event.  The handler registry is not synchronized;
// mutating subscriptions from another goroutine while Listen runs is
// the caller's responsibility.
package configdb
