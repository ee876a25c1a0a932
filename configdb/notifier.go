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

package configdb

import (
	"fmt"
	"strings"
)

// keySpaceEventFormat is the channel name prefix of Redis keyspace
// notifications, parameterized by the logical database id.
const keySpaceEventFormat = "__keyspace@%d__:"

// ChangeHandler handles a content change of one table entry.  It
// receives the current row as freshly read from the store; a nil-length
// row means the entry was deleted.
type ChangeHandler func(table string, key Key, data Row)

// Subscribe registers a handler for content changes of a table.  At
// most one handler is kept per table; registering again replaces the
// previous one.  A single handler can serve several tables by passing
// it to Subscribe multiple times.
func (c *ConfigDBConnector) Subscribe(table string, handler ChangeHandler) {
	c.handlers[table] = handler
}

// Unsubscribe removes the handler registered for a table.
func (c *ConfigDBConnector) Unsubscribe(table string) {
	delete(c.handlers, table)
}

func (c *ConfigDBConnector) fire(table string, key Key, data Row) {
	if handler, ok := c.handlers[table]; ok {
		handler(table, key, data)
	}
}

// Listen blocks pulling keyspace events of the connected database and
// fires the handler registered for the mutated table, if any.  Events
// are processed strictly one at a time: the current row is re-read and
// the handler has returned before the next event is received, so a slow
// handler delays everything behind it.  Keys that do not carry a table
// prefix are ignored; the key space may legitimately contain foreign
// entries.  Listen returns when the event stream breaks, with the
// error that broke it.
func (c *ConfigDBConnector) Listen() error {
	client, err := c.client()
	if err != nil {
		return err
	}
	dbID, err := c.GetDBID(c.dbName)
	if err != nil {
		return err
	}

	pattern := fmt.Sprintf(keySpaceEventFormat, dbID) + "*"
	c.Debugf("Listen(): PSubscribe %s", pattern)
	pubsub := client.PSubscribe(pattern)
	defer pubsub.Close()

	for {
		msg, err := pubsub.ReceiveMessage()
		if err != nil {
			return fmt.Errorf("listen on %s failed: %s", pattern, err)
		}
		parts := strings.SplitN(msg.Channel, ":", 2)
		if len(parts) < 2 {
			continue
		}
		key := parts[1]
		tableRow := strings.SplitN(key, c.separator, 2)
		if len(tableRow) < 2 {
			continue
		}
		table, row := tableRow[0], tableRow[1]
		if _, ok := c.handlers[table]; !ok {
			continue
		}
		// The keyspace event does not convey the value, only the
		// operation.  Re-read the entry.
		raw, err := client.HGetAll(key).Result()
		if err != nil {
			return fmt.Errorf("Do(HGETALL) failed: %s", err)
		}
		c.fire(table, c.DeserializeKey(row), rawToTyped(raw))
	}
}
