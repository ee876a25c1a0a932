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

import "strings"

// Key is the row key of a table entry.  A single-segment key addresses
// a plain table row, a multi-segment key addresses a row of a multi-key
// table.  Segments must not contain the database's key separator: the
// wire format performs no escaping and a separator inside a segment
// cannot be told apart from a segment boundary after a round trip.
type Key []string

// NewKey builds a Key from its segments.
func NewKey(segments ...string) Key {
	return Key(segments)
}

// SerializeKey encodes the key into its flat string form by joining the
// segments with the separator.
func SerializeKey(key Key, separator string) string {
	return strings.Join(key, separator)
}

// DeserializeKey splits a flat key string on the separator.  A string
// without a separator yields a single-segment key.
func DeserializeKey(raw string, separator string) Key {
	return Key(strings.Split(raw, separator))
}

// SerializeKey encodes a row key with the connected database's separator.
func (c *ConfigDBConnector) SerializeKey(key Key) string {
	return SerializeKey(key, c.separator)
}

// DeserializeKey decodes a row key with the connected database's separator.
func (c *ConfigDBConnector) DeserializeKey(raw string) Key {
	return DeserializeKey(raw, c.separator)
}
