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
	"encoding/json"
	"strings"
)

const (
	// nullField is stored as both field name and value as a placeholder
	// for rows with no columns, since Redis cannot represent an empty hash.
	nullField = "NULL"

	// listSuffix marks list-valued columns on the wire.
	// TODO: Replace this with a schema-based typing mechanism.
	listSuffix = "@"

	// listSeparator joins list elements on the wire.  Elements must not
	// contain it; no escaping is performed.
	listSeparator = ","
)

// Value is a column value: either a scalar string or an ordered list of
// strings.
type Value struct {
	scalar string
	list   []string
	isList bool
}

// Scalar returns a scalar column value.
func Scalar(s string) Value {
	return Value{scalar: s}
}

// List returns a list column value.
func List(elements ...string) Value {
	return Value{list: elements, isList: true}
}

// IsList reports whether the value is list-typed.
func (v Value) IsList() bool {
	return v.isList
}

// List returns the elements of a list value, or nil for a scalar.
func (v Value) List() []string {
	return v.list
}

// String returns the scalar value, or the comma-joined elements for a
// list value.
func (v Value) String() string {
	if v.isList {
		return strings.Join(v.list, listSeparator)
	}
	return v.scalar
}

// MarshalJSON encodes a scalar as a JSON string and a list as a JSON
// array of strings.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.isList {
		return json.Marshal(v.list)
	}
	return json.Marshal(v.scalar)
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (v *Value) UnmarshalJSON(b []byte) error {
	var list []string
	if err := json.Unmarshal(b, &list); err == nil {
		*v = List(list...)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*v = Scalar(s)
	return nil
}

// Row holds the typed columns of one table entry.  A nil Row passed to
// SetEntry or ModEntry deletes the entry; an empty Row creates an entry
// with no columns.
type Row map[string]Value

// Table maps serialized row keys to rows.
type Table map[string]Row

// Config maps table names to tables.  A nil Table passed to ModConfig
// deletes the whole table.
type Config map[string]Table

// rawToTyped decodes the raw hash fields of an entry.  A nil map (no
// such hash) decodes to a nil Row, anything else to a non-nil Row: the
// NULL placeholder field is dropped and fields carrying the list suffix
// are split into list values.
func rawToTyped(raw map[string]string) Row {
	if raw == nil {
		return nil
	}
	typed := make(Row, len(raw))
	for field, value := range raw {
		if field == nullField {
			continue
		}
		if strings.HasSuffix(field, listSuffix) {
			typed[strings.TrimSuffix(field, listSuffix)] = List(strings.Split(value, listSeparator)...)
		} else {
			typed[field] = Scalar(value)
		}
	}
	return typed
}

// typedToRaw encodes a row into hash fields.  A nil row encodes to nil,
// an empty row to the single NULL placeholder field.
func typedToRaw(data Row) map[string]interface{} {
	if data == nil {
		return nil
	}
	if len(data) == 0 {
		return map[string]interface{}{nullField: nullField}
	}
	raw := make(map[string]interface{}, len(data))
	for column, value := range data {
		if value.IsList() {
			raw[column+listSuffix] = value.String()
		} else {
			raw[column] = value.String()
		}
	}
	return raw
}
