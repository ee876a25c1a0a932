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

	"github.com/ligato/cn-infra/logging/logrus"

	"github.com/sonic-net/go-swsssdk/db/dbconnector"
)

// ConfigDBName is the named database holding the device configuration.
const ConfigDBName = "CONFIG_DB"

// ConfigDBConnector provides typed access to the tables of one named
// database.  All operations are synchronous and go straight to the
// store; no state is cached.
type ConfigDBConnector struct {
	*dbconnector.Connector

	dbName    string
	separator string
	handlers  map[string]ChangeHandler
}

// NewConfigDBConnector creates a connector for the Redis instance
// described by config.  A nil config selects the local instance with
// the standard database map.
func NewConfigDBConnector(config *dbconnector.Config) *ConfigDBConnector {
	return &ConfigDBConnector{
		Connector: dbconnector.NewConnector(config, logrus.DefaultLogger()),
		handlers:  make(map[string]ChangeHandler),
	}
}

// Connect connects to CONFIG_DB.  With waitForInit set it blocks until
// the database has been marked fully populated.
func (c *ConfigDBConnector) Connect(waitForInit bool, retryOn bool) error {
	return c.DBConnect(ConfigDBName, waitForInit, retryOn)
}

// DBConnect connects to an arbitrary named database.  The database's
// key separator is captured here and stays fixed for the lifetime of
// the connection.
func (c *ConfigDBConnector) DBConnect(dbName string, waitForInit bool, retryOn bool) error {
	separator, err := c.GetDBSeparator(dbName)
	if err != nil {
		return err
	}
	c.dbName = dbName
	c.separator = separator
	if err := c.Connector.Connect(dbName, retryOn); err != nil {
		return err
	}
	if waitForInit {
		return c.WaitForInit()
	}
	return nil
}

func (c *ConfigDBConnector) client() (dbconnector.Client, error) {
	return c.GetRedisClient(c.dbName)
}

// hashKey builds the flat store key of a table entry.
func (c *ConfigDBConnector) hashKey(table string, key Key) string {
	return strings.ToUpper(table) + c.separator + c.SerializeKey(key)
}

// tablePattern builds the glob matching every key of a table.
func (c *ConfigDBConnector) tablePattern(table string) string {
	return strings.ToUpper(table) + c.separator + "*"
}

// SetEntry writes a table entry, removing fields present in the store
// but absent from data.  A nil data deletes the entry; an empty Row
// creates an entry with no columns if not already existing.
func (c *ConfigDBConnector) SetEntry(table string, key Key, data Row) error {
	client, err := c.client()
	if err != nil {
		return err
	}
	hash := c.hashKey(table, key)
	c.Debugf("SetEntry(%s)", hash)

	if data == nil {
		if err := client.Del(hash).Err(); err != nil {
			return fmt.Errorf("Do(DEL) failed: %s", err)
		}
		return nil
	}
	original, err := c.GetEntry(table, key)
	if err != nil {
		return err
	}
	if err := client.HMSet(hash, typedToRaw(data)).Err(); err != nil {
		return fmt.Errorf("Do(HMSET) failed: %s", err)
	}
	for column, value := range original {
		if _, ok := data[column]; ok {
			continue
		}
		field := column
		if value.IsList() {
			field += listSuffix
		}
		if err := client.HDel(hash, field).Err(); err != nil {
			return fmt.Errorf("Do(HDEL) failed: %s", err)
		}
	}
	return nil
}

// ModEntry merges data into a table entry, leaving fields not mentioned
// in data untouched.  A nil data deletes the entry, same as SetEntry.
func (c *ConfigDBConnector) ModEntry(table string, key Key, data Row) error {
	client, err := c.client()
	if err != nil {
		return err
	}
	hash := c.hashKey(table, key)
	c.Debugf("ModEntry(%s)", hash)

	if data == nil {
		if err := client.Del(hash).Err(); err != nil {
			return fmt.Errorf("Do(DEL) failed: %s", err)
		}
		return nil
	}
	if err := client.HMSet(hash, typedToRaw(data)).Err(); err != nil {
		return fmt.Errorf("Do(HMSET) failed: %s", err)
	}
	return nil
}

// GetEntry reads one table entry.  A missing entry yields an empty Row;
// existence of a columnless entry is observable through GetTable only.
func (c *ConfigDBConnector) GetEntry(table string, key Key) (Row, error) {
	client, err := c.client()
	if err != nil {
		return nil, err
	}
	hash := c.hashKey(table, key)
	raw, err := client.HGetAll(hash).Result()
	if err != nil {
		return nil, fmt.Errorf("Do(HGETALL) failed: %s", err)
	}
	data := rawToTyped(raw)
	if data == nil {
		data = Row{}
	}
	return data, nil
}

// GetKeys reads all row keys of a table.  With split set, the table
// prefix is stripped before decoding.  Keys not carrying the table
// prefix are skipped.
func (c *ConfigDBConnector) GetKeys(table string, split bool) ([]Key, error) {
	client, err := c.client()
	if err != nil {
		return nil, err
	}
	pattern := c.tablePattern(table)
	c.Debugf("GetKeys(%s)", pattern)
	keys, err := client.Keys(pattern).Result()
	if err != nil {
		return nil, fmt.Errorf("Do(KEYS) failed: %s", err)
	}

	var rowKeys []Key
	for _, key := range keys {
		if split {
			parts := strings.SplitN(key, c.separator, 2)
			if len(parts) < 2 {
				continue
			}
			rowKeys = append(rowKeys, c.DeserializeKey(parts[1]))
		} else {
			rowKeys = append(rowKeys, c.DeserializeKey(key))
		}
	}
	return rowKeys, nil
}

// GetTable reads an entire table.  Entries that cannot be fetched or
// decoded are skipped.
func (c *ConfigDBConnector) GetTable(table string) (Table, error) {
	client, err := c.client()
	if err != nil {
		return nil, err
	}
	pattern := c.tablePattern(table)
	c.Debugf("GetTable(%s)", pattern)
	keys, err := client.Keys(pattern).Result()
	if err != nil {
		return nil, fmt.Errorf("Do(KEYS) failed: %s", err)
	}

	data := Table{}
	for _, key := range keys {
		parts := strings.SplitN(key, c.separator, 2)
		if len(parts) < 2 {
			continue
		}
		raw, err := client.HGetAll(key).Result()
		if err != nil {
			c.Debugf("GetTable(%s): skipping %s: %s", table, key, err)
			continue
		}
		data[parts[1]] = rawToTyped(raw)
	}
	return data, nil
}

// DeleteTable deletes every entry of a table.  The deletions are
// individual operations; there is no atomicity across them.
func (c *ConfigDBConnector) DeleteTable(table string) error {
	client, err := c.client()
	if err != nil {
		return err
	}
	pattern := c.tablePattern(table)
	c.Debugf("DeleteTable(%s)", pattern)
	keys, err := client.Keys(pattern).Result()
	if err != nil {
		return fmt.Errorf("Do(KEYS) failed: %s", err)
	}
	for _, key := range keys {
		if err := client.Del(key).Err(); err != nil {
			return fmt.Errorf("Do(DEL) failed: %s", err)
		}
	}
	return nil
}

// ModConfig merges multiple tables into the database.  Tables and rows
// not mentioned in config are kept; a nil Table deletes the whole
// table, a nil Row deletes that row.
func (c *ConfigDBConnector) ModConfig(config Config) error {
	for tableName, tableData := range config {
		if tableData == nil {
			if err := c.DeleteTable(tableName); err != nil {
				return err
			}
			continue
		}
		for rowKey, row := range tableData {
			if err := c.ModEntry(tableName, c.DeserializeKey(rowKey), row); err != nil {
				return err
			}
		}
	}
	return nil
}

// GetConfig reads the whole database.  Keys that do not split into
// table and row key are skipped, as are entries that cannot be fetched.
func (c *ConfigDBConnector) GetConfig() (Config, error) {
	client, err := c.client()
	if err != nil {
		return nil, err
	}
	c.Debug("GetConfig()")
	keys, err := client.Keys("*").Result()
	if err != nil {
		return nil, fmt.Errorf("Do(KEYS) failed: %s", err)
	}

	config := Config{}
	for _, key := range keys {
		parts := strings.SplitN(key, c.separator, 2)
		if len(parts) < 2 {
			continue
		}
		raw, err := client.HGetAll(key).Result()
		if err != nil {
			c.Debugf("GetConfig(): skipping %s: %s", key, err)
			continue
		}
		table := config[parts[0]]
		if table == nil {
			table = Table{}
			config[parts[0]] = table
		}
		table[parts[1]] = rawToTyped(raw)
	}
	return config, nil
}
