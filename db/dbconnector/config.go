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

package dbconnector

import (
	"io/ioutil"
	"time"

	"github.com/ghodss/yaml"
)

// Database describes one named logical database inside the Redis instance.
type Database struct {
	// ID is the Redis logical database selected after connecting.
	ID int `json:"id"`
	// Separator joins the table name with the row key, and the segments
	// of a composite row key, in the flat key space of this database.
	Separator string `json:"separator"`
}

// TLS configures TLS properties of the client connection.
type TLS struct {
	Enabled    bool   `json:"enabled"`     // enable/disable TLS
	SkipVerify bool   `json:"skip-verify"` // whether to skip verification of server name & certificate
	Certfile   string `json:"cert-file"`   // client certificate
	Keyfile    string `json:"key-file"`    // client private key
	CAfile     string `json:"ca-file"`     // certificate authority
}

// Config holds the client configuration for a single Redis instance and
// the map of named databases it serves.
type Config struct {
	// Endpoint is the host:port address of the Redis instance.
	Endpoint string `json:"endpoint"`
	// Password for authentication, if required.
	Password string `json:"password"`
	// DialTimeout for establishing new connections. Default is 5 seconds.
	DialTimeout time.Duration `json:"dial-timeout"`
	// ReadTimeout for socket reads. If reached, commands will fail with
	// a timeout instead of blocking. Default is 3 seconds.
	ReadTimeout time.Duration `json:"read-timeout"`
	// WriteTimeout for socket writes. Default is ReadTimeout.
	WriteTimeout time.Duration `json:"write-timeout"`
	// PoolSize is the maximum number of socket connections.
	// Default is 10 connections per every CPU.
	PoolSize int `json:"pool-size"`
	// TLS configuration of the connection.
	TLS TLS `json:"tls"`
	// Databases maps database names to their id and separator.
	// When empty, the standard database map is used.
	Databases map[string]Database `json:"databases"`
}

// DefaultEndpoint is used when the configuration does not name one.
// Redis is reached over TCP by default, which does not require root.
const DefaultEndpoint = "127.0.0.1:6379"

// defaultDatabases is the standard map of named databases and their
// key separators as populated on the device.
var defaultDatabases = map[string]Database{
	"APPL_DB":         {ID: 0, Separator: ":"},
	"ASIC_DB":         {ID: 1, Separator: ":"},
	"COUNTERS_DB":     {ID: 2, Separator: ":"},
	"LOGLEVEL_DB":     {ID: 3, Separator: ":"},
	"CONFIG_DB":       {ID: 4, Separator: "|"},
	"PFC_WD_DB":       {ID: 5, Separator: ":"},
	"FLEX_COUNTER_DB": {ID: 5, Separator: ":"},
	"STATE_DB":        {ID: 6, Separator: "|"},
}

// DefaultConfig returns a configuration pointing at the local Redis
// instance with the standard database map.
func DefaultConfig() *Config {
	return &Config{
		Endpoint:  DefaultEndpoint,
		Databases: databases(nil),
	}
}

// LoadConfig loads the given configFile and returns a Config instance.
// Missing fields are filled in with defaults.
func LoadConfig(configFile string) (*Config, error) {
	b, err := ioutil.ReadFile(configFile)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	err = yaml.Unmarshal(b, cfg)
	if err != nil {
		return nil, err
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	cfg.Databases = databases(cfg.Databases)
	return cfg, nil
}

func databases(m map[string]Database) map[string]Database {
	if len(m) > 0 {
		return m
	}
	dbs := make(map[string]Database, len(defaultDatabases))
	for name, db := range defaultDatabases {
		dbs[name] = db
	}
	return dbs
}
