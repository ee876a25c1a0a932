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
	"bytes"
	"fmt"
	"time"

	"github.com/go-errors/errors"
	"github.com/ligato/cn-infra/logging"
	"github.com/ligato/cn-infra/logging/logrus"
)

// connectRetryWait is the pause between connection attempts when
// Connect is asked to retry.
const connectRetryWait = 10 * time.Second

// ErrNotConnected is returned when a database client is requested
// before Connect succeeded for that database.
var ErrNotConnected = errors.New("database is not connected")

// Connector maintains one Redis client per connected named database.
type Connector struct {
	logging.Logger

	config  *Config
	clients map[string]Client

	// Flag to indicate whether this connector is closed.
	closed bool
}

// NewConnector creates a connector for the Redis instance described by
// config.  A nil config selects DefaultConfig.  A nil log selects the
// default logger.
func NewConnector(config *Config, log logging.Logger) *Connector {
	if config == nil {
		config = DefaultConfig()
	} else {
		config.Databases = databases(config.Databases)
	}
	if log == nil {
		log = logrus.DefaultLogger()
	}
	return &Connector{
		Logger:  log,
		config:  config,
		clients: make(map[string]Client),
	}
}

// Connect establishes a client to the named database and verifies it
// with a ping.  With retryOn set, failed attempts are retried every
// connectRetryWait until the database becomes reachable; otherwise the
// first failure is returned.
func (c *Connector) Connect(dbName string, retryOn bool) error {
	if c.closed {
		return fmt.Errorf("Connect(%s) called on a closed connector", dbName)
	}
	db, ok := c.config.Databases[dbName]
	if !ok {
		return fmt.Errorf("unknown database name %q", dbName)
	}
	if _, ok := c.clients[dbName]; ok {
		return nil
	}

	for {
		client, err := CreateClient(c.config, db.ID)
		if err == nil {
			err = client.Ping().Err()
			if err != nil {
				client.Close()
			}
		}
		if err == nil {
			c.Debugf("Connect(%s): connected to %s db %d", dbName, c.config.Endpoint, db.ID)
			c.clients[dbName] = client
			return nil
		}
		if !retryOn {
			return fmt.Errorf("Connect(%s) failed: %s", dbName, err)
		}
		c.Warnf("Connect(%s) failed: %s, retrying in %v", dbName, err, connectRetryWait)
		time.Sleep(connectRetryWait)
	}
}

// GetRedisClient returns the client of an already connected database.
func (c *Connector) GetRedisClient(dbName string) (Client, error) {
	client, ok := c.clients[dbName]
	if !ok {
		return nil, ErrNotConnected
	}
	return client, nil
}

// GetDBID returns the Redis logical database id of the named database.
func (c *Connector) GetDBID(dbName string) (int, error) {
	db, ok := c.config.Databases[dbName]
	if !ok {
		return 0, fmt.Errorf("unknown database name %q", dbName)
	}
	return db.ID, nil
}

// GetDBSeparator returns the key separator of the named database.
func (c *Connector) GetDBSeparator(dbName string) (string, error) {
	db, ok := c.config.Databases[dbName]
	if !ok {
		return "", fmt.Errorf("unknown database name %q", dbName)
	}
	return db.Separator, nil
}

// Close disconnects all database clients.
func (c *Connector) Close() error {
	if c.closed {
		return nil
	}
	c.Debug("Close()")
	c.closed = true
	var buf bytes.Buffer
	for dbName, client := range c.clients {
		if err := client.Close(); err != nil {
			if buf.Len() > 0 {
				buf.WriteString("\n")
			}
			buf.WriteString(err.Error())
		}
		delete(c.clients, dbName)
	}
	if buf.Len() > 0 {
		return errors.New(buf.String())
	}
	return nil
}
