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

	"github.com/sonic-net/go-swsssdk/db/dbconnector"
)

// InitIndicator is the key whose value signals that the database has
// completed its initial bulk load.
const InitIndicator = "CONFIG_DB_INITIALIZED"

// WaitForInit blocks until the init indicator of the connected database
// is set.  If it is already set the call returns immediately; otherwise
// a throwaway subscription on the indicator key alone is used as the
// wake-up signal.  An event on the key is not taken as proof: the
// indicator is re-read, since the observed write may have raced with a
// concurrent delete.
func (c *ConfigDBConnector) WaitForInit() error {
	client, err := c.client()
	if err != nil {
		return err
	}
	initialized, err := c.initialized(client)
	if err != nil {
		return err
	}
	if initialized {
		return nil
	}

	dbID, err := c.GetDBID(c.dbName)
	if err != nil {
		return err
	}
	pattern := fmt.Sprintf(keySpaceEventFormat, dbID) + InitIndicator
	c.Debugf("WaitForInit(): PSubscribe %s", pattern)
	pubsub := client.PSubscribe(pattern)
	defer pubsub.Close()

	for {
		msg, err := pubsub.ReceiveMessage()
		if err != nil {
			return fmt.Errorf("wait on %s failed: %s", pattern, err)
		}
		parts := strings.SplitN(msg.Channel, ":", 2)
		if len(parts) < 2 || parts[1] != InitIndicator {
			continue
		}
		initialized, err := c.initialized(client)
		if err != nil {
			return err
		}
		if initialized {
			break
		}
	}
	pubsub.PUnsubscribe(pattern)
	return nil
}

func (c *ConfigDBConnector) initialized(client dbconnector.Client) (bool, error) {
	value, err := client.Get(InitIndicator).Result()
	if err == dbconnector.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("Do(GET) failed: %s", err)
	}
	return value != "", nil
}
