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
	"testing"

	"github.com/alicebob/miniredis/v2"
	. "github.com/onsi/gomega"
)

func TestConnect(t *testing.T) {
	RegisterTestingT(t)

	m, err := miniredis.Run()
	Expect(err).To(BeNil())
	defer m.Close()

	conn := NewConnector(&Config{Endpoint: m.Addr()}, nil)

	_, err = conn.GetRedisClient("CONFIG_DB")
	Expect(err).To(Equal(ErrNotConnected))

	err = conn.Connect("CONFIG_DB", false)
	Expect(err).To(BeNil())

	client, err := conn.GetRedisClient("CONFIG_DB")
	Expect(err).To(BeNil())
	Expect(client.Ping().Err()).To(BeNil())

	// connecting again is a no-op
	Expect(conn.Connect("CONFIG_DB", false)).To(BeNil())

	Expect(conn.Close()).To(BeNil())
	err = conn.Connect("CONFIG_DB", false)
	Expect(err).To(HaveOccurred())
}

func TestConnectUnknownDatabase(t *testing.T) {
	RegisterTestingT(t)

	conn := NewConnector(nil, nil)
	err := conn.Connect("NO_SUCH_DB", false)
	Expect(err).To(HaveOccurred())
}

func TestConnectFailure(t *testing.T) {
	RegisterTestingT(t)

	// nothing listens here; without retry the failure surfaces at once
	conn := NewConnector(&Config{Endpoint: "127.0.0.1:1"}, nil)
	err := conn.Connect("CONFIG_DB", false)
	Expect(err).To(HaveOccurred())
}

func TestDatabaseMap(t *testing.T) {
	RegisterTestingT(t)

	conn := NewConnector(nil, nil)

	id, err := conn.GetDBID("CONFIG_DB")
	Expect(err).To(BeNil())
	Expect(id).To(Equal(4))

	sep, err := conn.GetDBSeparator("CONFIG_DB")
	Expect(err).To(BeNil())
	Expect(sep).To(Equal("|"))

	sep, err = conn.GetDBSeparator("APPL_DB")
	Expect(err).To(BeNil())
	Expect(sep).To(Equal(":"))

	_, err = conn.GetDBID("NO_SUCH_DB")
	Expect(err).To(HaveOccurred())
	_, err = conn.GetDBSeparator("NO_SUCH_DB")
	Expect(err).To(HaveOccurred())
}
