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
	"testing"

	goredis "github.com/go-redis/redis"
	. "github.com/onsi/gomega"
)

type change struct {
	table string
	key   Key
	data  Row
}

// newPublisher returns a raw client used by tests to stand in for the
// server's keyspace notifier (miniredis does not emit keyspace events
// on its own).
func newPublisher(addr string) *goredis.Client {
	return goredis.NewClient(&goredis.Options{Addr: addr, DB: 4})
}

// waitForSubscriber publishes to a channel that no handler matches
// until the listener's pattern subscription is in place.
func waitForSubscriber(pub *goredis.Client, channel string) {
	Eventually(func() int64 {
		n, _ := pub.Publish(channel, "noise").Result()
		return n
	}, "3s", "10ms").Should(BeNumerically(">=", 1))
}

func TestSubscribeRegistry(t *testing.T) {
	RegisterTestingT(t)

	cdb := NewConfigDBConnector(nil)
	fired := ""
	cdb.Subscribe("PORT", func(table string, key Key, data Row) { fired = "first" })
	cdb.Subscribe("PORT", func(table string, key Key, data Row) { fired = "second" })
	Expect(cdb.handlers).To(HaveLen(1))

	// last registration wins
	cdb.fire("PORT", NewKey("Ethernet0"), Row{})
	Expect(fired).To(Equal("second"))

	// firing an unsubscribed table is a no-op
	cdb.fire("VLAN", NewKey("Vlan100"), Row{})

	cdb.Unsubscribe("PORT")
	Expect(cdb.handlers).To(BeEmpty())
}

func TestListen(t *testing.T) {
	cdb, m := testSetup(t)
	defer m.Close()
	defer cdb.Close()

	changes := make(chan change, 10)
	cdb.Subscribe("PORT", func(table string, key Key, data Row) {
		changes <- change{table, key, data}
	})

	done := make(chan error, 1)
	go func() {
		done <- cdb.Listen()
	}()

	pub := newPublisher(m.Addr())
	defer pub.Close()
	waitForSubscriber(pub, "__keyspace@4__:probe")

	err := cdb.SetEntry("PORT", NewKey("Ethernet0"), Row{"mtu": Scalar("9100")})
	Expect(err).To(BeNil())
	Expect(pub.Publish("__keyspace@4__:PORT|Ethernet0", "hset").Err()).To(BeNil())

	var got change
	Eventually(changes, "3s").Should(Receive(&got))
	Expect(got.table).To(Equal("PORT"))
	Expect(got.key).To(Equal(NewKey("Ethernet0")))
	Expect(got.data).To(Equal(Row{"mtu": Scalar("9100")}))

	// mutations of other tables and non table-formatted keys are
	// ignored; events are processed in order, so the next PORT event
	// arriving alone proves the two before it were dropped
	Expect(pub.Publish("__keyspace@4__:VLAN|Vlan100", "hset").Err()).To(BeNil())
	Expect(pub.Publish("__keyspace@4__:ORPHAN_KEY", "set").Err()).To(BeNil())

	err = cdb.SetEntry("PORT", NewKey("Ethernet0"), nil)
	Expect(err).To(BeNil())
	Expect(pub.Publish("__keyspace@4__:PORT|Ethernet0", "del").Err()).To(BeNil())

	Eventually(changes, "3s").Should(Receive(&got))
	Expect(got.table).To(Equal("PORT"))
	Expect(got.data).To(BeEmpty())
	Consistently(changes, "200ms").ShouldNot(Receive())

	// the listener exits with the stream
	m.Close()
	Eventually(done, "10s").Should(Receive())
}

func TestListenCompositeKey(t *testing.T) {
	cdb, m := testSetup(t)
	defer m.Close()
	defer cdb.Close()

	changes := make(chan change, 10)
	cdb.Subscribe("VLAN_MEMBER", func(table string, key Key, data Row) {
		changes <- change{table, key, data}
	})

	done := make(chan error, 1)
	go func() {
		done <- cdb.Listen()
	}()

	pub := newPublisher(m.Addr())
	defer pub.Close()
	waitForSubscriber(pub, "__keyspace@4__:probe")

	err := cdb.SetEntry("VLAN_MEMBER", NewKey("Vlan100", "Ethernet0"), Row{"tagging_mode": Scalar("untagged")})
	Expect(err).To(BeNil())
	Expect(pub.Publish("__keyspace@4__:VLAN_MEMBER|Vlan100|Ethernet0", "hset").Err()).To(BeNil())

	var got change
	Eventually(changes, "3s").Should(Receive(&got))
	Expect(got.key).To(Equal(NewKey("Vlan100", "Ethernet0")))
	Expect(got.data).To(Equal(Row{"tagging_mode": Scalar("untagged")}))
}

func TestWaitForInitImmediate(t *testing.T) {
	cdb, m := testSetup(t)
	defer m.Close()
	defer cdb.Close()

	client, err := cdb.GetRedisClient(ConfigDBName)
	Expect(err).To(BeNil())
	Expect(client.Set(InitIndicator, "1", 0).Err()).To(BeNil())

	Expect(cdb.WaitForInit()).To(BeNil())
}

func TestWaitForInit(t *testing.T) {
	cdb, m := testSetup(t)
	defer m.Close()
	defer cdb.Close()

	done := make(chan error, 1)
	go func() {
		done <- cdb.WaitForInit()
	}()

	pub := newPublisher(m.Addr())
	defer pub.Close()
	channel := "__keyspace@4__:" + InitIndicator
	waitForSubscriber(pub, channel)

	// events published so far carried no value: the barrier re-checks
	// the indicator and must keep waiting
	Consistently(done, "300ms").ShouldNot(Receive())

	client, err := cdb.GetRedisClient(ConfigDBName)
	Expect(err).To(BeNil())
	Expect(client.Set(InitIndicator, "1", 0).Err()).To(BeNil())
	Expect(pub.Publish(channel, "set").Err()).To(BeNil())

	var waitErr error
	Eventually(done, "3s").Should(Receive(&waitErr))
	Expect(waitErr).To(BeNil())
}
