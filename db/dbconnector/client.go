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
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"io/ioutil"
	"time"

	goredis "github.com/go-redis/redis"
)

// Nil is returned by Redis when a key does not exist, e.g. by Get.
const Nil = goredis.Nil

// Client is the common interface to all types of Redis clients.
// Rather than embedding the whole goredis.Cmdable, only the commands
// this SDK actually issues are declared, which keeps the interface
// implementable by test doubles.
type Client interface {
	Get(key string) *goredis.StringCmd
	Set(key string, value interface{}, expiration time.Duration) *goredis.StatusCmd
	HGetAll(key string) *goredis.StringStringMapCmd
	HMSet(key string, fields map[string]interface{}) *goredis.StatusCmd
	HDel(key string, fields ...string) *goredis.IntCmd
	Del(keys ...string) *goredis.IntCmd
	Keys(pattern string) *goredis.StringSliceCmd
	Ping() *goredis.StatusCmd
	PSubscribe(channels ...string) *goredis.PubSub
	Close() error
}

// PubSub is the subscription handle returned by Client.PSubscribe.
// *goredis.PubSub satisfies it.
type PubSub interface {
	ReceiveMessage() (*goredis.Message, error)
	PUnsubscribe(patterns ...string) error
	Close() error
}

// CreateClient creates a client connected to the given logical database
// of the Redis instance described by config.
func CreateClient(config *Config, db int) (Client, error) {
	var tlsConfig *tls.Config
	if config.TLS.Enabled {
		var err error
		tlsConfig, err = createTLSConfig(config.TLS)
		if err != nil {
			return nil, err
		}
	}
	return goredis.NewClient(&goredis.Options{
		Network: "tcp",
		Addr:    config.Endpoint,

		// Database to be selected after connecting to the server.
		DB: db,

		// TLS Config to use. When set TLS will be negotiated.
		TLSConfig: tlsConfig,

		// Optional password. Must match the password specified in the
		// requirepass server configuration option.
		Password: config.Password,

		DialTimeout:  config.DialTimeout,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		PoolSize:     config.PoolSize,
	}), nil
}

func createTLSConfig(config TLS) (*tls.Config, error) {
	var (
		cp  *x509.CertPool
		err error
	)
	tlsConfig := &tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: config.SkipVerify,
	}
	if config.Certfile != "" && config.Keyfile != "" {
		cert, err := tls.LoadX509KeyPair(config.Certfile, config.Keyfile)
		if err != nil {
			return nil, fmt.Errorf("tls.LoadX509KeyPair() failed: %s", err)
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	}
	if config.CAfile != "" {
		cp, err = newCertPool(config.CAfile)
		if err != nil {
			return nil, fmt.Errorf("newCertPool() failed: %s", err)
		}
		tlsConfig.RootCAs = cp
	}
	return tlsConfig, nil
}

func newCertPool(caFile string) (*x509.CertPool, error) {
	pem, err := ioutil.ReadFile(caFile)
	if err != nil {
		return nil, err
	}
	cp := x509.NewCertPool()
	if !cp.AppendCertsFromPEM(pem) {
		return nil, fmt.Errorf("no certificates found in %s", caFile)
	}
	return cp, nil
}
