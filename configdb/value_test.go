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

	"github.com/ghodss/yaml"
	. "github.com/onsi/gomega"
)

func TestRawToTyped(t *testing.T) {
	RegisterTestingT(t)

	Expect(rawToTyped(nil)).To(BeNil())
	Expect(rawToTyped(map[string]string{})).To(Equal(Row{}))

	// the NULL placeholder produces no column
	Expect(rawToTyped(map[string]string{"NULL": "NULL"})).To(Equal(Row{}))

	Expect(rawToTyped(map[string]string{
		"admin_status": "up",
		"members@":     "Ethernet0,Ethernet4",
	})).To(Equal(Row{
		"admin_status": Scalar("up"),
		"members":      List("Ethernet0", "Ethernet4"),
	}))
}

func TestTypedToRaw(t *testing.T) {
	RegisterTestingT(t)

	Expect(typedToRaw(nil)).To(BeNil())
	Expect(typedToRaw(Row{})).To(Equal(map[string]interface{}{"NULL": "NULL"}))

	Expect(typedToRaw(Row{
		"mtu":     Scalar("9100"),
		"members": List("Ethernet0", "Ethernet4"),
		"oneitem": List("Ethernet8"),
	})).To(Equal(map[string]interface{}{
		"mtu":      "9100",
		"members@": "Ethernet0,Ethernet4",
		"oneitem@": "Ethernet8",
	}))
}

func TestValueRoundTrip(t *testing.T) {
	RegisterTestingT(t)

	rows := []Row{
		{},
		{"admin_status": Scalar("up")},
		{"members": List("Ethernet0", "Ethernet4"), "mtu": Scalar("9100")},
	}
	for _, row := range rows {
		raw := map[string]string{}
		for field, value := range typedToRaw(row) {
			raw[field] = value.(string)
		}
		Expect(rawToTyped(raw)).To(Equal(row))
	}
}

func TestValueYaml(t *testing.T) {
	RegisterTestingT(t)

	row := Row{
		"admin_status": Scalar("up"),
		"members":      List("Ethernet0", "Ethernet4"),
	}
	out, err := yaml.Marshal(row)
	Expect(err).To(BeNil())

	decoded := Row{}
	err = yaml.Unmarshal(out, &decoded)
	Expect(err).To(BeNil())
	Expect(decoded).To(Equal(row))
}
