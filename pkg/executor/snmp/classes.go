// Copyright (c) 2026, DomainTricks Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package snmp

import (
	"fmt"
	"strings"
	"sync"
)

// Layout says how a class maps onto the MIB.
type Layout int

const (
	// Scalar classes are a group of .0 instances fetched with one GET and
	// returned as a single property-set.
	Scalar Layout = iota
	// Table classes are walked and returned as one property-set per row.
	Table
)

// Column is one object of a class. For scalars Sub is the full object OID
// suffix under Base (without the trailing .0); for tables it is the column number.
type Column struct {
	Name string
	Sub  string
}

// Class is a query class served from the MIB.
type Class struct {
	Name    string
	Layout  Layout
	Base    string
	Columns []Column
}

func (c Class) validate() error {
	if c.Name == "" {
		return fmt.Errorf("class name must not be empty")
	}
	if !strings.HasPrefix(c.Base, ".") {
		return fmt.Errorf("class %s: base OID %q must start with '.'", c.Name, c.Base)
	}
	if len(c.Columns) == 0 {
		return fmt.Errorf("class %s has no columns", c.Name)
	}
	return nil
}

// column returns the column for an OID suffix.
func (c Class) column(sub string) (Column, bool) {
	for _, col := range c.Columns {
		if col.Sub == sub {
			return col, true
		}
	}
	return Column{}, false
}

var (
	registryMu sync.RWMutex
	registry   = map[string]Class{}
)

// Register adds or replaces a class. Names are case-insensitive.
func Register(c Class) error {
	if err := c.validate(); err != nil {
		return err
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[strings.ToLower(c.Name)] = c
	return nil
}

// Lookup returns the registered class with the given name.
func Lookup(name string) (Class, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	c, ok := registry[strings.ToLower(name)]
	return c, ok
}

// Classes returns the names of all registered classes.
func Classes() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]string, 0, len(registry))
	for _, c := range registry {
		out = append(out, c.Name)
	}
	return out
}

func mustRegister(c Class) {
	if err := Register(c); err != nil {
		panic(err)
	}
}

func init() {
	// SNMPv2-MIB system group.
	mustRegister(Class{
		Name:   "system",
		Layout: Scalar,
		Base:   ".1.3.6.1.2.1.1",
		Columns: []Column{
			{"sysDescr", "1"},
			{"sysObjectID", "2"},
			{"sysUpTime", "3"},
			{"sysContact", "4"},
			{"sysName", "5"},
			{"sysLocation", "6"},
			{"sysServices", "7"},
		},
	})

	// IF-MIB ifTable.
	mustRegister(Class{
		Name:   "interfaces",
		Layout: Table,
		Base:   ".1.3.6.1.2.1.2.2.1",
		Columns: []Column{
			{"ifIndex", "1"},
			{"ifDescr", "2"},
			{"ifType", "3"},
			{"ifMtu", "4"},
			{"ifSpeed", "5"},
			{"ifPhysAddress", "6"},
			{"ifAdminStatus", "7"},
			{"ifOperStatus", "8"},
			{"ifInOctets", "10"},
			{"ifInErrors", "14"},
			{"ifOutOctets", "16"},
			{"ifOutErrors", "20"},
		},
	})

	// HOST-RESOURCES-MIB hrStorageTable.
	mustRegister(Class{
		Name:   "storage",
		Layout: Table,
		Base:   ".1.3.6.1.2.1.25.2.3.1",
		Columns: []Column{
			{"hrStorageIndex", "1"},
			{"hrStorageType", "2"},
			{"hrStorageDescr", "3"},
			{"hrStorageAllocationUnits", "4"},
			{"hrStorageSize", "5"},
			{"hrStorageUsed", "6"},
		},
	})

	// HOST-RESOURCES-MIB hrDeviceTable.
	mustRegister(Class{
		Name:   "devices",
		Layout: Table,
		Base:   ".1.3.6.1.2.1.25.3.2.1",
		Columns: []Column{
			{"hrDeviceIndex", "1"},
			{"hrDeviceType", "2"},
			{"hrDeviceDescr", "3"},
			{"hrDeviceID", "4"},
			{"hrDeviceStatus", "5"},
			{"hrDeviceErrors", "6"},
		},
	})
}
