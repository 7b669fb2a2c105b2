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

// Package snmp implements the remote query executor over SNMP.
//
// Query classes name MIB groups and tables from a registry. The built-in
// classes are:
//
//	system      SNMPv2-MIB system group, one property-set
//	interfaces  IF-MIB ifTable, one property-set per interface
//	storage     HOST-RESOURCES-MIB hrStorageTable
//	devices     HOST-RESOURCES-MIB hrDeviceTable
//
// Register adds more. Agents cannot evaluate filters, so the filter is parsed
// before any I/O and applied to each row after the walk.
//
// The batch credential context maps onto SNMPv3 USM as user = principal,
// auth and privacy passphrase = secret, context name = realm. For v1 and v2c
// the secret is the community string.
package snmp
