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
	"encoding/hex"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gosnmp/gosnmp"

	"github.com/jennib/DomainTricks/pkg/property"
)

// toReading converts one varbind value into a property reading.
// The second result is false when the agent has no such object.
func toReading(pdu gosnmp.SnmpPDU) (property.Reading, bool) {
	//nolint:exhaustive // remaining BER types have no scalar mapping and become opaque
	switch pdu.Type {
	case gosnmp.NoSuchObject, gosnmp.NoSuchInstance, gosnmp.EndOfMibView:
		return nil, false
	case gosnmp.Null:
		return property.Null{}, true
	case gosnmp.OctetString:
		b, _ := pdu.Value.([]byte)
		return property.Str(octets(b)), true
	case gosnmp.Integer:
		return property.Int64(gosnmp.ToBigInt(pdu.Value).Int64()), true
	case gosnmp.Counter32, gosnmp.Gauge32, gosnmp.TimeTicks, gosnmp.Uinteger32, gosnmp.Counter64:
		return property.Uint64(gosnmp.ToBigInt(pdu.Value).Uint64()), true
	case gosnmp.ObjectIdentifier, gosnmp.IPAddress:
		s, _ := pdu.Value.(string)
		return property.Str(s), true
	case gosnmp.Boolean:
		b, _ := pdu.Value.(bool)
		return property.Bool(b), true
	default:
		return property.Opaque{Type: pdu.Type.String()}, true
	}
}

// octets renders printable strings as text and anything else (MAC
// addresses, binary identifiers) as colon separated hex.
func octets(b []byte) string {
	s := strings.TrimRight(string(b), "\x00")
	if utf8.ValidString(s) && printable(s) {
		return s
	}
	enc := hex.EncodeToString(b)
	var sb strings.Builder
	for i := 0; i < len(enc); i += 2 {
		if i > 0 {
			sb.WriteByte(':')
		}
		sb.WriteString(enc[i : i+2])
	}
	return sb.String()
}

func printable(s string) bool {
	for _, r := range s {
		if !unicode.IsPrint(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
