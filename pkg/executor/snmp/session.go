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
	"context"
	"fmt"
	"strings"

	"github.com/gosnmp/gosnmp"

	"github.com/jennib/DomainTricks/pkg/credential"
	cnserrors "github.com/jennib/DomainTricks/pkg/errors"
)

type goSession struct {
	*gosnmp.GoSNMP
}

// Close closes the underlying connection, if any.
func (s goSession) Close() error {
	if s.Conn == nil {
		return nil
	}
	return s.Conn.Close()
}

// NewSession creates a gosnmp client for host. SNMPv3 uses the principal as
// the USM user, the secret as both passphrases and the realm as context name;
// v1 and v2c use the secret as community.
func NewSession(ctx context.Context, host string, cfg Config, creds *credential.Context) (Session, error) {
	client := &gosnmp.GoSNMP{
		Target:             host,
		Port:               cfg.Port,
		Context:            ctx,
		Timeout:            cfg.Timeout,
		Retries:            cfg.Retries,
		MaxOids:            gosnmp.MaxOids,
		MaxRepetitions:     10,
		ExponentialTimeout: true,
	}
	if err := configureVersion(client, cfg, creds); err != nil {
		return nil, err
	}
	return goSession{client}, nil
}

func configureVersion(client *gosnmp.GoSNMP, cfg Config, creds *credential.Context) error {
	switch cfg.Version {
	case Version1:
		client.Version = gosnmp.Version1
		client.Community = creds.Secret()
	case Version2c:
		client.Version = gosnmp.Version2c
		client.Community = creds.Secret()
	case Version3, "":
		client.Version = gosnmp.Version3
		client.SecurityModel = gosnmp.UserSecurityModel
		client.ContextName = creds.Realm()

		usm := &gosnmp.UsmSecurityParameters{UserName: creds.Principal()}
		auth, err := authProtocol(cfg.AuthProtocol)
		if err != nil {
			return err
		}
		usm.AuthenticationProtocol = auth
		usm.AuthenticationPassphrase = creds.Secret()
		client.MsgFlags = gosnmp.AuthNoPriv

		if cfg.PrivProtocol != "" {
			priv, err := privProtocol(cfg.PrivProtocol)
			if err != nil {
				return err
			}
			usm.PrivacyProtocol = priv
			usm.PrivacyPassphrase = creds.Secret()
			client.MsgFlags = gosnmp.AuthPriv
		}
		client.SecurityParameters = usm
	default:
		return cnserrors.New(cnserrors.ErrCodeInvalidRequest,
			fmt.Sprintf("unsupported SNMP version %q", cfg.Version))
	}
	return nil
}

func authProtocol(name string) (gosnmp.SnmpV3AuthProtocol, error) {
	switch strings.ToUpper(name) {
	case "MD5":
		return gosnmp.MD5, nil
	case "SHA", "":
		return gosnmp.SHA, nil
	case "SHA224":
		return gosnmp.SHA224, nil
	case "SHA256":
		return gosnmp.SHA256, nil
	case "SHA384":
		return gosnmp.SHA384, nil
	case "SHA512":
		return gosnmp.SHA512, nil
	default:
		return gosnmp.NoAuth, cnserrors.New(cnserrors.ErrCodeInvalidRequest,
			fmt.Sprintf("unsupported SNMPv3 auth protocol %q", name))
	}
}

func privProtocol(name string) (gosnmp.SnmpV3PrivProtocol, error) {
	switch strings.ToUpper(name) {
	case "DES":
		return gosnmp.DES, nil
	case "AES":
		return gosnmp.AES, nil
	case "AES192":
		return gosnmp.AES192, nil
	case "AES256":
		return gosnmp.AES256, nil
	default:
		return gosnmp.NoPriv, cnserrors.New(cnserrors.ErrCodeInvalidRequest,
			fmt.Sprintf("unsupported SNMPv3 privacy protocol %q", name))
	}
}
