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

package config

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/jennib/DomainTricks/pkg/credential"
	"github.com/jennib/DomainTricks/pkg/defaults"
	"github.com/jennib/DomainTricks/pkg/discovery"
	cnserrors "github.com/jennib/DomainTricks/pkg/errors"
	"github.com/jennib/DomainTricks/pkg/executor"
	"github.com/jennib/DomainTricks/pkg/executor/cim"
	"github.com/jennib/DomainTricks/pkg/executor/snmp"
	"github.com/jennib/DomainTricks/pkg/header"
	"github.com/jennib/DomainTricks/pkg/inventory"
	"github.com/jennib/DomainTricks/pkg/k8s/node"
	"github.com/jennib/DomainTricks/pkg/orchestrator"
	"github.com/jennib/DomainTricks/pkg/serializer"
)

// Discovery types.
const (
	DiscoveryStatic     = "static"
	DiscoveryFile       = "file"
	DiscoveryKubernetes = "kubernetes"
)

// Executor types.
const (
	ExecutorCIM  = "cim"
	ExecutorSNMP = "snmp"
)

// File is the collector configuration document.
type File struct {
	header.Header `json:",inline" yaml:",inline"`

	Discovery    Discovery             `json:"discovery" yaml:"discovery"`
	Credentials  Credentials           `json:"credentials" yaml:"credentials"`
	Executor     Executor              `json:"executor" yaml:"executor"`
	Orchestrator Orchestrator          `json:"orchestrator" yaml:"orchestrator"`
	Interval     Duration              `json:"interval,omitempty" yaml:"interval,omitempty"`
	Specs        []inventory.QuerySpec `json:"specs" yaml:"specs"`
}

// Discovery selects how hosts are enumerated.
type Discovery struct {
	Type          string   `json:"type" yaml:"type"`
	Hosts         []string `json:"hosts,omitempty" yaml:"hosts,omitempty"`
	Path          string   `json:"path,omitempty" yaml:"path,omitempty"`
	LabelSelector string   `json:"labelSelector,omitempty" yaml:"labelSelector,omitempty"`
	AddressType   string   `json:"addressType,omitempty" yaml:"addressType,omitempty"`
	Kubeconfig    string   `json:"kubeconfig,omitempty" yaml:"kubeconfig,omitempty"`
}

// Credentials names the realm and principal and where the secret comes from.
// The secret itself never appears in the file.
type Credentials struct {
	Realm     string `json:"realm,omitempty" yaml:"realm,omitempty"`
	Principal string `json:"principal,omitempty" yaml:"principal,omitempty"`
	SecretEnv string `json:"secretEnv,omitempty" yaml:"secretEnv,omitempty"`
}

// Executor selects and tunes the remote protocol.
type Executor struct {
	Type               string   `json:"type" yaml:"type"`
	Port               int      `json:"port,omitempty" yaml:"port,omitempty"`
	Scheme             string   `json:"scheme,omitempty" yaml:"scheme,omitempty"`
	InsecureSkipVerify bool     `json:"insecureSkipVerify,omitempty" yaml:"insecureSkipVerify,omitempty"`
	ConnectTimeout     Duration `json:"connectTimeout,omitempty" yaml:"connectTimeout,omitempty"`
	SNMPVersion        string   `json:"snmpVersion,omitempty" yaml:"snmpVersion,omitempty"`
	AuthProtocol       string   `json:"authProtocol,omitempty" yaml:"authProtocol,omitempty"`
	PrivProtocol       string   `json:"privProtocol,omitempty" yaml:"privProtocol,omitempty"`
	Retries            int      `json:"retries,omitempty" yaml:"retries,omitempty"`
}

// Orchestrator bounds the fan-out of each pass.
type Orchestrator struct {
	Concurrency int      `json:"concurrency,omitempty" yaml:"concurrency,omitempty"`
	Timeout     Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	RateLimit   float64  `json:"rateLimit,omitempty" yaml:"rateLimit,omitempty"`
	Burst       int      `json:"burst,omitempty" yaml:"burst,omitempty"`
}

// DefaultSpecs are the passes run when a config names none: fixed logical
// disks, volumes and the computer system summary.
func DefaultSpecs() []inventory.QuerySpec {
	return []inventory.QuerySpec{
		{Name: "disks", Class: "Win32_LogicalDisk", Fields: []string{inventory.AllFields}, Filter: "DriveType=3"},
		{Name: "volumes", Class: "Win32_Volume", Fields: []string{inventory.AllFields}},
		{Name: "system", Class: "Win32_ComputerSystem", Fields: []string{inventory.AllFields}},
	}
}

// Default returns a complete configuration: static discovery, credentials
// from the environment, the CIM executor and the default passes.
func Default() *File {
	f := &File{
		Discovery: Discovery{Type: DiscoveryStatic},
		Credentials: Credentials{
			SecretEnv: credential.EnvSecret,
		},
		Executor: Executor{
			Type:   ExecutorCIM,
			Scheme: "https",
		},
		Orchestrator: Orchestrator{
			Concurrency: defaults.PassConcurrency,
			Timeout:     Duration(defaults.ExecutorTimeout),
			Burst:       1,
		},
		Interval: Duration(defaults.CollectionInterval),
		Specs:    DefaultSpecs(),
	}
	f.Init(header.KindConfig, inventory.FullAPIVersion, "")
	return f
}

// Load reads a config from a file, URL or ConfigMap, fills unset fields
// from Default and validates it.
func Load(path, kubeconfig string) (*File, error) {
	f, err := Read(path, kubeconfig)
	if err != nil {
		return nil, err
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Read is Load without validation, for callers that override fields first.
func Read(path, kubeconfig string) (*File, error) {
	f, err := serializer.FromFileWithKubeconfig[File](path, kubeconfig)
	if err != nil {
		return nil, cnserrors.Wrap(cnserrors.ErrCodeInvalidRequest, "failed to load config", err)
	}
	if f.Kind != "" && f.Kind != header.KindConfig {
		return nil, cnserrors.New(cnserrors.ErrCodeInvalidRequest,
			fmt.Sprintf("unexpected document kind %q, want %s", f.Kind, header.KindConfig))
	}
	f.ApplyDefaults()
	return f, nil
}

// ApplyDefaults fills zero-valued fields from Default.
func (f *File) ApplyDefaults() {
	d := Default()
	if f.Discovery.Type == "" {
		f.Discovery.Type = d.Discovery.Type
	}
	if f.Credentials.SecretEnv == "" {
		f.Credentials.SecretEnv = d.Credentials.SecretEnv
	}
	if f.Executor.Type == "" {
		f.Executor.Type = d.Executor.Type
	}
	if f.Executor.Scheme == "" {
		f.Executor.Scheme = d.Executor.Scheme
	}
	if f.Orchestrator.Concurrency == 0 {
		f.Orchestrator.Concurrency = d.Orchestrator.Concurrency
	}
	if f.Orchestrator.Timeout == 0 {
		f.Orchestrator.Timeout = d.Orchestrator.Timeout
	}
	if f.Orchestrator.Burst == 0 {
		f.Orchestrator.Burst = d.Orchestrator.Burst
	}
	if f.Interval == 0 {
		f.Interval = d.Interval
	}
	if len(f.Specs) == 0 {
		f.Specs = d.Specs
	}
	for i := range f.Specs {
		if len(f.Specs[i].Fields) == 0 {
			f.Specs[i].Fields = []string{inventory.AllFields}
		}
	}
}

// Validate checks the whole document and reports the first problem as an
// INVALID_REQUEST error.
func (f *File) Validate() error {
	invalid := func(format string, args ...any) error {
		return cnserrors.New(cnserrors.ErrCodeInvalidRequest, fmt.Sprintf(format, args...))
	}

	switch strings.ToLower(f.Discovery.Type) {
	case DiscoveryStatic:
		if len(discovery.Normalize(f.Discovery.Hosts)) == 0 {
			return invalid("static discovery requires at least one host")
		}
	case DiscoveryFile:
		if strings.TrimSpace(f.Discovery.Path) == "" {
			return invalid("file discovery requires a path")
		}
	case DiscoveryKubernetes:
		if _, err := node.ParseAddressType(f.Discovery.AddressType); err != nil {
			return invalid("invalid discovery addressType: %v", err)
		}
	default:
		return invalid("unsupported discovery type %q (want static, file or kubernetes)", f.Discovery.Type)
	}

	switch strings.ToLower(f.Executor.Type) {
	case ExecutorCIM:
		if s := strings.ToLower(f.Executor.Scheme); s != "" && s != "http" && s != "https" {
			return invalid("unsupported CIM scheme %q", f.Executor.Scheme)
		}
	case ExecutorSNMP:
		if err := f.snmpExecutor().Validate(); err != nil {
			return invalid("invalid snmp settings: %v", err)
		}
	default:
		return invalid("unsupported executor type %q (want cim or snmp)", f.Executor.Type)
	}
	if f.Executor.Port < 0 || f.Executor.Port > 65535 {
		return invalid("executor port %d out of range", f.Executor.Port)
	}

	if f.Orchestrator.Timeout < 0 {
		return invalid("orchestrator timeout must not be negative")
	}
	if f.Orchestrator.RateLimit < 0 {
		return invalid("orchestrator rateLimit must not be negative")
	}
	if f.Interval < 0 {
		return invalid("interval must not be negative")
	}

	return inventory.ValidateSpecs(f.Specs)
}

// NewExecutor builds the configured remote query executor.
func (f *File) NewExecutor() (executor.Executor, error) {
	switch strings.ToLower(f.Executor.Type) {
	case ExecutorCIM:
		opts := []cim.Option{
			cim.WithScheme(strings.ToLower(f.Executor.Scheme)),
			cim.WithPort(f.Executor.Port),
			cim.WithInsecureSkipVerify(f.Executor.InsecureSkipVerify),
		}
		if f.Executor.ConnectTimeout > 0 {
			opts = append(opts, cim.WithConnectTimeout(f.Executor.ConnectTimeout.D()))
		}
		return cim.New(opts...), nil
	case ExecutorSNMP:
		e := f.snmpExecutor()
		if err := e.Validate(); err != nil {
			return nil, cnserrors.Wrap(cnserrors.ErrCodeInvalidRequest, "invalid snmp settings", err)
		}
		return e, nil
	default:
		return nil, cnserrors.New(cnserrors.ErrCodeInvalidRequest,
			fmt.Sprintf("unsupported executor type %q", f.Executor.Type))
	}
}

func (f *File) snmpExecutor() *snmp.Executor {
	opts := []snmp.Option{}
	if f.Executor.SNMPVersion != "" {
		opts = append(opts, snmp.WithVersion(f.Executor.SNMPVersion))
	}
	if f.Executor.Port > 0 && f.Executor.Port <= 65535 {
		opts = append(opts, snmp.WithPort(uint16(f.Executor.Port)))
	}
	if f.Executor.AuthProtocol != "" {
		opts = append(opts, snmp.WithAuthProtocol(f.Executor.AuthProtocol))
	}
	if f.Executor.PrivProtocol != "" {
		opts = append(opts, snmp.WithPrivProtocol(f.Executor.PrivProtocol))
	}
	if f.Executor.Retries > 0 {
		opts = append(opts, snmp.WithRetries(f.Executor.Retries))
	}
	if f.Executor.ConnectTimeout > 0 {
		opts = append(opts, snmp.WithRequestTimeout(f.Executor.ConnectTimeout.D()))
	}
	return snmp.New(opts...)
}

// NewDiscoverer builds the configured host discoverer.
func (f *File) NewDiscoverer() (discovery.Discoverer, error) {
	d := f.Discovery
	switch strings.ToLower(d.Type) {
	case DiscoveryStatic:
		return discovery.NewStatic(d.Hosts...), nil
	case DiscoveryFile:
		return &discovery.File{Path: d.Path, Kubeconfig: d.Kubeconfig}, nil
	case DiscoveryKubernetes:
		addrType, err := node.ParseAddressType(d.AddressType)
		if err != nil {
			return nil, cnserrors.Wrap(cnserrors.ErrCodeInvalidRequest, "invalid discovery addressType", err)
		}
		return &discovery.Kubernetes{
			Kubeconfig:    d.Kubeconfig,
			LabelSelector: d.LabelSelector,
			AddressType:   addrType,
		}, nil
	default:
		return nil, cnserrors.New(cnserrors.ErrCodeInvalidRequest,
			fmt.Sprintf("unsupported discovery type %q", d.Type))
	}
}

// Scope returns the discovery scope for the configured discoverer.
func (f *File) Scope() string {
	switch strings.ToLower(f.Discovery.Type) {
	case DiscoveryFile:
		return f.Discovery.Path
	case DiscoveryKubernetes:
		return f.Discovery.LabelSelector
	default:
		return ""
	}
}

// CredentialSource returns a source reading the secret from the configured
// environment variable. Realm and principal come from the file when set and
// from the environment otherwise.
func (f *File) CredentialSource() credential.Source {
	return credential.Env{
		SecretVar: f.Credentials.SecretEnv,
		Realm:     f.Credentials.Realm,
		Principal: f.Credentials.Principal,
	}
}

// OrchestratorOptions translates the orchestrator section into options.
func (f *File) OrchestratorOptions() []orchestrator.Option {
	o := f.Orchestrator
	opts := []orchestrator.Option{
		orchestrator.WithConcurrency(o.Concurrency),
		orchestrator.WithTimeout(o.Timeout.D()),
	}
	if o.RateLimit > 0 {
		opts = append(opts, orchestrator.WithRateLimit(rate.Limit(o.RateLimit), o.Burst))
	}
	return opts
}

// IntervalOrDefault returns the refresh interval, falling back to the default.
func (f *File) IntervalOrDefault() time.Duration {
	if f.Interval <= 0 {
		return defaults.CollectionInterval
	}
	return f.Interval.D()
}
