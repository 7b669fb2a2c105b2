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

package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jennib/DomainTricks/pkg/credential"
	"github.com/jennib/DomainTricks/pkg/defaults"
	"github.com/jennib/DomainTricks/pkg/discovery"
	cnserrors "github.com/jennib/DomainTricks/pkg/errors"
	"github.com/jennib/DomainTricks/pkg/inventory"
	"github.com/jennib/DomainTricks/pkg/orchestrator"
	"github.com/jennib/DomainTricks/pkg/sink"
)

// Pipeline sequences query specs over one host list. Each pass consumes the
// records produced by the previous one, so a host accumulates the results of
// every pass that succeeded for it.
type Pipeline struct {
	orch       *orchestrator.Orchestrator
	discoverer discovery.Discoverer
	creds      credential.Source
	specs      []inventory.QuerySpec
	scope      string
	version    string
	sink       sink.Sink
	maxEvents  int
	now        func() time.Time
}

// Option is a functional option for configuring a Pipeline.
type Option func(*Pipeline)

// WithDiscoverer sets the collaborator that enumerates hosts for Run.
func WithDiscoverer(d discovery.Discoverer) Option {
	return func(p *Pipeline) {
		p.discoverer = d
	}
}

// WithCredentialSource sets where Run obtains credentials.
func WithCredentialSource(s credential.Source) Option {
	return func(p *Pipeline) {
		p.creds = s
	}
}

// WithSpecs sets the passes Run executes, in order.
func WithSpecs(specs ...inventory.QuerySpec) Option {
	return func(p *Pipeline) {
		p.specs = specs
	}
}

// WithScope sets the discovery scope passed to the discoverer.
func WithScope(scope string) Option {
	return func(p *Pipeline) {
		p.scope = scope
	}
}

// WithVersion sets the collector version recorded in report headers.
func WithVersion(v string) Option {
	return func(p *Pipeline) {
		p.version = v
	}
}

// WithSink adds a sink that receives every failure event of Run in addition
// to the report. Defaults to sink.Logger.
func WithSink(s sink.Sink) Option {
	return func(p *Pipeline) {
		if s != nil {
			p.sink = s
		}
	}
}

// WithMaxEvents caps the events kept in a report. Older events are dropped first.
func WithMaxEvents(n int) Option {
	return func(p *Pipeline) {
		p.maxEvents = n
	}
}

// WithClock replaces the time source used for report headers.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		if now != nil {
			p.now = now
		}
	}
}

// New creates a Pipeline that runs its passes through orch.
func New(orch *orchestrator.Orchestrator, opts ...Option) *Pipeline {
	p := &Pipeline{
		orch:      orch,
		sink:      sink.Logger{},
		maxEvents: defaults.MaxRunEvents,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Specs returns the passes Run executes.
func (p *Pipeline) Specs() []inventory.QuerySpec {
	out := make([]inventory.QuerySpec, len(p.specs))
	copy(out, p.specs)
	return out
}

// Collect runs one pass per spec, in order, threading each pass's output into
// the next. The whole spec list is validated before any remote call, and nil
// credentials abort the run. Per-host failures never fail Collect.
//
// With no specs the input is returned unchanged. With no hosts the result is
// empty and no executor call is made.
func (p *Pipeline) Collect(ctx context.Context, hosts []*inventory.Host, specs []inventory.QuerySpec, creds *credential.Context) ([]*inventory.Host, error) {
	return p.collect(ctx, p.orch, hosts, specs, creds)
}

func (p *Pipeline) collect(ctx context.Context, orch *orchestrator.Orchestrator, hosts []*inventory.Host, specs []inventory.QuerySpec, creds *credential.Context) ([]*inventory.Host, error) {
	if err := inventory.ValidateSpecs(specs); err != nil {
		return nil, err
	}
	if creds == nil {
		return nil, cnserrors.New(cnserrors.ErrCodeCredential, "credentials are required to collect inventory")
	}
	if orch == nil {
		return nil, cnserrors.New(cnserrors.ErrCodeInternal, "pipeline has no orchestrator")
	}
	if len(specs) == 0 {
		return hosts, nil
	}
	if len(hosts) == 0 {
		return []*inventory.Host{}, nil
	}

	warnDuplicates(specs)

	current := hosts
	for i, spec := range specs {
		res, err := orch.RunPassWithStats(ctx, current, spec, creds)
		if err != nil {
			return nil, fmt.Errorf("pass %d (%s) failed: %w", i, spec.Name, err)
		}
		slog.Info("pass complete",
			slog.String("spec", spec.Name),
			slog.Int("pass", i+1),
			slog.Int("of", len(specs)),
			slog.Int("succeeded", res.Succeeded),
			slog.Int("failed", res.Failed),
			slog.Duration("duration", res.Duration))
		current = res.Hosts
	}
	return current, nil
}

func warnDuplicates(specs []inventory.QuerySpec) {
	seen := make(map[string]int, len(specs))
	for i, s := range specs {
		if first, ok := seen[s.Name]; ok {
			slog.Warn("duplicate spec name, later pass overwrites earlier results",
				slog.String("spec", s.Name),
				slog.Int("first", first),
				slog.Int("duplicate", i))
			continue
		}
		seen[s.Name] = i
	}
}

// Run performs one complete collection: discover hosts, obtain credentials,
// collect every configured spec and assemble the report. Discovery and
// credential errors are returned as-is.
func (p *Pipeline) Run(ctx context.Context) (*inventory.Report, error) {
	start := time.Now()
	report, err := p.run(ctx)
	runDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		runTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	runTotal.WithLabelValues("success").Inc()
	return report, nil
}

func (p *Pipeline) run(ctx context.Context) (*inventory.Report, error) {
	if p.discoverer == nil {
		return nil, cnserrors.New(cnserrors.ErrCodeInvalidRequest, "no host discoverer configured")
	}
	if p.creds == nil {
		return nil, cnserrors.New(cnserrors.ErrCodeCredential, "no credential source configured")
	}
	if err := inventory.ValidateSpecs(p.specs); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	log := slog.With(slog.String("run_id", runID))
	log.Info("starting collection run", slog.String("scope", p.scope), slog.Int("specs", len(p.specs)))

	hosts, err := p.discoverer.Discover(ctx, p.scope)
	if err != nil {
		return nil, err
	}
	runHosts.Set(float64(len(hosts)))
	log.Info("discovered hosts", slog.Int("count", len(hosts)))

	creds, err := p.creds.Credentials(ctx)
	if err != nil {
		return nil, err
	}
	log.Debug("loaded credentials", slog.Any("credentials", creds))

	rec := sink.NewRecorder(p.maxEvents)
	orch := p.orch
	if orch != nil {
		orch = orch.With(orchestrator.WithRunID(runID), orchestrator.WithSink(sink.Multi{p.sink, rec}))
	}

	hosts, err = p.collect(ctx, orch, hosts, p.specs, creds)
	if err != nil {
		return nil, err
	}

	report := inventory.NewReport(runID, p.scope, p.version, p.Specs(), hosts, rec.Events(), p.now())
	runEvents.Set(float64(len(report.Events)))

	for _, s := range report.Summaries() {
		log.Info(s.String(), slog.String("host", s.Host), slog.Int("failures", s.Failures))
	}
	log.Info("collection run complete",
		slog.Int("hosts", len(report.Hosts)),
		slog.Int("events", len(report.Events)))

	return report, nil
}

// ParseSpecs parses name=class[:fields][?filter] strings into specs.
func ParseSpecs(values []string) ([]inventory.QuerySpec, error) {
	specs := make([]inventory.QuerySpec, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		s, err := inventory.ParseQuerySpec(v)
		if err != nil {
			return nil, err
		}
		specs = append(specs, s)
	}
	return specs, nil
}
