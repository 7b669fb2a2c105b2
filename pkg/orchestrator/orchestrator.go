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

package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/jennib/DomainTricks/pkg/credential"
	"github.com/jennib/DomainTricks/pkg/defaults"
	cnserrors "github.com/jennib/DomainTricks/pkg/errors"
	"github.com/jennib/DomainTricks/pkg/executor"
	"github.com/jennib/DomainTricks/pkg/inventory"
	"github.com/jennib/DomainTricks/pkg/sink"
)

// Orchestrator runs one query spec against many hosts concurrently and merges
// each host's result into its own record.
type Orchestrator struct {
	exec        executor.Executor
	sink        sink.Sink
	concurrency int
	timeout     time.Duration
	limiter     *rate.Limiter
	now         func() time.Time
	runID       string
}

// Option is a functional option for configuring an Orchestrator.
type Option func(*Orchestrator)

// WithSink sets where per-host failures are reported. Defaults to sink.Logger.
func WithSink(s sink.Sink) Option {
	return func(o *Orchestrator) {
		if s != nil {
			o.sink = s
		}
	}
}

// WithConcurrency bounds the number of in-flight executor calls.
// Zero or negative means unbounded.
func WithConcurrency(n int) Option {
	return func(o *Orchestrator) {
		o.concurrency = n
	}
}

// WithTimeout sets the deadline of each executor call. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(o *Orchestrator) {
		o.timeout = d
	}
}

// WithRateLimit throttles dispatch to r calls per second with the given
// burst. A zero rate disables throttling.
func WithRateLimit(r rate.Limit, burst int) Option {
	return func(o *Orchestrator) {
		if r <= 0 {
			o.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		o.limiter = rate.NewLimiter(r, burst)
	}
}

// WithClock replaces the time source used for last-seen timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		if now != nil {
			o.now = now
		}
	}
}

// WithRunID tags every reported event with id.
func WithRunID(id string) Option {
	return func(o *Orchestrator) {
		o.runID = id
	}
}

// New creates an Orchestrator around exec.
func New(exec executor.Executor, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		exec:        exec,
		sink:        sink.Logger{},
		concurrency: defaults.PassConcurrency,
		timeout:     defaults.ExecutorTimeout,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// With returns a copy of o with opts applied. The copy shares the rate
// limiter unless an option replaces it.
func (o *Orchestrator) With(opts ...Option) *Orchestrator {
	c := *o
	for _, opt := range opts {
		opt(&c)
	}
	return &c
}

// PassResult is the outcome of one pass.
type PassResult struct {
	// Hosts has one record per input host, in completion order.
	Hosts     []*inventory.Host
	Succeeded int
	Failed    int
	Duration  time.Duration
}

// RunPass queries every host for spec and returns the updated records.
//
// A successful host is returned as a copy carrying the new result-set; a
// failed host is returned as the original record, untouched, and one event is
// sent to the sink. Per-host failures never fail the pass. The output has the
// same length as hosts, in completion order. An error is returned only for
// missing credentials or an invalid spec, before any executor call.
func (o *Orchestrator) RunPass(ctx context.Context, hosts []*inventory.Host, spec inventory.QuerySpec, creds *credential.Context) ([]*inventory.Host, error) {
	res, err := o.RunPassWithStats(ctx, hosts, spec, creds)
	if err != nil {
		return nil, err
	}
	return res.Hosts, nil
}

// RunPassWithStats is RunPass that also reports success and failure counts.
func (o *Orchestrator) RunPassWithStats(ctx context.Context, hosts []*inventory.Host, spec inventory.QuerySpec, creds *credential.Context) (*PassResult, error) {
	if creds == nil {
		return nil, cnserrors.New(cnserrors.ErrCodeCredential, "credentials are required to run a pass")
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if o.exec == nil {
		return nil, cnserrors.New(cnserrors.ErrCodeInternal, "orchestrator has no executor")
	}

	start := time.Now()
	res := &PassResult{Hosts: make([]*inventory.Host, 0, len(hosts))}
	if len(hosts) == 0 {
		return res, nil
	}

	slog.Debug("starting pass",
		slog.String("spec", spec.Name),
		slog.String("class", spec.ClassOrDefault()),
		slog.Int("hosts", len(hosts)),
		slog.Int("concurrency", o.concurrency),
		slog.String("run_id", o.runID))

	passHosts.WithLabelValues(spec.Name).Set(float64(len(hosts)))

	// Every unit sends exactly one record, so the buffer never blocks a sender.
	results := make(chan unitResult, len(hosts))

	var g errgroup.Group
	if o.concurrency > 0 {
		g.SetLimit(o.concurrency)
	}
	for _, h := range hosts {
		g.Go(func() error {
			results <- o.runUnit(ctx, h, spec, creds)
			return nil
		})
	}
	_ = g.Wait() // units never return errors
	close(results)

	for r := range results {
		res.Hosts = append(res.Hosts, r.host)
		if r.ok {
			res.Succeeded++
		} else {
			res.Failed++
		}
	}

	res.Duration = time.Since(start)
	passDuration.WithLabelValues(spec.Name).Observe(res.Duration.Seconds())

	slog.Debug("pass complete",
		slog.String("spec", spec.Name),
		slog.Int("succeeded", res.Succeeded),
		slog.Int("failed", res.Failed),
		slog.Duration("duration", res.Duration),
		slog.String("run_id", o.runID))

	return res, nil
}

type unitResult struct {
	host *inventory.Host
	ok   bool
}

// runUnit queries one host. It always returns a record: the merged copy on
// success, the original otherwise.
func (o *Orchestrator) runUnit(ctx context.Context, h *inventory.Host, spec inventory.QuerySpec, creds *credential.Context) (res unitResult) {
	res = unitResult{host: h}
	name := ""
	if h != nil {
		name = h.Name
	}

	inFlight.Inc()
	start := time.Now()
	defer func() {
		inFlight.Dec()
		hostQueryDuration.WithLabelValues(spec.Name).Observe(time.Since(start).Seconds())
	}()

	defer func() {
		if r := recover(); r != nil {
			err := cnserrors.NewWithContext(cnserrors.ErrCodeInternal,
				fmt.Sprintf("executor panicked: %v", r), map[string]any{"host": name})
			o.fail(ctx, name, spec, err)
			res = unitResult{host: h}
		}
	}()

	if err := executor.Check(name, spec, creds); err != nil {
		o.fail(ctx, name, spec, err)
		return res
	}

	if o.limiter != nil {
		if err := o.limiter.Wait(ctx); err != nil {
			o.fail(ctx, name, spec, executor.Classify(name, err))
			return res
		}
	}

	uctx := ctx
	if o.timeout > 0 {
		var cancel context.CancelFunc
		uctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	sets, err := o.exec.Execute(uctx, name, spec, creds)
	if err != nil {
		o.fail(ctx, name, spec, executor.Classify(name, err))
		return res
	}

	merged := h.Clone()
	merged.Merge(spec.Name, sets, o.now())
	hostQueries.WithLabelValues(spec.Name, statusSuccess, "").Inc()
	return unitResult{host: merged, ok: true}
}

func (o *Orchestrator) fail(ctx context.Context, host string, spec inventory.QuerySpec, err error) {
	e := sink.NewEvent(host, spec.Name, err, o.now())
	e.RunID = o.runID
	hostQueries.WithLabelValues(spec.Name, statusFailure, e.Kind.String()).Inc()
	o.sink.Report(ctx, e)
}
