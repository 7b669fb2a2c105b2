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

package sink

import (
	"context"
	"log/slog"
	"sync"
	"time"

	cnserrors "github.com/jennib/DomainTricks/pkg/errors"
)

// Event is one per-host failure observed during a pass.
type Event struct {
	RunID   string              `json:"runId,omitempty" yaml:"runId,omitempty"`
	Host    string              `json:"host" yaml:"host"`
	Spec    string              `json:"spec" yaml:"spec"`
	Kind    cnserrors.Kind      `json:"kind" yaml:"kind"`
	Code    cnserrors.ErrorCode `json:"code" yaml:"code"`
	Message string              `json:"message" yaml:"message"`
	Time    time.Time           `json:"time" yaml:"time"`
}

// NewEvent builds an event from a per-host error, classifying it by kind and code.
func NewEvent(host, spec string, err error, at time.Time) Event {
	e := Event{
		Host: host,
		Spec: spec,
		Kind: cnserrors.KindOf(err),
		Code: cnserrors.CodeOf(err),
		Time: at,
	}
	if err != nil {
		e.Message = err.Error()
	}
	return e
}

// LogValue implements slog.LogValuer.
func (e Event) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("host", e.Host),
		slog.String("spec", e.Spec),
		slog.String("kind", e.Kind.String()),
		slog.String("code", string(e.Code)),
		slog.String("message", e.Message),
	}
	if e.RunID != "" {
		attrs = append(attrs, slog.String("run_id", e.RunID))
	}
	return slog.GroupValue(attrs...)
}

// Sink receives per-host failure events. Implementations must be safe for
// concurrent use.
type Sink interface {
	Report(ctx context.Context, e Event)
}

// Func adapts a function to the Sink interface.
type Func func(ctx context.Context, e Event)

// Report calls f(ctx, e).
func (f Func) Report(ctx context.Context, e Event) {
	f(ctx, e)
}

// Discard drops every event.
var Discard Sink = Func(func(context.Context, Event) {})

// Logger writes each event as a warning through slog.
type Logger struct {
	// Logger is the destination. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// Report logs e at warn level.
func (l Logger) Report(ctx context.Context, e Event) {
	lg := l.Logger
	if lg == nil {
		lg = slog.Default()
	}
	lg.LogAttrs(ctx, slog.LevelWarn, "host query failed",
		slog.String("host", e.Host),
		slog.String("spec", e.Spec),
		slog.String("kind", e.Kind.String()),
		slog.String("code", string(e.Code)),
		slog.String("error", e.Message),
		slog.String("run_id", e.RunID),
	)
}

// Multi fans each event out to every sink in order.
type Multi []Sink

// Report forwards e to all sinks.
func (m Multi) Report(ctx context.Context, e Event) {
	for _, s := range m {
		if s != nil {
			s.Report(ctx, e)
		}
	}
}

// Recorder accumulates events in memory. With a positive max it keeps only
// the most recent max events.
type Recorder struct {
	mu     sync.Mutex
	max    int
	events []Event
}

// NewRecorder creates a Recorder bounded to max events; max <= 0 means unbounded.
func NewRecorder(max int) *Recorder {
	return &Recorder{max: max}
}

// Report appends e, evicting the oldest event when full.
func (r *Recorder) Report(_ context.Context, e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	if r.max > 0 && len(r.events) > r.max {
		r.events = append(r.events[:0:0], r.events[len(r.events)-r.max:]...)
	}
}

// Events returns a copy of the recorded events, oldest first.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Len returns the number of recorded events.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

// Reset drops all recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

// ForHost returns the recorded events for one host.
func (r *Recorder) ForHost(host string) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Event
	for _, e := range r.events {
		if e.Host == host {
			out = append(out, e)
		}
	}
	return out
}
