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

package api

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jennib/DomainTricks/pkg/defaults"
	"github.com/jennib/DomainTricks/pkg/inventory"
)

// Runner performs one collection run.
type Runner interface {
	Run(ctx context.Context) (*inventory.Report, error)
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithInterval sets the refresh period. Non-positive values are ignored.
func WithInterval(d time.Duration) ServiceOption {
	return func(s *Service) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithRunTimeout bounds a single run. Non-positive values are ignored.
func WithRunTimeout(d time.Duration) ServiceOption {
	return func(s *Service) {
		if d > 0 {
			s.runTimeout = d
		}
	}
}

// WithOnReady registers a callback invoked once, after the first
// successful run.
func WithOnReady(f func()) ServiceOption {
	return func(s *Service) {
		s.onReady = f
	}
}

// Service keeps the latest inventory report fresh by re-running the
// pipeline on a timer and on demand.
type Service struct {
	runner     Runner
	interval   time.Duration
	runTimeout time.Duration
	onReady    func()
	readyOnce  sync.Once

	trigger chan struct{}

	mu       sync.RWMutex
	report   *inventory.Report
	lastErr  error
	lastRun  time.Time
	running  bool
	runCount int
}

// NewService creates a service around runner.
func NewService(runner Runner, opts ...ServiceOption) *Service {
	s := &Service{
		runner:     runner,
		interval:   defaults.CollectionInterval,
		runTimeout: defaults.CollectionTimeout,
		trigger:    make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Loop runs the pipeline immediately, then every interval and whenever
// Trigger is called, until ctx is done. Failed runs are logged and keep the
// previous report. Loop returns nil on cancellation.
func (s *Service) Loop(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	slog.Info("starting collection loop", "interval", s.interval.String())
	s.RunOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("collection loop stopped")
			return nil
		case <-ticker.C:
			s.RunOnce(ctx)
		case <-s.trigger:
			s.RunOnce(ctx)
			ticker.Reset(s.interval)
		}
	}
}

// Trigger asks the loop for an immediate run. It reports false when a run
// is already queued.
func (s *Service) Trigger() bool {
	select {
	case s.trigger <- struct{}{}:
		return true
	default:
		return false
	}
}

// RunOnce performs one run and stores its outcome.
func (s *Service) RunOnce(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, s.runTimeout)
	defer cancel()

	s.mu.Lock()
	s.running = true
	s.mu.Unlock()

	report, err := s.runner.Run(runCtx)

	s.mu.Lock()
	s.running = false
	s.lastRun = time.Now().UTC()
	s.runCount++
	s.lastErr = err
	if err == nil {
		s.report = report
	}
	s.mu.Unlock()

	if err != nil {
		slog.Error("collection run failed", "error", err)
		return
	}
	if s.onReady != nil {
		s.readyOnce.Do(s.onReady)
	}
}

// Latest returns the most recent successful report, or nil.
func (s *Service) Latest() *inventory.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.report
}

// Status describes the collection loop.
type Status struct {
	Running  bool      `json:"running" yaml:"running"`
	Runs     int       `json:"runs" yaml:"runs"`
	LastRun  time.Time `json:"lastRun,omitzero" yaml:"lastRun,omitempty"`
	LastErr  string    `json:"lastError,omitempty" yaml:"lastError,omitempty"`
	RunID    string    `json:"runId,omitempty" yaml:"runId,omitempty"`
	Interval string    `json:"interval" yaml:"interval"`
}

// Status returns a snapshot of the loop state.
func (s *Service) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Status{
		Running:  s.running,
		Runs:     s.runCount,
		LastRun:  s.lastRun,
		Interval: s.interval.String(),
	}
	if s.lastErr != nil {
		st.LastErr = s.lastErr.Error()
	}
	if s.report != nil {
		st.RunID = s.report.RunID
	}
	return st
}
