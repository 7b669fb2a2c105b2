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
	"net/http"
	"strings"

	cnserrors "github.com/jennib/DomainTricks/pkg/errors"
	"github.com/jennib/DomainTricks/pkg/inventory"
	"github.com/jennib/DomainTricks/pkg/serializer"
	"github.com/jennib/DomainTricks/pkg/server"
	"github.com/jennib/DomainTricks/pkg/sink"
)

// Routes returns the API handlers keyed by mux pattern.
func (s *Service) Routes() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"GET /v1/inventory":        s.HandleInventory,
		"GET /v1/inventory/{host}": s.HandleHost,
		"GET /v1/events":           s.HandleEvents,
		"GET /v1/status":           s.HandleStatus,
		"POST /v1/collect":         s.HandleCollect,
	}
}

// HandleInventory returns the latest report. ?format=yaml|table selects a
// different encoding.
func (s *Service) HandleInventory(w http.ResponseWriter, r *http.Request) {
	report, ok := s.latestOr503(w, r)
	if !ok {
		return
	}
	respond(w, r, http.StatusOK, report)
}

// HandleHost returns the record of one host, matched case-insensitively.
func (s *Service) HandleHost(w http.ResponseWriter, r *http.Request) {
	report, ok := s.latestOr503(w, r)
	if !ok {
		return
	}

	name := r.PathValue("host")
	host := report.Host(name)
	if host == nil {
		for _, h := range report.Hosts {
			if h != nil && strings.EqualFold(h.Name, name) {
				host = h
				break
			}
		}
	}
	if host == nil {
		server.WriteError(w, r, http.StatusNotFound, cnserrors.ErrCodeNotFound,
			"host not in inventory", false, map[string]any{"host": name})
		return
	}
	respond(w, r, http.StatusOK, host)
}

// EventsResponse lists the failures of the latest run.
type EventsResponse struct {
	RunID  string       `json:"runId" yaml:"runId"`
	Count  int          `json:"count" yaml:"count"`
	Events []sink.Event `json:"events" yaml:"events"`
}

// HandleEvents returns the failure events of the latest run, optionally
// narrowed with ?host= and ?kind=.
func (s *Service) HandleEvents(w http.ResponseWriter, r *http.Request) {
	report, ok := s.latestOr503(w, r)
	if !ok {
		return
	}

	host := r.URL.Query().Get("host")
	kind := r.URL.Query().Get("kind")
	events := make([]sink.Event, 0, len(report.Events))
	for _, e := range report.Events {
		if host != "" && !strings.EqualFold(e.Host, host) {
			continue
		}
		if kind != "" && !strings.EqualFold(e.Kind.String(), kind) {
			continue
		}
		events = append(events, e)
	}

	respond(w, r, http.StatusOK, EventsResponse{
		RunID:  report.RunID,
		Count:  len(events),
		Events: events,
	})
}

// HandleStatus reports the state of the collection loop.
func (s *Service) HandleStatus(w http.ResponseWriter, r *http.Request) {
	respond(w, r, http.StatusOK, s.Status())
}

// CollectResponse acknowledges a collection request.
type CollectResponse struct {
	Queued bool   `json:"queued" yaml:"queued"`
	Status Status `json:"status" yaml:"status"`
}

// HandleCollect queues an immediate run and returns 202. A run already
// queued is not queued twice.
func (s *Service) HandleCollect(w http.ResponseWriter, r *http.Request) {
	queued := s.Trigger()
	respond(w, r, http.StatusAccepted, CollectResponse{
		Queued: queued,
		Status: s.Status(),
	})
}

func (s *Service) latestOr503(w http.ResponseWriter, r *http.Request) (*inventory.Report, bool) {
	report := s.Latest()
	if report == nil {
		w.Header().Set("Retry-After", "30")
		server.WriteError(w, r, http.StatusServiceUnavailable, cnserrors.ErrCodeUnavailable,
			"no inventory collected yet", true, nil)
		return nil, false
	}
	return report, true
}

func respond(w http.ResponseWriter, r *http.Request, status int, doc any) {
	format := serializer.FormatJSON
	if v := r.URL.Query().Get("format"); v != "" {
		format = serializer.ParseFormat(v)
		if format.IsUnknown() {
			server.WriteError(w, r, http.StatusBadRequest, cnserrors.ErrCodeInvalidRequest,
				"unsupported format", false, map[string]any{
					"format":    v,
					"supported": serializer.SupportedFormats(),
				})
			return
		}
	}

	if format == serializer.FormatJSON {
		serializer.RespondJSON(w, status, doc)
		return
	}

	body, err := serializer.Marshal(format, doc)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "failed to encode response")
		return
	}
	if format == serializer.FormatYAML {
		w.Header().Set("Content-Type", "application/yaml")
	} else {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	}
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
