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

	"github.com/jennib/DomainTricks/pkg/config"
	"github.com/jennib/DomainTricks/pkg/defaults"
	"github.com/jennib/DomainTricks/pkg/server"
)

// Name is the daemon name used in logs and the root route.
const Name = "domaintricksd"

// Serve runs the inventory daemon until ctx is done or a signal arrives:
// the collection loop refreshes the report every cfg.Interval and the HTTP
// server exposes it. The server turns ready after the first successful run.
func Serve(ctx context.Context, cfg *config.File, version string, opts ...server.Option) error {
	p, err := cfg.NewPipeline(version)
	if err != nil {
		return err
	}

	var srv *server.Server
	svc := NewService(p,
		WithInterval(cfg.IntervalOrDefault()),
		WithRunTimeout(defaults.CollectionTimeout),
		WithOnReady(func() {
			slog.Info("first inventory collected, ready to serve")
			srv.SetReady(true)
		}),
	)

	srv = server.New(append([]server.Option{
		server.WithName(Name),
		server.WithVersion(version),
		server.WithHandler(svc.Routes()),
	}, opts...)...)

	if err := srv.Run(ctx, svc.Loop); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}
	return nil
}
