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

package cli

import (
	"context"
	"time"

	"github.com/urfave/cli/v3"
	"golang.org/x/time/rate"

	"github.com/jennib/DomainTricks/pkg/api"
	"github.com/jennib/DomainTricks/pkg/config"
	"github.com/jennib/DomainTricks/pkg/server"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the inventory daemon: collect on an interval and serve the latest report over HTTP",
		Description: `Runs the collection loop from the config file and serves:

  GET  /v1/inventory, /v1/inventory/{host}, /v1/events, /v1/status
  POST /v1/collect
  GET  /health, /ready, /metrics

/ready turns 200 after the first successful collection.`,
		Flags: []cli.Flag{
			configFlag(),
			kubeconfigFlag(),
			&cli.StringFlag{
				Name:  "address",
				Usage: "listen address",
			},
			&cli.IntFlag{
				Name:    "port",
				Usage:   "listen port",
				Value:   8080,
				Sources: cli.EnvVars("PORT"),
			},
			&cli.DurationFlag{
				Name:  "interval",
				Usage: "refresh interval, overrides the config value",
			},
			&cli.FloatFlag{
				Name:  "rate-limit",
				Usage: "API requests per second",
				Value: 100,
			},
			&cli.IntFlag{
				Name:  "rate-limit-burst",
				Usage: "API request burst",
				Value: 200,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.IsSet("kubeconfig") {
				cfg.Discovery.Kubeconfig = cmd.String("kubeconfig")
			}
			cfg.Interval = config.Duration(intervalOverride(cmd, cfg))
			if err := cfg.Validate(); err != nil {
				return err
			}

			return api.Serve(ctx, cfg, version,
				server.WithAddress(cmd.String("address")),
				server.WithPort(cmd.Int("port")),
				server.WithRateLimit(rate.Limit(cmd.Float("rate-limit")), cmd.Int("rate-limit-burst")),
			)
		},
	}
}

// intervalOverride returns --interval when set, else the config value.
func intervalOverride(cmd *cli.Command, cfg *config.File) time.Duration {
	if cmd.IsSet("interval") {
		return cmd.Duration("interval")
	}
	return cfg.IntervalOrDefault()
}
