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
	"fmt"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/jennib/DomainTricks/pkg/config"
	"github.com/jennib/DomainTricks/pkg/defaults"
	"github.com/jennib/DomainTricks/pkg/pipeline"
	"github.com/jennib/DomainTricks/pkg/serializer"
)

func collectCmd() *cli.Command {
	return &cli.Command{
		Name:                      "collect",
		EnableShellCompletion:     true,
		DisableSliceFlagSeparator: true,
		Usage:                     "Run every query pass against the discovered hosts once and write the report",
		Description:               `Discover hosts, run each query spec against all of them concurrently and
write the resulting inventory report.

Hosts come from exactly one source: --host (repeatable), --hosts-file
(YAML/JSON HostList or plain text, one name per line) or --kubernetes
(cluster nodes, narrowed with --label-selector). Without any of them the
config file decides.

The secret is read from the environment variable named by --secret-env
and is never logged.

# Examples

Query two hosts for fixed disks:
  DOMAINTRICKS_SECRET=... domaintricks collect --realm CORP --principal svc \
    --host H1 --host H2 --spec 'disks=Win32_LogicalDisk:Name,FreeSpace?DriveType=3'

Inventory every worker node, writing the report to a ConfigMap:
  domaintricks collect --kubernetes --label-selector node-role.kubernetes.io/worker \
    --output cm://inventory/latest --format yaml`,
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringSliceFlag{
				Name:  "host",
				Usage: "host to query (can be repeated or comma separated)",
			},
			&cli.StringFlag{
				Name:  "hosts-file",
				Usage: "file, URL or ConfigMap listing the hosts to query",
			},
			&cli.BoolFlag{
				Name:  "kubernetes",
				Usage: "query the nodes of the current Kubernetes cluster",
			},
			&cli.StringFlag{
				Name:  "label-selector",
				Usage: "node label selector used with --kubernetes",
			},
			kubeconfigFlag(),
			&cli.StringFlag{
				Name:  "executor",
				Usage: "remote protocol (cim, snmp)",
			},
			&cli.StringFlag{
				Name:  "scheme",
				Usage: "CIM gateway scheme (http, https)",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "remote port, protocol default when 0",
			},
			&cli.StringFlag{
				Name:    "realm",
				Usage:   "authentication realm (domain)",
				Sources: cli.EnvVars("DOMAINTRICKS_REALM"),
			},
			&cli.StringFlag{
				Name:    "principal",
				Usage:   "account name",
				Sources: cli.EnvVars("DOMAINTRICKS_PRINCIPAL"),
			},
			&cli.StringFlag{
				Name:  "secret-env",
				Usage: "environment variable holding the secret",
			},
			&cli.IntFlag{
				Name:  "concurrency",
				Usage: "maximum hosts queried at once per pass, 0 for unbounded",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "per host, per pass timeout",
			},
			&cli.StringSliceFlag{
				Name:  "spec",
				Usage: "query pass as name=class[:fields][?filter] (can be repeated, replaces configured passes)",
			},
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := applyCollectFlags(cmd, cfg); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			p, err := cfg.NewPipeline(version)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(ctx, defaults.CLICollectTimeout)
			defer cancel()

			report, err := p.Run(ctx)
			if err != nil {
				return fmt.Errorf("collection failed: %w", err)
			}

			ser, err := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			if err != nil {
				return err
			}
			if c, ok := ser.(serializer.Closer); ok {
				defer func() {
					if cerr := c.Close(); cerr != nil {
						slog.Warn("failed to close output", "error", cerr)
					}
				}()
			}

			if err := ser.Serialize(ctx, report); err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}
			return nil
		},
	}
}

// applyCollectFlags overrides config values with the flags actually set.
func applyCollectFlags(cmd *cli.Command, cfg *config.File) error {
	sources := 0
	for _, f := range []string{"host", "hosts-file", "kubernetes"} {
		if cmd.IsSet(f) {
			sources++
		}
	}
	if sources > 1 {
		return fmt.Errorf("--host, --hosts-file and --kubernetes are mutually exclusive")
	}

	switch {
	case cmd.IsSet("host"):
		cfg.Discovery.Type = config.DiscoveryStatic
		cfg.Discovery.Hosts = splitHosts(cmd.StringSlice("host"))
	case cmd.IsSet("hosts-file"):
		cfg.Discovery.Type = config.DiscoveryFile
		cfg.Discovery.Path = cmd.String("hosts-file")
	case cmd.Bool("kubernetes"):
		cfg.Discovery.Type = config.DiscoveryKubernetes
	}
	if cmd.IsSet("label-selector") {
		cfg.Discovery.LabelSelector = cmd.String("label-selector")
	}
	if cmd.IsSet("kubeconfig") {
		cfg.Discovery.Kubeconfig = cmd.String("kubeconfig")
	}

	if cmd.IsSet("executor") {
		cfg.Executor.Type = cmd.String("executor")
	}
	if cmd.IsSet("scheme") {
		cfg.Executor.Scheme = cmd.String("scheme")
	}
	if cmd.IsSet("port") {
		cfg.Executor.Port = cmd.Int("port")
	}

	if cmd.IsSet("realm") {
		cfg.Credentials.Realm = cmd.String("realm")
	}
	if cmd.IsSet("principal") {
		cfg.Credentials.Principal = cmd.String("principal")
	}
	if cmd.IsSet("secret-env") {
		cfg.Credentials.SecretEnv = cmd.String("secret-env")
	}

	if cmd.IsSet("concurrency") {
		cfg.Orchestrator.Concurrency = cmd.Int("concurrency")
	}
	if cmd.IsSet("timeout") {
		cfg.Orchestrator.Timeout = config.Duration(cmd.Duration("timeout"))
	}

	if cmd.IsSet("spec") {
		specs, err := pipeline.ParseSpecs(cmd.StringSlice("spec"))
		if err != nil {
			return err
		}
		cfg.Specs = specs
	}
	return nil
}

// splitHosts expands comma separated --host values.
func splitHosts(values []string) []string {
	var hosts []string
	for _, v := range values {
		for _, h := range strings.Split(v, ",") {
			if h = strings.TrimSpace(h); h != "" {
				hosts = append(hosts, h)
			}
		}
	}
	return hosts
}
