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
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/jennib/DomainTricks/pkg/config"
	"github.com/jennib/DomainTricks/pkg/serializer"
)

// Flags are built per command: urfave/cli keeps parse state on the flag
// value, so sharing one instance between commands leaks it.

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "collector config file, URL or ConfigMap (cm://namespace/name)",
		Sources: cli.EnvVars("DOMAINTRICKS_CONFIG"),
	}
}

func kubeconfigFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "kubeconfig",
		Aliases: []string{"k"},
		Usage:   "path to kubeconfig (defaults to $KUBECONFIG, ~/.kube/config, then in-cluster)",
	}
}

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output file or ConfigMap (cm://namespace/name), stdout when empty",
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Usage:   fmt.Sprintf("output format (%s)", strings.Join(serializer.SupportedFormats(), ", ")),
		Value:   string(serializer.FormatYAML),
	}
}

// parseOutputFormat validates --format.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	f := serializer.ParseFormat(cmd.String("format"))
	if f.IsUnknown() {
		return "", fmt.Errorf("unknown output format %q (want one of %s)",
			cmd.String("format"), strings.Join(serializer.SupportedFormats(), ", "))
	}
	return f, nil
}

// loadConfig reads --config when set and starts from the defaults otherwise.
// Validation is left to the caller, after flag overrides are applied.
func loadConfig(cmd *cli.Command) (*config.File, error) {
	path := cmd.String("config")
	if path == "" {
		return config.Default(), nil
	}

	return config.Read(path, cmd.String("kubeconfig"))
}
