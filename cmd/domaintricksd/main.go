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

package main

import (
	"context"
	"log"
	"os"

	"github.com/jennib/DomainTricks/pkg/api"
	"github.com/jennib/DomainTricks/pkg/config"
	"github.com/jennib/DomainTricks/pkg/logging"
)

var (
	// overridden during build with ldflags
	version = "dev"
)

func main() {
	logging.SetDefaultStructuredLogger(api.Name, version)

	path := os.Getenv("DOMAINTRICKS_CONFIG")
	if path == "" {
		log.Fatal("DOMAINTRICKS_CONFIG must name the collector config")
	}

	cfg, err := config.Load(path, os.Getenv("KUBECONFIG"))
	if err != nil {
		log.Fatal(err)
	}

	if err := api.Serve(context.Background(), cfg, version); err != nil {
		log.Fatal(err)
	}
}
