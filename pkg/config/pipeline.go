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

package config

import (
	"github.com/jennib/DomainTricks/pkg/orchestrator"
	"github.com/jennib/DomainTricks/pkg/pipeline"
)

// NewPipeline wires the executor, discoverer, credential source and passes
// described by the config into a ready-to-run pipeline.
func (f *File) NewPipeline(version string) (*pipeline.Pipeline, error) {
	exec, err := f.NewExecutor()
	if err != nil {
		return nil, err
	}
	disc, err := f.NewDiscoverer()
	if err != nil {
		return nil, err
	}

	orch := orchestrator.New(exec, f.OrchestratorOptions()...)
	return pipeline.New(orch,
		pipeline.WithDiscoverer(disc),
		pipeline.WithCredentialSource(f.CredentialSource()),
		pipeline.WithSpecs(f.Specs...),
		pipeline.WithScope(f.Scope()),
		pipeline.WithVersion(version),
	), nil
}
