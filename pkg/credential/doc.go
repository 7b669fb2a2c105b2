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

// Package credential holds the credential context passed unchanged through
// every remote query in a collection run.
//
// A Context is built once per run, validated on construction, and never
// mutated afterwards, so it can be shared by every concurrent query without
// synchronization. Its String and LogValue methods redact the secret:
//
//	creds, err := credential.New("corp.example.com", "inventory", secret)
//	if err != nil {
//	    return err // CREDENTIAL error, fatal for the run
//	}
//	slog.Info("collecting", "credentials", creds) // secret is redacted
//
// Sources decouple where credentials come from (flags, environment,
// a secret store) from the pipeline that consumes them.
package credential
