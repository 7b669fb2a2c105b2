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

// Package serializer reads and writes collector documents.
//
// Writers encode a document as JSON, YAML or a FIELD/VALUE table to stdout, a
// file, or a ConfigMap addressed as cm://namespace/name:
//
//	w, err := serializer.NewFileWriterOrStdout(serializer.FormatYAML, "inventory.yaml")
//	if err != nil {
//	    return err
//	}
//	if c, ok := w.(serializer.Closer); ok {
//	    defer c.Close()
//	}
//	err = w.Serialize(ctx, report)
//
// Documents that implement Flattener choose their own table rows; anything
// else is flattened by reflection into dotted keys.
//
// FromFile loads config and host files from a local path, an http(s) URL or a
// ConfigMap, picking the format from the extension:
//
//	cfg, err := serializer.FromFile[config.File]("collector.yaml")
//
// The table format is write-only. RespondJSON is the JSON response helper
// used by the HTTP server.
package serializer
