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

package serializer

import "context"

// Serializer writes a document to some destination.
type Serializer interface {
	Serialize(ctx context.Context, doc any) error
}

// Closer releases the destination held by a Serializer.
type Closer interface {
	Close() error
}

// Flattener is implemented by documents that control their own table layout.
// Keys become the FIELD column, sorted; values the VALUE column.
type Flattener interface {
	Flatten() map[string]any
}
