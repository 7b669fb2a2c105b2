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

// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Every failure the collector reports is classified into one of a small set
// of kinds so callers can apply differential policy:
//
//	precondition  empty host name, invalid credential fields
//	connection    unreachable host, timeout, credentials rejected by the host
//	query         malformed filter, unknown class, unknown field
//	credential    the credential context could not be built
//	internal      anything else
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeTimeout,
//	    "query timed out",
//	    ctx.Err(),
//	    map[string]any{
//	        "host":  host,
//	        "class": spec.Class,
//	    },
//	)
//
//	if errors.KindOf(err) == errors.KindConnection {
//	    // host is down; keep the previous record
//	}
package errors
