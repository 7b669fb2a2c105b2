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

// Package cli implements the domaintricks command-line interface.
//
// # Commands
//
// collect - query every discovered host once and write the report:
//
//	domaintricks collect --host H1 --host H2 --realm CORP --principal svc \
//	    --spec 'disks=Win32_LogicalDisk:Name,FreeSpace?DriveType=3' --format table
//
// Hosts come from --host, --hosts-file or --kubernetes, or from the
// discovery section of --config. Each --spec is one pass; passes run in
// order and each one queries all hosts concurrently (--concurrency,
// --timeout). The secret is read from the environment variable named by
// --secret-env (DOMAINTRICKS_SECRET by default).
//
// serve - run the daemon that refreshes the inventory every --interval and
// serves it over HTTP (see package api).
//
// # Global Flags
//
//	--log-level  debug, info, warn, error (LOG_LEVEL)
//	--debug      same as --log-level=debug
//
// # Output
//
// --output accepts a file path or cm://namespace/name; --format is yaml
// (default), json or table. Logs go to stderr as JSON so stdout stays
// parseable.
package cli
