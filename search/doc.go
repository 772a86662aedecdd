// Copyright 2025 Poiesic Systems
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


// Package search dispatches keyword searches across many sources.
//
// A Searcher pairs a shared, immutable automaton with a worker pool. Each
// worker streams one source through its own context-window extractor and
// pushes completed match records onto a single bounded channel, exposed to
// the caller as a pull-based Results handle. Order is preserved within a
// source, unspecified across sources. Searches are cancelled cooperatively
// through the context, checked at dispatch and at every line.
package search
