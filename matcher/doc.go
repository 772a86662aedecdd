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


// Package matcher compiles a fixed set of literal keywords into an
// Aho-Corasick automaton and scans lines of text for all of them at once.
//
// Matching is non-overlapping and leftmost-first: among candidates starting
// at the same position the pattern listed earliest wins, and scanning resumes
// after each taken match. Case-insensitive automatons fold ASCII letter case
// only.
package matcher
