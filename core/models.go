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


package core

// MatchRecord represents a single keyword hit together with its surrounding
// context lines. It is the immutable output form of a context window: once
// emitted it is never modified.
type MatchRecord struct {
	Source   string   // Identifier of the source the hit came from (file path, stream name, ...)
	LineNo   int      // 1-based line number of the trigger line within its source
	Keywords []string // Matched keywords, deduplicated, in first-matched order
	Lines    []string // Context-before + trigger line + context-after, in source order
}

// ContextLen returns how many lines of context the record carries,
// trigger line included.
func (r *MatchRecord) ContextLen() int {
	return len(r.Lines)
}

// WindowLen returns the full context window length for a radius:
// radius lines before, the trigger line, and radius lines after.
func WindowLen(radius int) int {
	return 2*radius + 1
}
