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


// Package window assembles context windows around matching lines.
//
// The Extractor consumes one source's lines in order, keeps a bounded buffer
// of recent lines to seed leading context, and holds a FIFO of windows still
// collecting trailing context. A window is emitted as soon as it reaches its
// full length of 2*radius+1 lines, or flushed short when the stream ends, so
// every match is reported exactly once and whole files never sit in memory.
package window
