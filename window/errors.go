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


package window

import "errors"

var (
	// ErrAutomatonRequired is returned when an extractor is built without an automaton.
	ErrAutomatonRequired = errors.New("automaton required")

	// ErrEmitRequired is returned when an extractor is built without an emit function.
	ErrEmitRequired = errors.New("emit function required")
)
