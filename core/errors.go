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

import "errors"

// Domain validation errors
var (
	// ErrInvalidMatchRecord indicates a MatchRecord failed validation.
	ErrInvalidMatchRecord = errors.New("invalid match record")

	// ErrInvalidLineNumber indicates a non-positive trigger line number.
	ErrInvalidLineNumber = errors.New("line number must be positive")

	// ErrEmptyKeywords indicates a record without any matched keyword.
	ErrEmptyKeywords = errors.New("keywords cannot be empty")

	// ErrEmptyContext indicates a record without any context line.
	ErrEmptyContext = errors.New("context lines cannot be empty")

	// ErrNegativeRadius indicates a negative context radius.
	ErrNegativeRadius = errors.New("context radius cannot be negative")
)
