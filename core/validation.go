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

import "fmt"

// ValidateMatchRecord validates a MatchRecord according to domain rules.
//
// Validation rules:
//   - LineNo must be positive (line numbers are 1-based)
//   - Keywords must contain at least one keyword
//   - Lines must contain at least the trigger line
//
// NOT validated:
//   - Source (empty is valid for single-source searches)
//   - Context length against a radius (the radius is not part of the record)
func ValidateMatchRecord(record *MatchRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidMatchRecord)
	}

	if record.LineNo < 1 {
		return fmt.Errorf("%w: %w", ErrInvalidMatchRecord, ErrInvalidLineNumber)
	}

	if len(record.Keywords) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidMatchRecord, ErrEmptyKeywords)
	}

	if len(record.Lines) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidMatchRecord, ErrEmptyContext)
	}

	return nil
}

// ValidateRadius validates a context radius.
func ValidateRadius(radius int) error {
	if radius < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeRadius, radius)
	}
	return nil
}
