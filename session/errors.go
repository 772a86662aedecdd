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


package session

import "errors"

var (
	// ErrRepositoryRequired is returned when a manager is built without a result repository.
	ErrRepositoryRequired = errors.New("result repository required")

	// ErrInvalidRetention is returned for a non-positive retention duration.
	ErrInvalidRetention = errors.New("retention must be positive")

	// ErrSessionNotFound indicates an unknown or expired search id.
	ErrSessionNotFound = errors.New("search session not found")

	// ErrSessionRunning indicates results were requested before the search finished.
	ErrSessionRunning = errors.New("search is still running")

	// ErrSessionCancelled indicates the search was cancelled before completing.
	ErrSessionCancelled = errors.New("search was cancelled")

	// ErrSessionFailed indicates the search failed before storing results.
	ErrSessionFailed = errors.New("search failed")
)
