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


package storage

import (
	"context"
	"time"

	"github.com/poiesic/fastmatcher/core"
)

// ResultRepository persists the complete result set of a finished search,
// keyed by search id.
type ResultRepository interface {
	// PutResults stores the records for a search. A positive retention makes
	// the entry expire after that duration; zero keeps it indefinitely.
	PutResults(ctx context.Context, searchID string, records []*core.MatchRecord, retention time.Duration) error

	// GetResults returns the stored records for a search id.
	// Returns ErrNotFound for unknown or expired ids.
	GetResults(ctx context.Context, searchID string) ([]*core.MatchRecord, error)

	// DeleteResults removes the stored records for a search id.
	// Deleting an unknown id is not an error.
	DeleteResults(ctx context.Context, searchID string) error

	// Close releases repository resources.
	Close() error
}
