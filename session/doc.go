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


// Package session runs searches in the background and tracks their lifecycle.
//
// The Manager assigns each submitted search a uuid, reports progress while
// workers chew through the sources, supports cooperative cancellation, and
// stores completed result sets in a storage.ResultRepository with a bounded
// retention. A janitor drops stale in-memory session entries; the stored
// results themselves expire through the repository's TTL.
package session
