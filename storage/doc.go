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


// Package storage provides the storage abstraction layer for fastmatcher.
//
// This package defines the repository interface for persisting completed
// search results, decoupling the session layer from the storage backend.
// The BadgerDB implementation lives in the badger subpackage; tests can use
// its in-memory mode interchangeably.
//
// All repository implementations must be thread-safe and accept a
// context.Context on every operation.
package storage
