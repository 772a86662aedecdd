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


// Package fastmatcher is a streaming multi-keyword search engine: it scans
// many text sources concurrently and reports every hit together with a
// window of surrounding context lines. This root package assembles the
// storage backend and session manager into a Service ready to back a daemon;
// the matcher, window and search packages can also be used directly as a
// library.
package fastmatcher

import (
	"log/slog"
	"time"

	"github.com/poiesic/fastmatcher/matcher"
	"github.com/poiesic/fastmatcher/search"
	"github.com/poiesic/fastmatcher/session"
	"github.com/poiesic/fastmatcher/storage"
	"github.com/poiesic/fastmatcher/storage/badger"
)

// Service ties the badger-backed result store and the session manager
// together. It is the long-lived object behind the serve command.
type Service struct {
	backend  *badger.Backend
	results  storage.ResultRepository
	sessions *session.Manager
	logger   *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	retention time.Duration
	poolSize  int
}

// WithRetention sets how long completed search results are kept.
// Default is session.DefaultRetention.
func WithRetention(retention time.Duration) ServiceOption {
	return func(o *serviceOptions) {
		o.retention = retention
	}
}

// WithPoolSize sets the worker pool size used by background searches.
func WithPoolSize(size int) ServiceOption {
	return func(o *serviceOptions) {
		o.poolSize = size
	}
}

// NewService opens (or creates) the database at filePath and builds the
// session manager on top of it.
func NewService(filePath string, opts ...ServiceOption) (*Service, error) {
	options := &serviceOptions{
		retention: session.DefaultRetention,
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}

	results, err := badger.NewResultRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	managerOpts := []session.Option{session.WithRetention(options.retention)}
	if options.poolSize > 0 {
		managerOpts = append(managerOpts, session.WithPoolSize(options.poolSize))
	}
	sessions, err := session.NewManager(results, managerOpts...)
	if err != nil {
		results.Close()
		backend.Close()
		return nil, err
	}

	return &Service{
		backend:  backend,
		results:  results,
		sessions: sessions,
		logger:   slog.Default(),
	}, nil
}

func (s *Service) Close() error {
	// Stop background searches first
	if err := s.sessions.Close(); err != nil {
		s.logger.Error("error closing session manager", "err", err)
		return err
	}
	if err := s.results.Close(); err != nil {
		s.logger.Error("error closing result repository", "err", err)
		return err
	}
	if err := s.backend.Close(); err != nil {
		s.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (s *Service) SessionManager() *session.Manager {
	return s.sessions
}

func (s *Service) ResultRepository() storage.ResultRepository {
	return s.results
}

// NewSearcher builds a one-shot searcher, independent of the session layer.
func (s *Service) NewSearcher(keywords []string, radius int, ignoreCase bool, opts ...search.Option) (*search.Searcher, error) {
	automaton, err := matcher.New(keywords, ignoreCase)
	if err != nil {
		return nil, err
	}
	return search.NewSearcher(automaton, radius, opts...)
}
