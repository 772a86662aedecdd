package search

import (
	"bufio"
	"context"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"unicode/utf8"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/fastmatcher/core"
	"github.com/poiesic/fastmatcher/matcher"
	"github.com/poiesic/fastmatcher/sources"
	"github.com/poiesic/fastmatcher/window"
)

const (
	// DefaultResultBuffer is the default capacity of the shared result
	// channel. Producers block once the consumer falls this far behind.
	DefaultResultBuffer = 256

	initialScanBuffer = 64 * 1024
	maxScanBuffer     = 4 * 1024 * 1024
)

// Searcher fans a multi-keyword search across sources using a bounded worker
// pool. The automaton is shared read-only by all workers; each worker owns a
// private extractor for the source it is processing, so records from one
// source always come out in order.
type Searcher struct {
	automaton *matcher.Automaton
	radius    int
	pool      *ants.Pool
	buffer    int
	monitor   SearchMonitor
	logger    *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithPoolSize sets the worker pool size for concurrent source processing.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(s *Searcher) error {
		if size < 1 {
			size = 1
		}

		if s.pool != nil {
			s.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}

		s.pool = pool
		return nil
	}
}

// WithResultBuffer sets the capacity of the shared result channel.
// Default is DefaultResultBuffer.
func WithResultBuffer(size int) Option {
	return func(s *Searcher) error {
		if size < 1 {
			size = 1
		}
		s.buffer = size
		return nil
	}
}

// WithMonitor sets a monitor receiving search progress callbacks.
// Default is a no-op monitor.
func WithMonitor(monitor SearchMonitor) Option {
	return func(s *Searcher) error {
		if monitor == nil {
			monitor = &noopMonitor{}
		}
		s.monitor = monitor
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a searcher for a compiled automaton and context radius.
func NewSearcher(automaton *matcher.Automaton, radius int, opts ...Option) (*Searcher, error) {
	if automaton == nil {
		return nil, ErrAutomatonRequired
	}
	if err := core.ValidateRadius(radius); err != nil {
		return nil, err
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	s := &Searcher{
		automaton: automaton,
		radius:    radius,
		pool:      pool,
		buffer:    DefaultResultBuffer,
		monitor:   &noopMonitor{},
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			s.pool.Release()
			return nil, err
		}
	}

	return s, nil
}

// SearchOne scans a single source and returns its match records as a lazy
// stream, in trigger-line order. An unreadable source yields an empty stream.
//
// Cancel ctx to stop a search early; the stream closes once the worker
// notices the cancellation.
func (s *Searcher) SearchOne(ctx context.Context, src sources.Source) *Results {
	out := make(chan *core.MatchRecord, s.buffer)
	go func() {
		defer close(out)
		s.searchSource(ctx, src, out)
	}()
	return &Results{ch: out}
}

// SearchMany scans sources concurrently and returns immediately with a lazy
// stream of all their match records. Records from one source keep their
// order; the interleaving across sources is unspecified. Sources that cannot
// be opened are skipped and contribute nothing.
func (s *Searcher) SearchMany(ctx context.Context, srcs []sources.Source) *Results {
	out := make(chan *core.MatchRecord, s.buffer)
	s.monitor.Start(s.automaton.Patterns(), len(srcs))

	var total atomic.Int64
	var wg sync.WaitGroup
	for _, src := range srcs {
		wg.Add(1)
		err := s.pool.Submit(func() {
			defer wg.Done()
			total.Add(int64(s.searchSource(ctx, src, out)))
		})
		if err != nil {
			wg.Done()
			s.logger.Error("error dispatching source", "source", src.Name(), "err", err)
			s.monitor.SourceSkipped(src.Name(), err)
		}
	}

	go func() {
		wg.Wait()
		close(out)
		s.monitor.Finish(int(total.Load()))
	}()

	return &Results{ch: out}
}

// Release releases the worker pool. The searcher must not be used afterwards.
func (s *Searcher) Release() {
	if s.pool != nil {
		s.pool.Release()
	}
}

// searchSource drives one source through a private extractor, pushing records
// onto out. Returns the number of records emitted.
func (s *Searcher) searchSource(ctx context.Context, src sources.Source, out chan<- *core.MatchRecord) int {
	if ctx.Err() != nil {
		return 0
	}
	s.monitor.SourceStarted(src.Name())

	rc, err := src.Open()
	if err != nil {
		// Best-effort semantics: a source that cannot be read produces no
		// records and never fails the search.
		s.logger.Debug("skipping unreadable source", "source", src.Name(), "err", err)
		s.monitor.SourceSkipped(src.Name(), err)
		return 0
	}
	defer rc.Close()

	emitted := 0
	extractor, err := window.NewExtractor(s.automaton, s.radius, src.Name(), func(record *core.MatchRecord) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case out <- record:
			emitted++
			return nil
		}
	})
	if err != nil {
		s.logger.Error("error creating extractor", "source", src.Name(), "err", err)
		s.monitor.SourceSkipped(src.Name(), err)
		return 0
	}

	scanner := bufio.NewScanner(rc)
	scanner.Buffer(make([]byte, initialScanBuffer), maxScanBuffer)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return emitted
		}
		line := scanner.Text()
		if !utf8.ValidString(line) {
			// Undecodable line: dropped as if it were absent.
			continue
		}
		if err := extractor.Feed(line); err != nil {
			return emitted
		}
	}
	if err := scanner.Err(); err != nil {
		s.logger.Warn("error reading source", "source", src.Name(), "err", err)
		s.monitor.SourceSkipped(src.Name(), err)
		return emitted
	}

	if err := extractor.Finish(); err != nil {
		return emitted
	}
	s.monitor.SourceFinished(src.Name(), emitted)
	return emitted
}
