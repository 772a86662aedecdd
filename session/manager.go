package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/poiesic/fastmatcher/core"
	"github.com/poiesic/fastmatcher/matcher"
	"github.com/poiesic/fastmatcher/search"
	"github.com/poiesic/fastmatcher/sources"
	"github.com/poiesic/fastmatcher/storage"
)

const (
	// DefaultRetention is how long completed results are kept by default.
	DefaultRetention = time.Hour

	sweepInterval = 10 * time.Minute
)

// Status is the lifecycle state of a search session.
type Status string

const (
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusFailed    Status = "failed"
)

// Session is a point-in-time snapshot of one search's progress.
type Session struct {
	ID        string
	Status    Status
	Processed int // Sources processed (finished or skipped) so far
	Total     int // Total sources submitted
	Count     int // Match records produced so far known to the session
	Error     string
	CreatedAt time.Time
}

// Request describes one search to run in the background.
type Request struct {
	Keywords   []string
	Radius     int
	IgnoreCase bool
	BatchSize  int // Sources per dispatch wave; 0 means sources.DefaultBatchSize
	Sources    []sources.Source
}

// Manager runs searches in the background and tracks their lifecycle.
// Completed result sets are handed to the result repository with the
// configured retention, so results of finished searches outlive the
// in-memory session entry only as long as the repository keeps them.
type Manager struct {
	repo      storage.ResultRepository
	retention time.Duration
	poolSize  int
	logger    *slog.Logger

	mu       sync.Mutex
	sessions map[string]*state

	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// state is the mutable record behind a session snapshot.
type state struct {
	session Session
	cancel  context.CancelFunc
}

// Option configures a Manager.
type Option func(*Manager) error

// WithRetention sets how long completed results are kept.
// Default is DefaultRetention.
func WithRetention(retention time.Duration) Option {
	return func(m *Manager) error {
		if retention <= 0 {
			return ErrInvalidRetention
		}
		m.retention = retention
		return nil
	}
}

// WithPoolSize sets the worker pool size used by each search.
// Default lets the searcher pick (runtime.NumCPU() / 2).
func WithPoolSize(size int) Option {
	return func(m *Manager) error {
		if size < 1 {
			size = 1
		}
		m.poolSize = size
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) error {
		if logger == nil {
			logger = slog.Default()
		}
		m.logger = logger
		return nil
	}
}

// NewManager creates a session manager on top of a result repository.
func NewManager(repo storage.ResultRepository, opts ...Option) (*Manager, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}

	m := &Manager{
		repo:      repo,
		retention: DefaultRetention,
		logger:    slog.Default(),
		sessions:  make(map[string]*state),
		stop:      make(chan struct{}),
	}

	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	m.wg.Add(1)
	go m.janitor()

	return m, nil
}

// Start validates the request, launches the search in the background, and
// returns its session id. Pattern compilation errors are returned
// synchronously; everything after that is reported through the session.
//
// The search is detached from ctx: closing the request context does not stop
// it. Use Cancel.
func (m *Manager) Start(ctx context.Context, req Request) (string, error) {
	automaton, err := matcher.New(req.Keywords, req.IgnoreCase)
	if err != nil {
		return "", err
	}
	if err := core.ValidateRadius(req.Radius); err != nil {
		return "", err
	}

	id := uuid.NewString()

	searchOpts := []search.Option{
		search.WithLogger(m.logger),
		search.WithMonitor(&progressMonitor{manager: m, id: id}),
	}
	if m.poolSize > 0 {
		searchOpts = append(searchOpts, search.WithPoolSize(m.poolSize))
	}
	searcher, err := search.NewSearcher(automaton, req.Radius, searchOpts...)
	if err != nil {
		return "", err
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))

	m.mu.Lock()
	m.sessions[id] = &state{
		session: Session{
			ID:        id,
			Status:    StatusRunning,
			Total:     len(req.Sources),
			CreatedAt: time.Now().UTC(),
		},
		cancel: cancel,
	}
	m.mu.Unlock()

	m.wg.Add(1)
	go m.run(runCtx, id, searcher, req)

	m.logger.Info("search started", "search", id,
		"keywords", len(req.Keywords), "sources", len(req.Sources))
	return id, nil
}

// run executes the search to completion and records the outcome.
func (m *Manager) run(ctx context.Context, id string, searcher *search.Searcher, req Request) {
	defer m.wg.Done()
	defer searcher.Release()

	var records []*core.MatchRecord
	for _, batch := range sources.Batch(req.Sources, req.BatchSize) {
		if ctx.Err() != nil {
			break
		}
		records = append(records, searcher.SearchMany(ctx, batch).Collect()...)
		m.setCount(id, len(records))
	}

	if ctx.Err() != nil {
		m.logger.Info("search cancelled", "search", id, "matches", len(records))
		m.finish(id, StatusCancelled, len(records), nil)
		return
	}

	if err := m.repo.PutResults(ctx, id, records, m.retention); err != nil {
		m.logger.Error("error storing search results", "search", id, "err", err)
		m.finish(id, StatusFailed, len(records), err)
		return
	}

	m.logger.Info("search completed", "search", id, "matches", len(records))
	m.finish(id, StatusCompleted, len(records), nil)
}

// Get returns a snapshot of the session.
func (m *Manager) Get(id string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	st, ok := m.sessions[id]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	return st.session, nil
}

// Cancel requests cooperative cancellation of a running search. Cancelling a
// finished session is a no-op.
func (m *Manager) Cancel(id string) error {
	m.mu.Lock()
	st, ok := m.sessions[id]
	m.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	st.cancel()
	return nil
}

// Results returns the stored records of a completed search.
func (m *Manager) Results(ctx context.Context, id string) ([]*core.MatchRecord, error) {
	session, err := m.Get(id)
	if err != nil {
		// The session entry may have been swept while the stored results
		// are still within retention; fall through to the repository.
		session = Session{ID: id, Status: StatusCompleted}
	}

	switch session.Status {
	case StatusRunning:
		return nil, ErrSessionRunning
	case StatusCancelled:
		return nil, ErrSessionCancelled
	case StatusFailed:
		return nil, ErrSessionFailed
	}

	records, err := m.repo.GetResults(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return records, nil
}

// Close cancels all running searches, waits for them to wind down, and stops
// the janitor. The manager must not be used afterwards.
func (m *Manager) Close() error {
	m.stopOnce.Do(func() { close(m.stop) })

	m.mu.Lock()
	for _, st := range m.sessions {
		st.cancel()
	}
	m.mu.Unlock()

	m.wg.Wait()
	return nil
}

// janitor periodically drops finished session entries older than retention.
// The stored results expire on their own through the repository TTL.
func (m *Manager) janitor() {
	defer m.wg.Done()

	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case now := <-ticker.C:
			m.sweep(now)
		}
	}
}

// sweep removes finished sessions created before now minus retention.
func (m *Manager) sweep(now time.Time) {
	cutoff := now.Add(-m.retention)

	m.mu.Lock()
	defer m.mu.Unlock()
	for id, st := range m.sessions {
		if st.session.Status == StatusRunning {
			continue
		}
		if st.session.CreatedAt.Before(cutoff) {
			delete(m.sessions, id)
			m.logger.Debug("swept expired session", "search", id)
		}
	}
}

func (m *Manager) setCount(id string, count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if st, ok := m.sessions[id]; ok {
		st.session.Count = count
	}
}

func (m *Manager) bumpProcessed(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if st, ok := m.sessions[id]; ok {
		st.session.Processed++
	}
}

func (m *Manager) finish(id string, status Status, count int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.sessions[id]
	if !ok {
		return
	}
	st.session.Status = status
	st.session.Count = count
	if err != nil {
		st.session.Error = err.Error()
	}
}

// progressMonitor feeds per-source search callbacks back into the session.
type progressMonitor struct {
	manager *Manager
	id      string
}

var _ search.SearchMonitor = (*progressMonitor)(nil)

func (p *progressMonitor) Start(_ []string, _ int) {}

func (p *progressMonitor) SourceStarted(_ string) {}

func (p *progressMonitor) SourceSkipped(_ string, _ error) {
	p.manager.bumpProcessed(p.id)
}

func (p *progressMonitor) SourceFinished(_ string, _ int) {
	p.manager.bumpProcessed(p.id)
}

func (p *progressMonitor) Finish(_ int) {}
