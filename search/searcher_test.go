package search

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/poiesic/fastmatcher/core"
	"github.com/poiesic/fastmatcher/matcher"
	"github.com/poiesic/fastmatcher/sources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSearcher(t *testing.T, patterns []string, radius int, opts ...Option) *Searcher {
	t.Helper()
	automaton, err := matcher.New(patterns, false)
	require.NoError(t, err)
	searcher, err := NewSearcher(automaton, radius, opts...)
	require.NoError(t, err)
	t.Cleanup(searcher.Release)
	return searcher
}

func TestNewSearcher(t *testing.T) {
	automaton, err := matcher.New([]string{"ERROR"}, false)
	require.NoError(t, err)

	t.Run("valid configuration", func(t *testing.T) {
		searcher, err := NewSearcher(automaton, 1)
		require.NoError(t, err)
		defer searcher.Release()
		assert.NotNil(t, searcher)
	})

	t.Run("with options", func(t *testing.T) {
		searcher, err := NewSearcher(automaton, 1,
			WithPoolSize(2), WithResultBuffer(8), WithLogger(nil), WithMonitor(nil))
		require.NoError(t, err)
		defer searcher.Release()
		assert.NotNil(t, searcher)
	})

	t.Run("nil automaton", func(t *testing.T) {
		_, err := NewSearcher(nil, 1)
		assert.Equal(t, ErrAutomatonRequired, err)
	})

	t.Run("negative radius", func(t *testing.T) {
		_, err := NewSearcher(automaton, -1)
		assert.ErrorIs(t, err, core.ErrNegativeRadius)
	})
}

func TestSearchOne(t *testing.T) {
	searcher := newTestSearcher(t, []string{"ERROR"}, 1)
	src := sources.Text("app.log", "a\nERROR b\nc\nd")

	records := searcher.SearchOne(context.Background(), src).Collect()
	require.Len(t, records, 1)
	assert.Equal(t, "app.log", records[0].Source)
	assert.Equal(t, 2, records[0].LineNo)
	assert.Equal(t, []string{"a", "ERROR b", "c"}, records[0].Lines)
}

func TestSearchOneUnreadableSource(t *testing.T) {
	searcher := newTestSearcher(t, []string{"ERROR"}, 1)

	records := searcher.SearchOne(context.Background(), sources.File("/no/such/file")).Collect()
	assert.Empty(t, records)
}

func TestSearchOneInvalidUTF8LineDropped(t *testing.T) {
	searcher := newTestSearcher(t, []string{"ERROR"}, 0)
	// The middle line is not valid UTF-8 and is treated as absent, so the
	// trigger on the third physical line is numbered 2.
	src := sources.Text("bin.log", "ok\n\xff\xfe\nERROR here")

	records := searcher.SearchOne(context.Background(), src).Collect()
	require.Len(t, records, 1)
	assert.Equal(t, 2, records[0].LineNo)
}

func TestSearchManyTwoSources(t *testing.T) {
	searcher := newTestSearcher(t, []string{"ERROR"}, 0)
	srcs := []sources.Source{
		sources.Text("source1", "ERROR 1"),
		sources.Text("source2", "ERROR 2"),
	}

	records := searcher.SearchMany(context.Background(), srcs).Collect()
	require.Len(t, records, 2)

	bySource := map[string]*core.MatchRecord{}
	for _, record := range records {
		bySource[record.Source] = record
	}
	require.Contains(t, bySource, "source1")
	require.Contains(t, bySource, "source2")
	assert.Equal(t, []string{"ERROR 1"}, bySource["source1"].Lines)
	assert.Equal(t, []string{"ERROR 2"}, bySource["source2"].Lines)
}

func TestSearchManyPerSourceOrder(t *testing.T) {
	searcher := newTestSearcher(t, []string{"hit"}, 0, WithPoolSize(4))

	var srcs []sources.Source
	srcs = append(srcs,
		sources.Text("a", "hit\nx\nhit\nx\nhit"),
		sources.Text("b", "x\nhit\nhit\nx\nhit\nhit"),
		sources.Text("c", "hit"),
	)

	records := searcher.SearchMany(context.Background(), srcs).Collect()

	last := map[string]int{}
	for _, record := range records {
		assert.Greater(t, record.LineNo, last[record.Source],
			"records within %q must be strictly increasing", record.Source)
		last[record.Source] = record.LineNo
	}
	assert.Len(t, records, 8)
}

func TestSearchManySkipsUnreadableSources(t *testing.T) {
	searcher := newTestSearcher(t, []string{"ERROR"}, 0)
	srcs := []sources.Source{
		sources.File("/no/such/file"),
		sources.Text("good", "ERROR fine"),
	}

	records := searcher.SearchMany(context.Background(), srcs).Collect()
	require.Len(t, records, 1)
	assert.Equal(t, "good", records[0].Source)
}

func TestSearchManyDeterministicPerSource(t *testing.T) {
	searcher := newTestSearcher(t, []string{"ERROR", "WARN"}, 2)
	content := "x\nERROR a\ny\nWARN b\nz\nERROR c"

	collect := func() []*core.MatchRecord {
		return searcher.SearchMany(context.Background(),
			[]sources.Source{sources.Text("log", content)}).Collect()
	}

	first := collect()
	second := collect()
	assert.Equal(t, first, second)
}

func TestSearchManyCancellation(t *testing.T) {
	// A tiny buffer keeps producers blocked on the channel until cancel.
	searcher := newTestSearcher(t, []string{"hit"}, 0, WithResultBuffer(1), WithPoolSize(2))

	var sb []byte
	for i := 0; i < 10000; i++ {
		sb = append(sb, "hit\n"...)
	}
	srcs := []sources.Source{
		sources.Text("big1", string(sb)),
		sources.Text("big2", string(sb)),
	}

	ctx, cancel := context.WithCancel(context.Background())
	results := searcher.SearchMany(ctx, srcs)

	// Take a few records, then cancel and make sure the stream terminates.
	for i := 0; i < 3; i++ {
		_, ok := results.Next()
		require.True(t, ok)
	}
	cancel()

	done := make(chan struct{})
	go func() {
		results.Collect()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("stream did not terminate after cancellation")
	}
}

func TestSearchManyNext(t *testing.T) {
	searcher := newTestSearcher(t, []string{"ERROR"}, 0)
	results := searcher.SearchMany(context.Background(),
		[]sources.Source{sources.Text("log", "ERROR one")})

	record, ok := results.Next()
	require.True(t, ok)
	assert.Equal(t, 1, record.LineNo)

	_, ok = results.Next()
	assert.False(t, ok)
}

func TestSearchManyAll(t *testing.T) {
	searcher := newTestSearcher(t, []string{"ERROR"}, 0)
	results := searcher.SearchMany(context.Background(),
		[]sources.Source{sources.Text("log", "ERROR one\nERROR two")})

	var lineNos []int
	for record := range results.All() {
		lineNos = append(lineNos, record.LineNo)
	}
	assert.Equal(t, []int{1, 2}, lineNos)
}

// recordingMonitor captures monitor callbacks for assertions.
type recordingMonitor struct {
	mu       sync.Mutex
	started  []string
	skipped  []string
	finished map[string]int
	total    int
	done     chan struct{}
}

func newRecordingMonitor() *recordingMonitor {
	return &recordingMonitor{finished: map[string]int{}, done: make(chan struct{})}
}

func (m *recordingMonitor) Start(_ []string, _ int) {}

func (m *recordingMonitor) SourceStarted(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started = append(m.started, name)
}

func (m *recordingMonitor) SourceSkipped(name string, _ error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.skipped = append(m.skipped, name)
}

func (m *recordingMonitor) SourceFinished(name string, matches int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.finished[name] = matches
}

func (m *recordingMonitor) Finish(total int) {
	m.mu.Lock()
	m.total = total
	m.mu.Unlock()
	close(m.done)
}

func TestSearchManyMonitor(t *testing.T) {
	monitor := newRecordingMonitor()
	searcher := newTestSearcher(t, []string{"ERROR"}, 0, WithMonitor(monitor))

	srcs := []sources.Source{
		sources.Text("good", "ERROR a\nERROR b"),
		sources.File("/no/such/file"),
	}
	records := searcher.SearchMany(context.Background(), srcs).Collect()
	require.Len(t, records, 2)

	select {
	case <-monitor.done:
	case <-time.After(5 * time.Second):
		t.Fatal("monitor Finish not called")
	}

	monitor.mu.Lock()
	defer monitor.mu.Unlock()
	assert.Equal(t, 2, monitor.total)
	assert.Equal(t, 2, monitor.finished["good"])
	assert.Contains(t, monitor.skipped, "/no/such/file")
}
