package search

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track per-source progress, or to surface the
// source failures that the searcher itself only skips over.
//
// Callbacks run on worker goroutines; implementations must be safe for
// concurrent use.
type SearchMonitor interface {
	Start(patterns []string, sources int)
	SourceStarted(name string)
	SourceSkipped(name string, err error)
	SourceFinished(name string, matches int)
	Finish(total int)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ []string, _ int)        {}
func (n *noopMonitor) SourceStarted(_ string)         {}
func (n *noopMonitor) SourceSkipped(_ string, _ error) {}
func (n *noopMonitor) SourceFinished(_ string, _ int) {}
func (n *noopMonitor) Finish(_ int)                   {}
