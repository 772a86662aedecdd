package window

import (
	"github.com/poiesic/fastmatcher/core"
	"github.com/poiesic/fastmatcher/matcher"
)

// EmitFunc receives completed match records. A non-nil return aborts
// extraction; the error is propagated out of Feed or Finish.
type EmitFunc func(*core.MatchRecord) error

// Extractor turns one source's line stream into match records with context.
// Feed it lines in source order, then call Finish to flush windows still
// waiting for trailing context when the stream ends.
//
// An Extractor is single-source, single-goroutine state. Use a fresh one per
// source.
type Extractor struct {
	automaton *matcher.Automaton
	radius    int
	source    string
	emit      EmitFunc

	trailing []string  // last radius lines, oldest first
	pending  []*window // open windows, trigger line numbers strictly increasing
	lineNo   int
}

// window is a match record still accumulating context.
type window struct {
	lineNo   int
	patterns []int
	lines    []string
}

// NewExtractor creates an extractor for a single source. The source name is
// stamped onto every emitted record; it may be empty for single-source
// searches.
func NewExtractor(automaton *matcher.Automaton, radius int, source string, emit EmitFunc) (*Extractor, error) {
	if automaton == nil {
		return nil, ErrAutomatonRequired
	}
	if emit == nil {
		return nil, ErrEmitRequired
	}
	if err := core.ValidateRadius(radius); err != nil {
		return nil, err
	}

	return &Extractor{
		automaton: automaton,
		radius:    radius,
		source:    source,
		emit:      emit,
	}, nil
}

// Feed advances the extractor by one input line.
//
// The line extends every open window, opens a new window if it matches any
// pattern (seeded with the trailing buffer), and emits windows from the front
// of the pending queue as they reach full length. Open windows are created in
// strictly increasing trigger order and all grow by one line per input line,
// so the front of the queue always completes first.
func (e *Extractor) Feed(line string) error {
	target := core.WindowLen(e.radius)
	e.lineNo++

	for _, w := range e.pending {
		if len(w.lines) < target {
			w.lines = append(w.lines, line)
		}
	}

	if matches := e.automaton.Scan(line); len(matches) > 0 {
		w := &window{lineNo: e.lineNo}

		// Several patterns hitting the same line merge into one window.
		// Keyword order is first-matched.
		seen := make(map[int]struct{}, len(matches))
		for _, m := range matches {
			if _, ok := seen[m.Pattern]; ok {
				continue
			}
			seen[m.Pattern] = struct{}{}
			w.patterns = append(w.patterns, m.Pattern)
		}

		w.lines = make([]string, 0, target)
		w.lines = append(w.lines, e.trailing...)
		w.lines = append(w.lines, line)
		e.pending = append(e.pending, w)
	}

	for len(e.pending) > 0 && len(e.pending[0].lines) >= target {
		w := e.pending[0]
		e.pending = e.pending[1:]
		if err := e.emit(e.record(w)); err != nil {
			return err
		}
	}

	if e.radius > 0 {
		if len(e.trailing) == e.radius {
			e.trailing = append(e.trailing[1:], line)
		} else {
			e.trailing = append(e.trailing, line)
		}
	}

	return nil
}

// Finish flushes windows cut short by end-of-stream, in trigger order. After
// Finish the extractor holds no open windows; it may keep being fed, but line
// numbering continues where it left off.
func (e *Extractor) Finish() error {
	pending := e.pending
	e.pending = nil
	for _, w := range pending {
		if err := e.emit(e.record(w)); err != nil {
			return err
		}
	}
	return nil
}

func (e *Extractor) record(w *window) *core.MatchRecord {
	keywords := make([]string, len(w.patterns))
	for i, pattern := range w.patterns {
		keywords[i] = e.automaton.Keyword(pattern)
	}
	return &core.MatchRecord{
		Source:   e.source,
		LineNo:   w.lineNo,
		Keywords: keywords,
		Lines:    w.lines,
	}
}
