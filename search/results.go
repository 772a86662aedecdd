package search

import (
	"iter"

	"github.com/poiesic/fastmatcher/core"
)

// Results is a pull-based handle over a running search. The producing
// workers' lifetime is tied to the underlying channel: the stream ends when
// every worker has finished and all buffered records have been consumed.
//
// Abandoning a Results before the stream ends can leave producers blocked on
// the bounded channel; cancel the search context to release them.
type Results struct {
	ch chan *core.MatchRecord
}

// Next blocks until a record is available or the stream ends.
// The second return is false once all records have been consumed.
func (r *Results) Next() (*core.MatchRecord, bool) {
	record, ok := <-r.ch
	return record, ok
}

// All returns the remaining records as a range-over-func sequence.
func (r *Results) All() iter.Seq[*core.MatchRecord] {
	return func(yield func(*core.MatchRecord) bool) {
		for record := range r.ch {
			if !yield(record) {
				return
			}
		}
	}
}

// Collect drains the stream and returns every remaining record.
func (r *Results) Collect() []*core.MatchRecord {
	var records []*core.MatchRecord
	for record := range r.ch {
		records = append(records, record)
	}
	return records
}
