package matcher

import (
	"fmt"
	"sort"

	ahocorasick "github.com/BobuSumisu/aho-corasick"
)

// Match is a single keyword occurrence found while scanning a line.
type Match struct {
	Pattern int    // Index of the pattern in the set the automaton was built from
	Text    string // Matched text as it appears in the scanned line
}

// Automaton is a compiled multi-pattern literal matcher. It finds all
// occurrences of any of its patterns in one linear pass over the input,
// independent of pattern-set size.
//
// An Automaton holds no mutable state after construction and is safe for
// concurrent use from multiple goroutines.
type Automaton struct {
	trie            *ahocorasick.Trie
	patterns        []string
	caseInsensitive bool
}

// New compiles a pattern set into an Automaton.
//
// Pattern identity is positional: pattern i keeps index i for the life of
// the automaton. With caseInsensitive set, ASCII letters are folded on both
// sides of the comparison; non-ASCII text is matched byte for byte.
func New(patterns []string, caseInsensitive bool) (*Automaton, error) {
	if len(patterns) == 0 {
		return nil, ErrNoPatterns
	}

	compiled := make([]string, len(patterns))
	for i, pattern := range patterns {
		if pattern == "" {
			return nil, fmt.Errorf("%w: pattern %d", ErrEmptyPattern, i)
		}
		if caseInsensitive {
			compiled[i] = foldASCII(pattern)
		} else {
			compiled[i] = pattern
		}
	}

	return &Automaton{
		trie:            ahocorasick.NewTrieBuilder().AddStrings(compiled).Build(),
		patterns:        append([]string(nil), patterns...),
		caseInsensitive: caseInsensitive,
	}, nil
}

// Keyword returns the original pattern string for a pattern index.
func (a *Automaton) Keyword(pattern int) string {
	return a.patterns[pattern]
}

// Patterns returns a copy of the pattern set in build order.
func (a *Automaton) Patterns() []string {
	return append([]string(nil), a.patterns...)
}

// Scan finds all non-overlapping matches in line using a leftmost-first
// policy: of the candidates starting at the lowest offset, the pattern with
// the lowest index wins, and scanning resumes immediately after the taken
// match. Runs in O(len(line) + matches).
func (a *Automaton) Scan(line string) []Match {
	text := line
	if a.caseInsensitive {
		text = foldASCII(line)
	}

	hits := a.trie.MatchString(text)
	if len(hits) == 0 {
		return nil
	}

	// The trie reports every occurrence, overlaps included. Order by start
	// offset, ties broken by pattern index, then take greedily.
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Pos() != hits[j].Pos() {
			return hits[i].Pos() < hits[j].Pos()
		}
		return hits[i].Pattern() < hits[j].Pattern()
	})

	matches := make([]Match, 0, len(hits))
	next := int64(0)
	for _, hit := range hits {
		if hit.Pos() < next {
			continue
		}
		end := hit.Pos() + int64(len(hit.Match()))
		matches = append(matches, Match{
			Pattern: int(hit.Pattern()),
			Text:    line[hit.Pos():end],
		})
		next = end
	}
	return matches
}

// foldASCII lowercases ASCII letters only. Byte lengths are preserved, so
// offsets into the folded text are valid in the original.
func foldASCII(s string) string {
	for i := 0; i < len(s); i++ {
		if c := s[i]; 'A' <= c && c <= 'Z' {
			b := []byte(s)
			for j := i; j < len(b); j++ {
				if 'A' <= b[j] && b[j] <= 'Z' {
					b[j] += 'a' - 'A'
				}
			}
			return string(b)
		}
	}
	return s
}
