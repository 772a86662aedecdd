package sources

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Batch size bounds for multi-source searches.
const (
	DefaultBatchSize = 2000
	MinBatchSize     = 100
	MaxBatchSize     = 10000
)

// Source is something a search can read line by line. Open may be called
// more than once; each call returns a fresh reader over the same content.
type Source interface {
	Name() string
	Open() (io.ReadCloser, error)
}

// File is a source backed by a file on disk.
type File string

func (f File) Name() string {
	return string(f)
}

func (f File) Open() (io.ReadCloser, error) {
	return os.Open(string(f))
}

// Text returns an in-memory source. Mostly useful in tests and for feeding
// already-loaded content through a search.
func Text(name, contents string) Source {
	return &textSource{name: name, contents: contents}
}

type textSource struct {
	name     string
	contents string
}

func (s *textSource) Name() string {
	return s.name
}

func (s *textSource) Open() (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(s.contents)), nil
}

// WalkDir enumerates all regular files under root, recursively, as File
// sources. Unreadable directory entries are skipped; a root that cannot be
// read at all is an error.
func WalkDir(root string) ([]Source, error) {
	var out []Source
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d == nil {
				return err
			}
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			out = append(out, File(path))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Batch splits sources into chunks of at most size. A size below 1 falls
// back to DefaultBatchSize.
func Batch(srcs []Source, size int) [][]Source {
	if size < 1 {
		size = DefaultBatchSize
	}
	if len(srcs) == 0 {
		return nil
	}

	batches := make([][]Source, 0, (len(srcs)+size-1)/size)
	for start := 0; start < len(srcs); start += size {
		end := start + size
		if end > len(srcs) {
			end = len(srcs)
		}
		batches = append(batches, srcs[start:end])
	}
	return batches
}
