package importer

import (
	"bytes"
	"io"
	"os"
)

// Source opens the CSV stream for one pass. Each call to Open must return a
// fresh stream positioned at the start.
type Source interface {
	Open() (io.ReadCloser, error)
}

// FileSource reads the CSV from a file path.
type FileSource string

func (f FileSource) Open() (io.ReadCloser, error) {
	return os.Open(string(f))
}

func (f FileSource) String() string {
	return string(f)
}

// BytesSource serves an in-memory CSV document.
type BytesSource []byte

func (b BytesSource) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(b)), nil
}
