// pkg/archive/types.go
package archive

import (
	"errors"
	"io"
	"io/fs"
	"log"
)

var (
	// ErrEntryNotFound indicates the requested entry is not in the archive
	ErrEntryNotFound = errors.New("entry not found in archive")

	// ErrUnsupportedFormat indicates the container format is not recognized
	ErrUnsupportedFormat = errors.New("unsupported archive format")

	// ErrUnsafePath indicates an entry would be written outside the destination
	ErrUnsafePath = errors.New("unsafe path in archive")
)

// Entry is one member of a package container
type Entry struct {
	Name       string      // slash-separated path relative to the archive root
	Type       fs.FileMode // 0 for regular files, fs.ModeDir or fs.ModeSymlink
	Perm       fs.FileMode // permission bits, 0 when the format carries none
	Size       int64
	LinkTarget string

	// open returns the entry content. For streamed formats the reader is only
	// valid inside the walk callback that received the entry.
	open func() (io.ReadCloser, error)
}

// IsDir reports whether the entry is a directory marker
func (e *Entry) IsDir() bool { return e.Type == fs.ModeDir }

// Open returns a reader for the entry content
func (e *Entry) Open() (io.ReadCloser, error) {
	if e.open == nil {
		return nil, errors.New("entry has no content")
	}
	return e.open()
}

// Options configures extraction
type Options struct {
	// Logger receives one line per extracted entry. Nil discards.
	Logger *log.Logger
}

// Stats summarizes an extraction
type Stats struct {
	Files    int
	Dirs     int
	Symlinks int
	Bytes    int64
}

func (o *Options) logger() *log.Logger {
	if o == nil || o.Logger == nil {
		return log.New(io.Discard, "", 0)
	}
	return o.Logger
}
