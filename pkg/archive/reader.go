// pkg/archive/reader.go
package archive

import (
	"archive/tar"
	"archive/zip"
	"bufio"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
	"zombiezen.com/go/nix/nar"
)

// errStopWalk ends a walk early without reporting an error
var errStopWalk = errors.New("stop walk")

// DetectFormat determines the container format of the file at path.
// Magic bytes win; the file extension is only consulted when the content is
// not recognized.
func DetectFormat(path string) (Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening package: %w", err)
	}
	defer f.Close()

	head := make([]byte, magicTarOffset+len(magicTar))
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", fmt.Errorf("reading package header: %w", err)
	}
	head = head[:n]

	switch {
	case bytes.HasPrefix(head, magicZip), bytes.HasPrefix(head, magicZipEmpty):
		return FormatZip, nil
	case bytes.HasPrefix(head, magicGzip):
		return FormatTarGz, nil
	case bytes.HasPrefix(head, magicXz):
		return FormatTarXz, nil
	case bytes.HasPrefix(head, magicZstd):
		return FormatTarZst, nil
	case bytes.HasPrefix(head, magicNar):
		return FormatNar, nil
	case len(head) >= magicTarOffset+len(magicTar) && bytes.Equal(head[magicTarOffset:], magicTar):
		return FormatTar, nil
	}

	if format, ok := FormatFromName(path); ok {
		return format, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

// FormatFromName infers a format from a file name suffix
func FormatFromName(name string) (Format, bool) {
	lower := strings.ToLower(name)
	for _, ext := range extensions {
		if strings.HasSuffix(lower, ext.suffix) {
			return ext.format, true
		}
	}
	return "", false
}

// ParseFormat validates a user supplied format name
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Walk calls fn for every entry of the package at path, in archive order.
// The walk stops at the first error returned by fn.
func Walk(path string, fn func(*Entry) error) error {
	format, err := DetectFormat(path)
	if err != nil {
		return err
	}

	err = walkFormat(path, format, fn)
	if errors.Is(err, errStopWalk) {
		return nil
	}
	return err
}

// List returns every entry of the package at path without reading content
func List(path string) ([]Entry, error) {
	var entries []Entry
	err := Walk(path, func(e *Entry) error {
		cp := *e
		cp.open = nil
		entries = append(entries, cp)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// ReadFile returns the content of the entry whose name equals name exactly.
// Nothing is written to disk.
func ReadFile(path, name string) ([]byte, error) {
	var data []byte
	found := false

	err := Walk(path, func(e *Entry) error {
		if e.Name != name || e.IsDir() {
			return nil
		}
		rc, err := e.Open()
		if err != nil {
			return fmt.Errorf("opening %s: %w", name, err)
		}
		defer rc.Close()

		data, err = io.ReadAll(rc)
		if err != nil {
			return fmt.Errorf("reading %s: %w", name, err)
		}
		found = true
		return errStopWalk
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, name)
	}
	return data, nil
}

func walkFormat(path string, format Format, fn func(*Entry) error) error {
	if format == FormatZip {
		return walkZip(path, fn)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening package: %w", err)
	}
	defer f.Close()
	r := bufio.NewReader(f)

	switch format {
	case FormatTar:
		return walkTar(r, fn)
	case FormatTarGz:
		gzReader, err := gzip.NewReader(r)
		if err != nil {
			return fmt.Errorf("creating gzip reader: %w", err)
		}
		defer gzReader.Close()
		return walkTar(gzReader, fn)
	case FormatTarXz:
		xzReader, err := xz.NewReader(r)
		if err != nil {
			return fmt.Errorf("creating xz reader: %w", err)
		}
		return walkTar(xzReader, fn)
	case FormatTarZst:
		zstReader, err := zstd.NewReader(r)
		if err != nil {
			return fmt.Errorf("creating zstd reader: %w", err)
		}
		defer zstReader.Close()
		return walkTar(zstReader, fn)
	case FormatNar:
		return walkNar(r, fn)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

func walkZip(path string, fn func(*Entry) error) error {
	zipReader, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("opening zip archive: %w", err)
	}
	defer zipReader.Close()

	for _, file := range zipReader.File {
		file := file
		e := &Entry{
			Name: file.Name,
			Perm: file.Mode().Perm(),
			Size: int64(file.UncompressedSize64),
			open: file.Open,
		}

		switch {
		case strings.HasSuffix(file.Name, "/"):
			e.Type = fs.ModeDir
		case file.Mode()&fs.ModeSymlink != 0:
			e.Type = fs.ModeSymlink
			target, err := readZipLink(file)
			if err != nil {
				return err
			}
			e.LinkTarget = target
		}

		if err := fn(e); err != nil {
			return err
		}
	}
	return nil
}

func readZipLink(file *zip.File) (string, error) {
	rc, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("opening symlink %s: %w", file.Name, err)
	}
	defer rc.Close()

	target, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("reading symlink %s: %w", file.Name, err)
	}
	return string(target), nil
}

func walkTar(r io.Reader, fn func(*Entry) error) error {
	tarReader := tar.NewReader(r)

	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading tar entry: %w", err)
		}

		// Clean the path (remove leading ./)
		name := strings.TrimPrefix(header.Name, "./")
		if name == "" || name == "." {
			continue
		}

		e := &Entry{
			Name: name,
			Perm: fs.FileMode(header.Mode).Perm(),
			Size: header.Size,
		}

		switch header.Typeflag {
		case tar.TypeDir:
			e.Type = fs.ModeDir
			if !strings.HasSuffix(e.Name, "/") {
				e.Name += "/"
			}
		case tar.TypeSymlink:
			e.Type = fs.ModeSymlink
			e.LinkTarget = header.Linkname
		case tar.TypeReg:
			e.open = func() (io.ReadCloser, error) { return io.NopCloser(tarReader), nil }
		default:
			// Hard links, devices and fifos have no place in a package.
			continue
		}

		if err := fn(e); err != nil {
			return err
		}
	}
}

func walkNar(r io.Reader, fn func(*Entry) error) error {
	narReader := nar.NewReader(r)

	for {
		hdr, err := narReader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading NAR entry: %w", err)
		}

		// The root directory itself has an empty path.
		if hdr.Path == "" {
			continue
		}

		e := &Entry{
			Name: hdr.Path,
			Type: hdr.Mode.Type(),
			Size: hdr.Size,
		}

		switch e.Type {
		case fs.ModeDir:
			e.Name += "/"
		case fs.ModeSymlink:
			e.LinkTarget = hdr.LinkTarget
		case 0:
			e.Perm = defaultFileMode
			if hdr.Mode&0o111 != 0 {
				e.Perm = 0o755
			}
			e.open = func() (io.ReadCloser, error) { return io.NopCloser(narReader), nil }
		default:
			continue
		}

		if err := fn(e); err != nil {
			return err
		}
	}
}
