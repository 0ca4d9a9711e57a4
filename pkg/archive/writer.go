// pkg/archive/writer.go
package archive

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
	"zombiezen.com/go/nix/nar"
)

// Create writes the directory tree rooted at srcDir into a new package at out.
// Entry names are relative to srcDir, so srcDir/manifest.json becomes the
// root manifest entry.
func Create(srcDir, out string, format Format) (err error) {
	info, err := os.Stat(srcDir)
	if err != nil {
		return fmt.Errorf("reading source directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("source %s is not a directory", srcDir)
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("creating package file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
		if err != nil {
			_ = os.Remove(out)
		}
	}()

	switch format {
	case FormatZip:
		return writeZip(f, srcDir)
	case FormatTar:
		return writeTar(f, srcDir)
	case FormatTarGz:
		gzWriter := gzip.NewWriter(f)
		if err := writeTar(gzWriter, srcDir); err != nil {
			return err
		}
		return gzWriter.Close()
	case FormatTarXz:
		xzWriter, err := xz.NewWriter(f)
		if err != nil {
			return fmt.Errorf("creating xz writer: %w", err)
		}
		if err := writeTar(xzWriter, srcDir); err != nil {
			return err
		}
		return xzWriter.Close()
	case FormatTarZst:
		zstWriter, err := zstd.NewWriter(f)
		if err != nil {
			return fmt.Errorf("creating zstd writer: %w", err)
		}
		if err := writeTar(zstWriter, srcDir); err != nil {
			zstWriter.Close()
			return err
		}
		return zstWriter.Close()
	case FormatNar:
		return writeNar(f, srcDir)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// walkSource visits srcDir in lexical order, skipping the root itself
func walkSource(srcDir string, fn func(path, name string, d fs.DirEntry) error) error {
	return filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return fmt.Errorf("getting relative path: %w", err)
		}
		if rel == "." {
			return nil
		}
		return fn(path, filepath.ToSlash(rel), d)
	})
}

func writeZip(w io.Writer, srcDir string) error {
	zipWriter := zip.NewWriter(w)

	err := walkSource(srcDir, func(path, name string, d fs.DirEntry) error {
		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("getting file info: %w", err)
		}

		header, err := zip.FileInfoHeader(info)
		if err != nil {
			return fmt.Errorf("creating zip header for %s: %w", name, err)
		}
		header.Name = name

		if d.IsDir() {
			header.Name += "/"
			_, err := zipWriter.CreateHeader(header)
			return err
		}

		var content io.Reader
		if info.Mode()&fs.ModeSymlink != 0 {
			target, err := os.Readlink(path)
			if err != nil {
				return fmt.Errorf("reading symlink %s: %w", path, err)
			}
			header.Method = zip.Store
			content = strings.NewReader(target)
		} else {
			header.Method = zip.Deflate
			src, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("opening %s: %w", path, err)
			}
			defer src.Close()
			content = src
		}

		writer, err := zipWriter.CreateHeader(header)
		if err != nil {
			return fmt.Errorf("creating zip entry %s: %w", name, err)
		}
		if _, err := io.Copy(writer, content); err != nil {
			return fmt.Errorf("writing zip entry %s: %w", name, err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("archiving %s: %w", srcDir, err)
	}
	return zipWriter.Close()
}

func writeTar(w io.Writer, srcDir string) error {
	tarWriter := tar.NewWriter(w)

	err := walkSource(srcDir, func(path, name string, d fs.DirEntry) error {
		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("getting file info: %w", err)
		}

		var link string
		if info.Mode()&fs.ModeSymlink != 0 {
			if link, err = os.Readlink(path); err != nil {
				return fmt.Errorf("reading symlink %s: %w", path, err)
			}
		}

		header, err := tar.FileInfoHeader(info, link)
		if err != nil {
			return fmt.Errorf("creating tar header for %s: %w", name, err)
		}
		header.Name = name
		if d.IsDir() {
			header.Name += "/"
		}

		if err := tarWriter.WriteHeader(header); err != nil {
			return fmt.Errorf("writing tar header %s: %w", name, err)
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		src, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("opening %s: %w", path, err)
		}
		defer src.Close()

		if _, err := io.Copy(tarWriter, src); err != nil {
			return fmt.Errorf("writing tar entry %s: %w", name, err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("archiving %s: %w", srcDir, err)
	}
	return tarWriter.Close()
}

func writeNar(w io.Writer, srcDir string) error {
	narWriter := nar.NewWriter(w)

	if err := narWriter.WriteHeader(&nar.Header{Mode: fs.ModeDir | 0o555}); err != nil {
		return fmt.Errorf("writing NAR root: %w", err)
	}

	err := walkSource(srcDir, func(path, name string, d fs.DirEntry) error {
		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("getting file info: %w", err)
		}

		hdr := &nar.Header{Path: name}
		switch {
		case d.IsDir():
			hdr.Mode = fs.ModeDir | 0o555
		case info.Mode()&fs.ModeSymlink != 0:
			hdr.Mode = fs.ModeSymlink | 0o777
			if hdr.LinkTarget, err = os.Readlink(path); err != nil {
				return fmt.Errorf("reading symlink %s: %w", path, err)
			}
		case info.Mode().IsRegular():
			hdr.Mode = 0o444
			if info.Mode()&0o111 != 0 {
				hdr.Mode = 0o555
			}
			hdr.Size = info.Size()
		default:
			return nil
		}

		if err := narWriter.WriteHeader(hdr); err != nil {
			return fmt.Errorf("writing NAR header %s: %w", name, err)
		}
		if hdr.Mode.Type() != 0 {
			return nil
		}

		src, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("opening %s: %w", path, err)
		}
		defer src.Close()

		if _, err := io.Copy(narWriter, src); err != nil {
			return fmt.Errorf("writing NAR entry %s: %w", name, err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("archiving %s: %w", srcDir, err)
	}
	return narWriter.Close()
}
