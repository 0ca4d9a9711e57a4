// pkg/archive/extract.go
package archive

import (
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"
)

// Extract unpacks every entry of the package at path into dest.
//
// dest is created when missing and does not need to be empty. Existing files
// are overwritten. The first failure aborts the extraction; entries written
// before it are left in place.
func Extract(path, dest string, opts *Options) (*Stats, error) {
	logger := opts.logger()

	absDest, err := filepath.Abs(dest)
	if err != nil {
		return nil, fmt.Errorf("resolving destination: %w", err)
	}
	if err := os.MkdirAll(absDest, defaultDirMode); err != nil {
		return nil, fmt.Errorf("creating destination %s: %w", absDest, err)
	}

	logger.Printf("Extracting %s -> %s", path, absDest)

	stats := &Stats{}
	err = Walk(path, func(e *Entry) error {
		return extractEntry(absDest, e, stats, logger)
	})
	if err != nil {
		return stats, err
	}

	logger.Printf("Extraction complete: %d files, %d directories, %d symlinks (%d bytes)",
		stats.Files, stats.Dirs, stats.Symlinks, stats.Bytes)

	return stats, nil
}

func extractEntry(dest string, e *Entry, stats *Stats, logger *log.Logger) error {
	targetPath, err := securePath(dest, e.Name)
	if err != nil {
		return err
	}

	switch e.Type {
	case fs.ModeDir:
		if err := os.MkdirAll(targetPath, defaultDirMode); err != nil {
			return fmt.Errorf("creating directory %s: %w", targetPath, err)
		}
		stats.Dirs++
		logger.Printf("  dir  %s", e.Name)

	case fs.ModeSymlink:
		if err := checkLinkTarget(dest, targetPath, e.LinkTarget); err != nil {
			return fmt.Errorf("%w: %s -> %s", err, e.Name, e.LinkTarget)
		}
		if err := os.MkdirAll(filepath.Dir(targetPath), defaultDirMode); err != nil {
			return fmt.Errorf("creating parent directory for symlink: %w", err)
		}
		if err := removeExisting(targetPath); err != nil {
			return err
		}
		if err := os.Symlink(e.LinkTarget, targetPath); err != nil {
			return fmt.Errorf("creating symlink %s -> %s: %w", targetPath, e.LinkTarget, err)
		}
		stats.Symlinks++
		logger.Printf("  link %s -> %s", e.Name, e.LinkTarget)

	default:
		if err := os.MkdirAll(filepath.Dir(targetPath), defaultDirMode); err != nil {
			return fmt.Errorf("creating parent directory: %w", err)
		}
		written, err := writeFile(targetPath, e)
		if err != nil {
			return err
		}
		stats.Files++
		stats.Bytes += written
		logger.Printf("  file %s (%d bytes)", e.Name, written)
	}

	return nil
}

func writeFile(targetPath string, e *Entry) (written int64, err error) {
	perm := e.Perm
	if perm == 0 {
		perm = defaultFileMode
	}

	rc, err := e.Open()
	if err != nil {
		return 0, fmt.Errorf("opening %s: %w", e.Name, err)
	}
	defer rc.Close()

	// Replace rather than truncate so read-only files from an earlier
	// extraction do not block the write.
	if err := removeExisting(targetPath); err != nil {
		return 0, err
	}

	outFile, err := os.OpenFile(targetPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return 0, fmt.Errorf("creating file %s: %w", targetPath, err)
	}
	defer func() {
		if closeErr := outFile.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing file %s: %w", targetPath, closeErr)
		}
	}()

	written, err = io.Copy(outFile, rc)
	if err != nil {
		return written, fmt.Errorf("writing file %s: %w", targetPath, err)
	}
	return written, nil
}

// securePath joins name onto dest, refusing names that leave dest.
//
// The parent directory is resolved against what is already on disk, so
// symlinks written by earlier entries are followed but can never lead out of
// dest. The final component is not resolved; it is the path being replaced.
func securePath(dest, name string) (string, error) {
	rel := filepath.FromSlash(strings.TrimSuffix(name, "/"))
	if !filepath.IsLocal(rel) {
		return "", fmt.Errorf("%w: %s", ErrUnsafePath, name)
	}

	parent, err := securejoin.SecureJoin(dest, filepath.Dir(rel))
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", name, err)
	}
	if !within(dest, parent) {
		return "", fmt.Errorf("%w: %s", ErrUnsafePath, name)
	}
	return filepath.Join(parent, filepath.Base(rel)), nil
}

// removeExisting deletes whatever occupies path, if anything
func removeExisting(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

// within reports whether path is dest or below it
func within(dest, path string) bool {
	rel, err := filepath.Rel(dest, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// checkLinkTarget refuses symlinks that are absolute or resolve outside dest
func checkLinkTarget(dest, linkPath, target string) error {
	if target == "" || filepath.IsAbs(target) {
		return ErrUnsafePath
	}
	if !within(dest, filepath.Join(filepath.Dir(linkPath), filepath.FromSlash(target))) {
		return ErrUnsafePath
	}
	return nil
}
