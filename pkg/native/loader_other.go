//go:build !darwin && !freebsd && !linux && !windows

package native

func openLibrary(path string) (library, error) {
	return nil, ErrUnsupported
}
