//go:build darwin || freebsd || linux

package native

import (
	"github.com/ebitengine/purego"
)

type dlLibrary struct {
	handle uintptr
}

func openLibrary(path string) (library, error) {
	// RTLD_NOW surfaces unresolved dependencies at load time rather than on
	// first call.
	handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_LOCAL)
	if err != nil {
		return nil, err
	}
	return &dlLibrary{handle: handle}, nil
}

func (l *dlLibrary) entry(name string) (func(), error) {
	sym, err := purego.Dlsym(l.handle, name)
	if err != nil {
		return nil, err
	}

	var fn func()
	purego.RegisterFunc(&fn, sym)
	return fn, nil
}

func (l *dlLibrary) release() error {
	return purego.Dlclose(l.handle)
}
