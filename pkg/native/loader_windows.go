//go:build windows

package native

import (
	"golang.org/x/sys/windows"
)

type dllLibrary struct {
	dll *windows.DLL
}

func openLibrary(path string) (library, error) {
	dll, err := windows.LoadDLL(path)
	if err != nil {
		return nil, err
	}
	return &dllLibrary{dll: dll}, nil
}

func (l *dllLibrary) entry(name string) (func(), error) {
	proc, err := l.dll.FindProc(name)
	if err != nil {
		return nil, err
	}
	return func() {
		// Zero arguments; the return registers carry nothing for a void export.
		_, _, _ = proc.Call()
	}, nil
}

func (l *dllLibrary) release() error {
	return l.dll.Release()
}
