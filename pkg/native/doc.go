// Package native loads platform shared libraries into the current process and
// invokes their exported entry points.
//
// The only supported entry point signature is a function taking no arguments
// and returning nothing:
//
//	void entry(void);          // C
//	extern "C" void entry();   // C++
//	#[no_mangle] pub extern "C" fn entry() {}  // Rust
//
// Platform loaders only expose symbol addresses, so the real signature of an
// export cannot be verified. Calling an export with a different signature is
// undefined behavior.
//
// Resolved symbols never leave a Module. They are looked up and invoked inside
// Call while the module is held open, so a symbol cannot be used after Close.
//
// Basic usage:
//
//	mod, err := native.Open("/path/to/libplugin.so")
//	if err != nil {
//	    return err
//	}
//	defer mod.Close()
//
//	if err := mod.Call("run"); err != nil {
//	    return err
//	}
package native
