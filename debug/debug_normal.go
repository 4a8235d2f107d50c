//go:build !debug

package debug

// Debug reports whether the binary was built with the debug tag. It gates
// verbose logging under go test and stack trimming.
const Debug = false

// Assert panics if condition is false. It compiles to a no-op without the
// debug tag.
func Assert(condition bool, message ...string) {}
