//go:build debug

package debug

// Debug reports whether the binary was built with the debug tag.
const Debug = true

// Assert panics if condition is false. It compiles to a no-op without the
// debug tag.
func Assert(condition bool, message ...string) {
	if !condition {
		if len(message) > 0 {
			panic(message[0])
		}
		panic("assertion failed")
	}
}
