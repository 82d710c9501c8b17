package low

import "runtime"

// runtimeKeepAlive is a thin indirection over runtime.KeepAlive so the
// zeroisation helpers read as a single documented barrier rather than a
// scattering of raw runtime calls.
func runtimeKeepAlive(v any) {
	runtime.KeepAlive(v)
}
