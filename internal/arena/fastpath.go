package arena

// FastPathWidth is the unrolled step size the string decoder uses while
// bytes remain plain; the whitespace skipper steps one byte at a time. It is
// resolved once at package load from the detected CPU features rather
// than on every call.
var FastPathWidth = func() int {
	if hasWideFastPath() {
		return 8
	}
	return 4
}()
