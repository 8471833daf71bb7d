//go:build amd64

package arena

import "golang.org/x/sys/cpu"

// hasWideFastPath reports whether the CPU supports the wider 8-byte
// unrolled step in the plain-string scan loop. On modern
// amd64 (SSE4.2 or better) it is always safe to look 8 bytes ahead
// without a bounds-checked inner loop.
func hasWideFastPath() bool {
	return cpu.X86.HasSSE42
}
