//go:build arm64

package arena

import "golang.org/x/sys/cpu"

// hasWideFastPath reports whether the CPU supports the wider 8-byte
// unrolled step. All current arm64 targets have NEON, which is enough
// to justify the wider step over the 4-byte fallback.
func hasWideFastPath() bool {
	return cpu.ARM64.HasASIMD
}
