//go:build !amd64 && !arm64

package arena

// hasWideFastPath is conservative on architectures without a known-good
// wide load story: stick to the baseline 4-byte unrolled step.
func hasWideFastPath() bool {
	return false
}
