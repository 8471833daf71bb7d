package arena

import (
	"math"
	"unsafe"
)

// IntegerWords is the number of Words a parsed int32 payload occupies.
const IntegerWords = 1

// DoubleWords is the number of Words a parsed float64 payload occupies.
// With a 64-bit Word this is always 1; the ceil-division mirrors the
// original's word_length = ceil(sizeof(double)/sizeof(size_t)) so a
// future narrower Word still computes the right count.
const DoubleWords = int((64 + wordBits - 1) / wordBits)

const wordBits = 8 * unsafe.Sizeof(Word(0))

// StoreInteger writes a host int32 into a single reserved word.
func StoreInteger(dst []Word, v int32) {
	dst[0] = Word(uint32(v))
}

// LoadInteger reads back an int32 stored by StoreInteger.
func LoadInteger(src []Word) int32 {
	return int32(uint32(src[0]))
}

// StoreDouble writes the IEEE-754 bit pattern of v into dst.
func StoreDouble(dst []Word, v float64) {
	dst[0] = Word(math.Float64bits(v))
}

// LoadDouble reads back a float64 stored by StoreDouble.
func LoadDouble(src []Word) float64 {
	return math.Float64frombits(uint64(src[0]))
}
