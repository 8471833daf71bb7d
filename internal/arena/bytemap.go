package arena

// Byte-classification flags, branch-predictable replacements for
// per-character if-chains in the hot loops of the string decoder and
// whitespace skipper. Bit positions match the data layout the rest of
// the parser expects to see when it masks a class byte.
const (
	FlagPlainString byte = 1 << 0 // 0x20..0x7f except '"' and '\'
	FlagWhitespace  byte = 1 << 1 // \t \n \r space
	FlagEscape      byte = 1 << 2 // control bytes, '"', '\' — needs JSON escaping on output
	FlagDigitish    byte = 1 << 4 // 0-9 e E .
)

// classTable is a 256-entry lookup built once at package load, the
// same one-time-init idiom the rest of the pack uses for its
// character-class tables.
var classTable [256]byte

func init() {
	for c := 0x20; c <= 0x7f; c++ {
		if c != '"' && c != '\\' {
			classTable[c] |= FlagPlainString
		}
	}
	for _, c := range []byte{'\t', '\n', '\r', ' '} {
		classTable[c] |= FlagWhitespace
	}
	for c := '0'; c <= '9'; c++ {
		classTable[c] |= FlagDigitish
	}
	classTable['e'] |= FlagDigitish
	classTable['E'] |= FlagDigitish
	classTable['.'] |= FlagDigitish
	for c := 0; c < 0x20; c++ {
		classTable[c] |= FlagEscape
	}
	classTable['"'] |= FlagEscape
	classTable['\\'] |= FlagEscape
}

// ClassOf returns the classification flags for a single input byte.
func ClassOf(c byte) byte {
	return classTable[c]
}

// IsPlainStringByte reports whether c can be copied verbatim by the
// string decoder's fast path.
func IsPlainStringByte(c byte) bool {
	return classTable[c]&FlagPlainString != 0
}

// IsWhitespace reports whether c is JSON insignificant whitespace.
func IsWhitespace(c byte) bool {
	return classTable[c]&FlagWhitespace != 0
}

// NeedsEscape reports whether c must be escaped when writing a JSON
// string. Bytes >= 0x80 — UTF-8 lead and continuation bytes — are never
// flagged, so multi-byte text copies straight through unescaped.
func NeedsEscape(c byte) bool {
	return classTable[c]&FlagEscape != 0
}
