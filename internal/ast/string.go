package ast

import "github.com/biggeezerdevelopment/sajson-go/internal/arena"

// parseString decodes a JSON string starting at the opening quote
// data[pos] and writes its [begin, end) byte-offset bounds into out
// (already reserved by the caller as two AST words). Decoding mutates
// data in place: a NUL is written just past the decoded bytes (over the
// closing quote itself when nothing was compacted), and the slow path
// compacts escape output leftward as it goes, so the recorded range
// always aliases the (possibly shrunk) input bytes.
//
// Returns the position just past the closing quote.
func parseString(data []byte, pos int, out []arena.Word) (int, error) {
	p := pos + 1 // skip opening quote
	start := p
	n := len(data)

	p, ok := scanPlainRun(data, p, n)
	if !ok {
		return p, errAt(data, p, UnexpectedEnd)
	}

	if data[p] == '"' {
		out[0] = arena.Word(start)
		out[1] = arena.Word(p)
		data[p] = 0
		return p + 1, nil
	}
	if data[p] < 0x20 {
		return p, errAtArg(data, p, IllegalCodepoint, int(data[p]))
	}
	return parseStringSlow(data, p, out, start)
}

// scanPlainRun advances p while the input is plain string bytes,
// taking an arena.FastPathWidth-wide unrolled step while enough bytes
// remain. Returns the position of the first non-plain byte, or
// ok=false if it ran off the end of the input first.
func scanPlainRun(data []byte, p, n int) (int, bool) {
	width := arena.FastPathWidth
	for n-p >= width {
		for k := 0; k < width; k++ {
			if !arena.IsPlainStringByte(data[p+k]) {
				return p + k, true
			}
		}
		p += width
	}
	for p < n {
		if !arena.IsPlainStringByte(data[p]) {
			return p, true
		}
		p++
	}
	return p, false
}

func parseStringSlow(data []byte, p int, out []arena.Word, start int) (int, error) {
	end := p
	n := len(data)

	for {
		if p >= n {
			return p, errAt(data, p, UnexpectedEnd)
		}
		c := data[p]
		if c < 0x20 {
			return p, errAtArg(data, p, IllegalCodepoint, int(c))
		}

		switch c {
		case '"':
			out[0] = arena.Word(start)
			out[1] = arena.Word(end)
			data[end] = 0
			return p + 1, nil

		case '\\':
			p++
			if p >= n {
				return p, errAt(data, p, UnexpectedEnd)
			}
			switch data[p] {
			case '"':
				data[end] = '"'
				end++
				p++
			case '\\':
				data[end] = '\\'
				end++
				p++
			case '/':
				data[end] = '/'
				end++
				p++
			case 'b':
				data[end] = '\b'
				end++
				p++
			case 'f':
				data[end] = '\f'
				end++
				p++
			case 'n':
				data[end] = '\n'
				end++
				p++
			case 'r':
				data[end] = '\r'
				end++
				p++
			case 't':
				data[end] = '\t'
				end++
				p++
			case 'u':
				p++
				if n-p < 4 {
					return p, errAt(data, p, UnexpectedEnd)
				}
				u, np, err := readHex(data, p)
				if err != nil {
					return np, err
				}
				p = np
				if u >= 0xD800 && u <= 0xDBFF {
					if n-p < 6 {
						return p, errAt(data, p, UnexpectedEndOfUTF16)
					}
					if data[p] != '\\' || data[p+1] != 'u' {
						return p, errAt(data, p, ExpectedU)
					}
					p += 2
					v, np2, err := readHex(data, p)
					if err != nil {
						return np2, err
					}
					p = np2
					if v < 0xDC00 || v > 0xDFFF {
						return p, errAt(data, p, InvalidUTF16TrailSurrogate)
					}
					u = 0x10000 + (((u - 0xD800) << 10) | (v - 0xDC00))
				}
				end = writeUTF8(data, end, u)
			default:
				return p, errAt(data, p, UnknownEscape)
			}

		default:
			c0 := data[p]
			switch {
			case c0 < 0x80:
				data[end] = c0
				end++
				p++
			case c0 < 0xE0:
				if n-p < 2 {
					return p, errAt(data, p, UnexpectedEnd)
				}
				c1 := data[p+1]
				if c1 < 0x80 || c1 >= 0xC0 {
					return p + 1, errAt(data, p+1, InvalidUTF8)
				}
				data[end], data[end+1] = c0, c1
				end += 2
				p += 2
			case c0 < 0xF0:
				if n-p < 3 {
					return p, errAt(data, p, UnexpectedEnd)
				}
				c1, c2 := data[p+1], data[p+2]
				if c1 < 0x80 || c1 >= 0xC0 {
					return p + 1, errAt(data, p+1, InvalidUTF8)
				}
				if c2 < 0x80 || c2 >= 0xC0 {
					return p + 2, errAt(data, p+2, InvalidUTF8)
				}
				data[end], data[end+1], data[end+2] = c0, c1, c2
				end += 3
				p += 3
			case c0 < 0xF8:
				if n-p < 4 {
					return p, errAt(data, p, UnexpectedEnd)
				}
				c1, c2, c3 := data[p+1], data[p+2], data[p+3]
				if c1 < 0x80 || c1 >= 0xC0 {
					return p + 1, errAt(data, p+1, InvalidUTF8)
				}
				if c2 < 0x80 || c2 >= 0xC0 {
					return p + 2, errAt(data, p+2, InvalidUTF8)
				}
				if c3 < 0x80 || c3 >= 0xC0 {
					return p + 3, errAt(data, p+3, InvalidUTF8)
				}
				data[end], data[end+1], data[end+2], data[end+3] = c0, c1, c2, c3
				end += 4
				p += 4
			default:
				return p, errAt(data, p, InvalidUTF8)
			}
		}
	}
}

// readHex reads 4 hex digits (case-insensitive) starting at data[p].
func readHex(data []byte, p int) (codepoint int, next int, err error) {
	v := 0
	for i := 0; i < 4; i++ {
		c := data[p]
		switch {
		case c >= '0' && c <= '9':
			c -= '0'
		case c >= 'a' && c <= 'f':
			c = c - 'a' + 10
		case c >= 'A' && c <= 'F':
			c = c - 'A' + 10
		default:
			return 0, p, errAt(data, p, InvalidUnicodeEscape)
		}
		v = (v << 4) + int(c)
		p++
	}
	return v, p, nil
}

// writeUTF8 emits codepoint as UTF-8 at data[end], returning the
// advanced write cursor. A lone low surrogate (not preceded by a high
// surrogate) reaches here and is encoded as an ordinary 3-byte
// codepoint: that is what the reference implementation does, so this
// reproduces it deliberately rather than rejecting it.
func writeUTF8(data []byte, end, codepoint int) int {
	switch {
	case codepoint < 0x80:
		data[end] = byte(codepoint)
		return end + 1
	case codepoint < 0x800:
		data[end] = byte(0xC0 | (codepoint >> 6))
		data[end+1] = byte(0x80 | (codepoint & 0x3F))
		return end + 2
	case codepoint < 0x10000:
		data[end] = byte(0xE0 | (codepoint >> 12))
		data[end+1] = byte(0x80 | ((codepoint >> 6) & 0x3F))
		data[end+2] = byte(0x80 | (codepoint & 0x3F))
		return end + 3
	default:
		data[end] = byte(0xF0 | (codepoint >> 18))
		data[end+1] = byte(0x80 | ((codepoint >> 12) & 0x3F))
		data[end+2] = byte(0x80 | ((codepoint >> 6) & 0x3F))
		data[end+3] = byte(0x80 | (codepoint & 0x3F))
		return end + 4
	}
}
