package ast

import (
	"math"
	"strconv"

	"github.com/biggeezerdevelopment/sajson-go/internal/arena"
)

const (
	pow10Min = -323
	pow10Max = 308
)

// pow10Table holds 10^e for e in [pow10Min, pow10Max], computed once at
// load by parsing the same "1eN" literal form the IEEE-754 standard
// defines, rather than hand-typing three hundred-odd float constants.
var pow10Table = func() [pow10Max - pow10Min + 1]float64 {
	var t [pow10Max - pow10Min + 1]float64
	for e := pow10Min; e <= pow10Max; e++ {
		v, _ := strconv.ParseFloat("1e"+strconv.Itoa(e), 64)
		t[e-pow10Min] = v
	}
	return t
}()

func pow10(exponent int64) float64 {
	if exponent > pow10Max {
		return math.Inf(1)
	}
	if exponent < pow10Min {
		return 0.0
	}
	return pow10Table[exponent-pow10Min]
}

const (
	int32Max = int64(1<<31 - 1)
)

// parseNumber parses a JSON number starting at data[pos] and reserves
// its AST payload. Returns the position just past the number, the tag
// of the stored value (TagInteger or TagDouble), or an error.
func parseNumber(data []byte, pos int, a *arena.Arena) (int, arena.Tag, error) {
	n := len(data)

	negative := false
	if pos < n && data[pos] == '-' {
		pos++
		negative = true
		if pos >= n {
			return pos, 0, errAt(data, pos, UnexpectedEnd)
		}
	}

	tryDouble := false
	var i int32
	var d float64

	if data[pos] == '0' {
		pos++
		if pos >= n {
			return pos, 0, errAt(data, pos, UnexpectedEnd)
		}
	} else {
		c := data[pos]
		if c < '0' || c > '9' {
			return pos, 0, errAt(data, pos, InvalidNumber)
		}
		for {
			pos++
			if pos >= n {
				return pos, 0, errAt(data, pos, UnexpectedEnd)
			}
			digit := int32(c - '0')
			if !tryDouble && int64(i) > int32Max/10-9 {
				tryDouble = true
				d = float64(i)
			}
			if tryDouble {
				d = 10.0*d + float64(digit)
			} else {
				i = 10*i + digit
			}
			c = data[pos]
			if c < '0' || c > '9' {
				break
			}
		}
	}

	var exponent int64

	if pos < n && data[pos] == '.' {
		if !tryDouble {
			tryDouble = true
			d = float64(i)
		}
		pos++
		if pos >= n {
			return pos, 0, errAt(data, pos, UnexpectedEnd)
		}
		c := data[pos]
		if c < '0' || c > '9' {
			return pos, 0, errAt(data, pos, InvalidNumber)
		}
		for {
			pos++
			if pos >= n {
				return pos, 0, errAt(data, pos, UnexpectedEnd)
			}
			d = d*10 + float64(c-'0')
			exponent--
			c = data[pos]
			if c < '0' || c > '9' {
				break
			}
		}
	}

	if pos < n && (data[pos] == 'e' || data[pos] == 'E') {
		if !tryDouble {
			tryDouble = true
			d = float64(i)
		}
		pos++
		if pos >= n {
			return pos, 0, errAt(data, pos, UnexpectedEnd)
		}

		negativeExponent := false
		if data[pos] == '-' {
			negativeExponent = true
			pos++
			if pos >= n {
				return pos, 0, errAt(data, pos, UnexpectedEnd)
			}
		} else if data[pos] == '+' {
			pos++
			if pos >= n {
				return pos, 0, errAt(data, pos, UnexpectedEnd)
			}
		}

		var exp int64
		c := data[pos]
		if c < '0' || c > '9' {
			return pos, 0, errAt(data, pos, MissingExponent)
		}
		for {
			digit := int64(c - '0')
			if exp > (int32Max-digit)/10 {
				exp = int32Max
			} else {
				exp = 10*exp + digit
			}
			pos++
			if pos >= n {
				return pos, 0, errAt(data, pos, UnexpectedEnd)
			}
			c = data[pos]
			if c < '0' || c > '9' {
				break
			}
		}
		if negativeExponent {
			exponent -= exp
		} else {
			exponent += exp
		}
	}

	if exponent != 0 && d != 0.0 {
		d *= pow10(exponent)
	}

	if negative {
		if tryDouble {
			d = -d
		} else {
			i = -i
		}
	}

	if tryDouble {
		base, err := a.ReserveAST(arena.DoubleWords)
		if err != nil {
			return pos, 0, errAt(data, pos, OutOfMemory)
		}
		arena.StoreDouble(a.AST(base), d)
		return pos, arena.TagDouble, nil
	}

	base, err := a.ReserveAST(arena.IntegerWords)
	if err != nil {
		return pos, 0, errAt(data, pos, OutOfMemory)
	}
	arena.StoreInteger(a.AST(base), i)
	return pos, arena.TagInteger, nil
}
