package ast

import (
	"math"
	"testing"

	"github.com/biggeezerdevelopment/sajson-go/internal/arena"
)

// parseOneNumber parses the number at the start of s. A sentinel byte
// is appended first: a number token is only ever followed by more
// input in a well-formed document (a delimiter, a closing bracket, or
// whitespace), and the parser relies on being able to peek one byte
// past the last digit, the same boundary assumption the reference
// implementation makes.
func parseOneNumber(t *testing.T, s string) (arena.Tag, float64, int32, int) {
	t.Helper()
	data := []byte(s + "]")
	a := arena.New(make([]arena.Word, len(data)+4))
	next, tag, err := parseNumber(data, 0, a)
	if err != nil {
		t.Fatalf("parseNumber(%q): %v", s, err)
	}
	base := a.ASTBase()
	payload := a.AST(base)
	switch tag {
	case arena.TagInteger:
		return tag, 0, arena.LoadInteger(payload), next
	default:
		return tag, arena.LoadDouble(payload), 0, next
	}
}

func TestParseNumberIntegers(t *testing.T) {
	cases := []struct {
		in   string
		want int32
	}{
		{"0", 0},
		{"42", 42},
		{"-123", -123},
		{"-0", 0},
	}
	for _, c := range cases {
		tag, _, i, next := parseOneNumber(t, c.in)
		if tag != arena.TagInteger {
			t.Errorf("parseNumber(%q) tag = %v, want TagInteger", c.in, tag)
		}
		if i != c.want {
			t.Errorf("parseNumber(%q) = %d, want %d", c.in, i, c.want)
		}
		if next != len(c.in) {
			t.Errorf("parseNumber(%q) consumed %d bytes, want %d", c.in, next, len(c.in))
		}
	}
}

func TestParseNumberDoubles(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"2.5", 2.5},
		{"-3.25", -3.25},
		{"1e3", 1000},
		{"1.5e2", 150},
		{"-1.23e+10", -1.23e+10},
		{"1.23e-10", 1.23e-10},
	}
	for _, c := range cases {
		tag, d, _, _ := parseOneNumber(t, c.in)
		if tag != arena.TagDouble {
			t.Errorf("parseNumber(%q) tag = %v, want TagDouble", c.in, tag)
		}
		if math.Abs(d-c.want) > 1e-9*math.Max(1, math.Abs(c.want)) {
			t.Errorf("parseNumber(%q) = %v, want %v", c.in, d, c.want)
		}
	}
}

func TestParseNumberOverflowPromotesToDouble(t *testing.T) {
	// A digit run that would overflow int32 promotes to a double
	// accumulated digit-by-digit, the same way the reference
	// implementation does it; the exact rounding of that accumulation
	// isn't a contract, only that overflow triggers the promotion and
	// the magnitude survives.
	tag, d, _, _ := parseOneNumber(t, "9223372036854775807")
	if tag != arena.TagDouble {
		t.Fatalf("large integer literal tag = %v, want TagDouble", tag)
	}
	const want = 9223372036854775807.0
	if math.Abs(d-want)/want > 1e-9 {
		t.Errorf("parseNumber(large) = %v, want approximately %v", d, want)
	}
}

func TestParseNumberHugeExponentIsInf(t *testing.T) {
	tag, d, _, _ := parseOneNumber(t, "1e400")
	if tag != arena.TagDouble {
		t.Fatalf("1e400 tag = %v, want TagDouble", tag)
	}
	if !math.IsInf(d, 1) {
		t.Errorf("parseNumber(1e400) = %v, want +Inf", d)
	}
}

func TestParseNumberRejectsMissingExponentDigits(t *testing.T) {
	data := []byte("1e")
	a := arena.New(make([]arena.Word, 4))
	_, _, err := parseNumber(data, 0, a)
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if pe.Code != UnexpectedEnd {
		t.Errorf("parseNumber(%q) code = %v, want UnexpectedEnd", "1e", pe.Code)
	}
}

func TestParseNumberStopsAfterLeadingZero(t *testing.T) {
	data := []byte("01")
	a := arena.New(make([]arena.Word, 4))
	next, tag, err := parseNumber(data, 0, a)
	if err != nil {
		t.Fatalf("parseNumber(%q): %v", "01", err)
	}
	// "0" parses as a complete number; the caller's state machine is
	// responsible for rejecting the trailing "1" as a structural error.
	if tag != arena.TagInteger || next != 1 {
		t.Errorf("parseNumber(%q) = (tag=%v, next=%d), want (TagInteger, 1)", "01", tag, next)
	}
}
