package ast

import "testing"

func TestLocateCountsLinesByte(t *testing.T) {
	cases := []struct {
		data      string
		pos       int
		line, col int
	}{
		{"abc", 0, 1, 1},
		{"abc", 3, 1, 4},
		{"a\nb", 2, 2, 1},
		{"a\nb", 3, 2, 2},
		{"a\rb", 2, 2, 1},
		{"a\r\nb", 3, 2, 1},
		{"a\r\n\r\nb", 5, 3, 1},
	}
	for _, c := range cases {
		line, col := locate([]byte(c.data), c.pos)
		if line != c.line || col != c.col {
			t.Errorf("locate(%q, %d) = (%d, %d), want (%d, %d)", c.data, c.pos, line, col, c.line, c.col)
		}
	}
}

func TestIllegalCodepointMessageHasByteArg(t *testing.T) {
	err := errAtArg([]byte("x"), 0, IllegalCodepoint, 1)
	if got, want := err.Message(), "illegal unprintable codepoint in string: 1"; got != want {
		t.Errorf("Message() = %q, want %q", got, want)
	}
}

func TestOtherErrorsHaveNoByteArgSuffix(t *testing.T) {
	err := errAt([]byte("x"), 0, ExpectedComma)
	if got, want := err.Message(), "expected ,"; got != want {
		t.Errorf("Message() = %q, want %q", got, want)
	}
}

func TestErrorCodeTextTable(t *testing.T) {
	if NoError.Text() != "no error" {
		t.Errorf("NoError.Text() = %q", NoError.Text())
	}
	if ExpectedU.Text() != `expected \u` {
		t.Errorf("ExpectedU.Text() = %q", ExpectedU.Text())
	}
	if Uninitialized.Text() != "uninitialized document" {
		t.Errorf("Uninitialized.Text() = %q", Uninitialized.Text())
	}
}
