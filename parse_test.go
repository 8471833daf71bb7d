package sajson

import (
	"math"
	"testing"

	"github.com/biggeezerdevelopment/sajson-go/internal/ast"
)

func TestScenarioEmptyArray(t *testing.T) {
	doc, err := Parse([]byte(`[]`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	root := doc.Root()
	if root.Type() != Array || root.Length() != 0 {
		t.Errorf("root = (%v, len %d), want (Array, 0)", root.Type(), root.Length())
	}
}

func TestScenarioEmptyObject(t *testing.T) {
	doc, err := Parse([]byte(`{}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	root := doc.Root()
	if root.Type() != Object || root.Length() != 0 {
		t.Errorf("root = (%v, len %d), want (Object, 0)", root.Type(), root.Length())
	}
}

func TestScenarioMixedArray(t *testing.T) {
	doc, err := Parse([]byte(`[1, 2.5, "a", true, false, null]`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	root := doc.Root()
	if root.Type() != Array || root.Length() != 6 {
		t.Fatalf("root = (%v, len %d), want (Array, 6)", root.Type(), root.Length())
	}
	wantTypes := []Type{Integer, Double, String, True, False, Null}
	for i, want := range wantTypes {
		if got := root.Index(i).Type(); got != want {
			t.Errorf("element %d type = %v, want %v", i, got, want)
		}
	}
	if got := root.Index(0).IntegerValue(); got != 1 {
		t.Errorf("element 0 = %d, want 1", got)
	}
	if got := root.Index(1).DoubleValue(); got != 2.5 {
		t.Errorf("element 1 = %v, want 2.5", got)
	}
	if got := root.Index(2).String(); got != "a" {
		t.Errorf("element 2 = %q, want %q", got, "a")
	}
}

func TestScenarioObjectLookup(t *testing.T) {
	doc, err := Parse([]byte(`{"b":2,"a":1}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	root := doc.Root()
	if root.Type() != Object || root.Length() != 2 {
		t.Fatalf("root = (%v, len %d), want (Object, 2)", root.Type(), root.Length())
	}
	v, ok := root.Lookup("a")
	if !ok {
		t.Fatalf(`Lookup("a") missed`)
	}
	if got := v.IntegerValue(); got != 1 {
		t.Errorf(`Lookup("a") = %d, want 1`, got)
	}
	idx := root.FindKey([]byte("z"))
	if idx != root.Length() {
		t.Errorf(`FindKey("z") = %d, want %d`, idx, root.Length())
	}
}

func TestScenarioUnicodeEscape(t *testing.T) {
	doc, err := Parse([]byte(`["\u0041\u0042"]`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	root := doc.Root()
	if root.Length() != 1 {
		t.Fatalf("root length = %d, want 1", root.Length())
	}
	if got := root.Index(0).String(); got != "AB" {
		t.Errorf("element 0 = %q, want %q", got, "AB")
	}
}

func TestScenarioSurrogatePairEmoji(t *testing.T) {
	doc, err := Parse([]byte("[\"\\uD83D\\uDE00\"]"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	root := doc.Root()
	got := root.Index(0).StringBytes()
	want := []byte{0xF0, 0x9F, 0x98, 0x80}
	if string(got) != string(want) {
		t.Errorf("element 0 = % x, want % x", got, want)
	}
}

func TestScenarioHugeExponentIsPositiveInfinity(t *testing.T) {
	doc, err := Parse([]byte(`{"k": 1e400}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	v, ok := doc.Root().Lookup("k")
	if !ok {
		t.Fatalf(`Lookup("k") missed`)
	}
	if v.Type() != Double || !math.IsInf(v.DoubleValue(), 1) {
		t.Errorf("k = (%v, %v), want (Double, +Inf)", v.Type(), v.DoubleValue())
	}
}

func TestScenarioTrailingCommaIsExpectedValue(t *testing.T) {
	_, err := Parse([]byte(`[1,]`))
	pe := asParseError(t, err)
	if pe.Code != ast.ExpectedValue {
		t.Errorf("code = %v, want ExpectedValue", pe.Code)
	}
	if pe.Column != 4 {
		t.Errorf("column = %d, want 4", pe.Column)
	}
}

func TestScenarioMissingCommaBetweenMembers(t *testing.T) {
	_, err := Parse([]byte(`{"a":1  "b":2}`))
	pe := asParseError(t, err)
	if pe.Code != ast.ExpectedComma {
		t.Errorf("code = %v, want ExpectedComma", pe.Code)
	}
}

func TestScenarioIllegalCodepointCarriesByteArg(t *testing.T) {
	_, err := Parse([]byte("{\"k\":\"\x01\"}"))
	pe := asParseError(t, err)
	if pe.Code != ast.IllegalCodepoint || pe.Arg != 1 {
		t.Errorf("error = %+v, want IllegalCodepoint arg=1", pe)
	}
}

func TestScenarioTruncatedArrayIsUnexpectedEnd(t *testing.T) {
	_, err := Parse([]byte(`[true`))
	pe := asParseError(t, err)
	if pe.Code != ast.UnexpectedEnd {
		t.Errorf("code = %v, want UnexpectedEnd", pe.Code)
	}
}

func TestScenarioBadRootReportsLine(t *testing.T) {
	_, err := Parse([]byte("  \n\n  42"))
	pe := asParseError(t, err)
	if pe.Code != ast.BadRoot {
		t.Errorf("code = %v, want BadRoot", pe.Code)
	}
	if pe.Line != 3 {
		t.Errorf("line = %d, want 3", pe.Line)
	}
}

func asParseError(t *testing.T, err error) *ast.ParseError {
	t.Helper()
	if err == nil {
		t.Fatal("expected a parse error, got nil")
	}
	pe, ok := err.(*ast.ParseError)
	if !ok {
		t.Fatalf("error = %T, want *ast.ParseError", err)
	}
	return pe
}

func TestParseInPlaceMutatesCallerBuffer(t *testing.T) {
	buf := []byte(`["ab\ncd"]`)
	doc, err := ParseInPlace(buf)
	if err != nil {
		t.Fatalf("ParseInPlace: %v", err)
	}
	if string(doc.Root().Index(0).StringBytes()) != "ab\ncd" {
		t.Fatalf("decoded string wrong")
	}
	// The decoded string's bytes must alias buf itself, not a copy.
	sb := doc.Root().Index(0).StringBytes()
	if &sb[0] != &buf[2] {
		t.Fatalf("ParseInPlace decoded string does not alias the caller's buffer")
	}
}

func TestParseCopyLeavesCallerBufferUntouched(t *testing.T) {
	original := `["ab\ncd"]`
	buf := []byte(original)
	doc, err := ParseCopy(buf)
	if err != nil {
		t.Fatalf("ParseCopy: %v", err)
	}
	if string(buf) != original {
		t.Errorf("ParseCopy mutated the caller's buffer: got %q, want %q", buf, original)
	}
	if string(doc.Root().Index(0).StringBytes()) != "ab\ncd" {
		t.Fatalf("decoded string wrong")
	}
}

func TestWithUnsortedObjectsPreservesSourceOrder(t *testing.T) {
	doc, err := Parse([]byte(`{"b":1,"a":2}`), WithUnsortedObjects())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	root := doc.Root()
	if string(root.ObjectKeyAt(0)) != "b" {
		t.Errorf("ObjectKeyAt(0) = %q, want %q", root.ObjectKeyAt(0), "b")
	}
	v, ok := root.Lookup("a")
	if !ok || v.IntegerValue() != 2 {
		t.Errorf("Lookup(a) = (%v, %v), want (2, true)", v, ok)
	}
}

func TestWithKeySortThresholdForcesSorting(t *testing.T) {
	doc, err := Parse([]byte(`{"bb":1,"a":2,"ccc":3}`), WithKeySortThreshold(1))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	root := doc.Root()
	// Shortest key ("a") sorts first under length-then-memcmp.
	if string(root.ObjectKeyAt(0)) != "a" {
		t.Errorf("ObjectKeyAt(0) = %q, want %q", root.ObjectKeyAt(0), "a")
	}
}

func TestWithPooledArenaRoundTrips(t *testing.T) {
	for i := 0; i < 3; i++ {
		doc, err := Parse([]byte(`{"n":1}`), WithPooledArena())
		if err != nil {
			t.Fatalf("Parse with pooled arena: %v", err)
		}
		v, ok := doc.Root().Lookup("n")
		if !ok || v.IntegerValue() != 1 {
			t.Errorf("iteration %d: Lookup(n) = (%v, %v), want (1, true)", i, v, ok)
		}
	}
}

func TestDocumentErrorAccessorsOnInvalidParse(t *testing.T) {
	doc, err := Parse([]byte(`nope`))
	if err == nil {
		t.Fatal("expected an error for malformed input")
	}
	if doc.IsValid() {
		t.Fatal("IsValid() = true for a failed parse")
	}
	if doc.ErrorMessage() == "" {
		t.Error("ErrorMessage() is empty for a failed parse")
	}
	if doc.ErrorLine() == 0 || doc.ErrorColumn() == 0 {
		t.Error("ErrorLine/ErrorColumn not populated for a failed parse")
	}
}

func TestZeroValueDocumentReportsUninitialized(t *testing.T) {
	var doc Document
	if doc.IsValid() {
		t.Fatal("zero-value Document reports valid")
	}
	if got, want := doc.ErrorMessage(), ast.Uninitialized.Text(); got != want {
		t.Errorf("ErrorMessage() = %q, want %q", got, want)
	}
}
