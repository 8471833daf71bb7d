package sajson

import (
	"github.com/biggeezerdevelopment/sajson-go/internal/arena"
	"github.com/biggeezerdevelopment/sajson-go/internal/ast"
)

// Document is the result of a parse. A zero-value Document reports
// IsValid()=false with the same "uninitialized document" message the
// reference implementation gives a default-constructed document.
type Document struct {
	data      []byte
	threshold int

	valid   bool
	rootTag Type
	payload []arena.Word

	err *ast.ParseError
}

// IsValid reports whether the document parsed successfully. Only a
// valid document's Root may be navigated.
func (d *Document) IsValid() bool { return d.valid }

// Root returns the document's root value. Calling it on an invalid
// document is undefined, as with the reference implementation's
// get_root() contract.
func (d *Document) Root() Value {
	return Value{tag: d.rootTag, payload: d.payload, data: d.data, threshold: d.threshold}
}

// ErrorLine returns the 1-based line of the failing byte, or 0 if the
// document is valid or uninitialized.
func (d *Document) ErrorLine() int {
	if d.err == nil {
		return 0
	}
	return d.err.Line
}

// ErrorColumn returns the 1-based column of the failing byte, or 0 if
// the document is valid or uninitialized.
func (d *Document) ErrorColumn() int {
	if d.err == nil {
		return 0
	}
	return d.err.Column
}

// ErrorMessage returns the stable diagnostic text for a failed parse,
// or the empty string if the document is valid.
func (d *Document) ErrorMessage() string {
	if d.valid {
		return ""
	}
	if d.err == nil {
		return ast.Uninitialized.Text()
	}
	return d.err.Message()
}
