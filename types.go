package sajson

import "github.com/biggeezerdevelopment/sajson-go/internal/arena"

// Type is a value's kind, numbered to match the tag values the parser
// packs into every AST word: integer=0, double=1, null=2, false=3,
// true=4, string=5, array=6, object=7.
type Type int

const (
	Integer Type = iota
	Double
	Null
	False
	True
	String
	Array
	Object
)

func (t Type) String() string {
	switch t {
	case Integer:
		return "integer"
	case Double:
		return "double"
	case Null:
		return "null"
	case False:
		return "false"
	case True:
		return "true"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return "unknown"
	}
}

// typeFromTag converts an internal arena.Tag to the public Type. The
// two enumerations share numbering by construction, so this is a
// plain cast, not a lookup.
func typeFromTag(t arena.Tag) Type { return Type(t) }
