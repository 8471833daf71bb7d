package ast

import "github.com/biggeezerdevelopment/sajson-go/internal/arena"

// state names the structural parser's control points. The original
// implementation dispatches between these with goto; Go discourages
// goto across blocks that declare new locals, so this is reorganized
// as an explicit enum driving a dispatch loop — the re-architecture
// spec.md's design notes call out directly.
type state int

const (
	stateArrayCloseOrElement state = iota
	stateObjectCloseOrElement
	stateObjectKey
	stateNextElement
	stateStructureCloseOrComma
	statePopArray
	statePopObject
)

// Options configures the structural state machine's object handling.
type Options struct {
	// KeySortThreshold is the key count above which an object's keys
	// are sorted and looked up by binary search. A negative value
	// disables sorting entirely (always linear scan), matching the
	// original's SAJSON_UNSORTED_OBJECT_KEYS build option.
	KeySortThreshold int
}

// DefaultOptions mirrors the reference implementation's built-in
// defaults.
func DefaultOptions() Options {
	return Options{KeySortThreshold: DefaultKeySortThreshold}
}

// Parser drives the structural state machine over data, installing
// values into a as it goes.
type Parser struct {
	data []byte
	pos  int
	a    *arena.Arena
	opts Options

	currentStructureTag arena.Tag
	currentBase         int

	// carried between statePopArray/statePopObject and pop
	popElement arena.Word
	// carried from a value-producing state into
	// stateStructureCloseOrComma's push
	valueTagResult arena.Tag

	rootTag  arena.Tag
	rootBase int
}

// NewParser constructs a structural parser over data, writing into a.
func NewParser(data []byte, a *arena.Arena, opts Options) *Parser {
	return &Parser{data: data, a: a, opts: opts}
}

// Parse runs the state machine to completion, returning the root's tag
// and AST base pointer on success.
func (p *Parser) Parse() (arena.Tag, int, error) {
	pos, ok := p.skipWhitespace(p.pos)
	if !ok {
		return 0, 0, errAt(p.data, len(p.data), MissingRootElement)
	}
	p.pos = pos

	var st state
	switch p.data[p.pos] {
	case '[':
		p.currentStructureTag = arena.TagArray
		p.currentBase = p.a.ScratchTop()
		if err := p.a.PushScratch(arena.Make(p.currentStructureTag, arena.RootMarker)); err != nil {
			return 0, 0, p.oom()
		}
		st = stateArrayCloseOrElement
	case '{':
		p.currentStructureTag = arena.TagObject
		p.currentBase = p.a.ScratchTop()
		if err := p.a.PushScratch(arena.Make(p.currentStructureTag, arena.RootMarker)); err != nil {
			return 0, 0, p.oom()
		}
		st = stateObjectCloseOrElement
	default:
		return 0, 0, errAt(p.data, p.pos, BadRoot)
	}

	for {
		var err error
		st, err = p.step(st)
		if err != nil {
			return 0, 0, err
		}
		if st == -1 {
			return p.rootTag, p.rootBase, nil
		}
	}
}

func (p *Parser) oom() error {
	return errAt(p.data, p.pos, OutOfMemory)
}

// skipWhitespace advances past whitespace starting at pos, returning
// ok=false if it reaches EOF.
func (p *Parser) skipWhitespace(pos int) (int, bool) {
	for {
		if pos >= len(p.data) {
			return pos, false
		}
		if !arena.IsWhitespace(p.data[pos]) {
			return pos, true
		}
		pos++
	}
}

// step executes one state transition, returning the next state, or
// state -1 with no error to signal a successful, completed parse.
func (p *Parser) step(st state) (state, error) {
	switch st {
	case stateArrayCloseOrElement:
		pos, ok := p.skipWhitespace(p.pos + 1)
		if !ok {
			return 0, errAt(p.data, len(p.data), UnexpectedEnd)
		}
		p.pos = pos
		if p.data[p.pos] == ']' {
			return statePopArray, nil
		}
		return stateNextElement, nil

	case stateObjectCloseOrElement:
		pos, ok := p.skipWhitespace(p.pos + 1)
		if !ok {
			return 0, errAt(p.data, len(p.data), UnexpectedEnd)
		}
		p.pos = pos
		if p.data[p.pos] == '}' {
			return statePopObject, nil
		}
		return stateObjectKey, nil

	case stateObjectKey:
		pos, ok := p.skipWhitespace(p.pos)
		if !ok {
			return 0, errAt(p.data, len(p.data), UnexpectedEnd)
		}
		p.pos = pos
		if p.data[p.pos] != '"' {
			return 0, errAt(p.data, p.pos, MissingObjectKey)
		}
		base, err := p.a.ReserveScratch(2)
		if err != nil {
			return 0, p.oom()
		}
		out := p.a.ScratchSlice(base, base+2)
		next, perr := parseString(p.data, p.pos, out)
		if perr != nil {
			return 0, perr
		}
		p.pos = next

		pos, ok = p.skipWhitespace(p.pos)
		if !ok || p.data[pos] != ':' {
			return 0, errAt(p.data, pos, ExpectedColon)
		}
		p.pos = pos + 1
		return stateNextElement, nil

	case stateNextElement:
		return p.nextElement()

	case stateStructureCloseOrComma:
		pos, ok := p.skipWhitespace(p.pos)
		if !ok {
			return 0, errAt(p.data, len(p.data), UnexpectedEnd)
		}
		p.pos = pos
		if p.currentStructureTag == arena.TagArray {
			if p.data[p.pos] == ']' {
				return statePopArray, nil
			}
			if p.data[p.pos] != ',' {
				return 0, errAt(p.data, p.pos, ExpectedComma)
			}
			p.pos++
			return stateNextElement, nil
		}
		if p.data[p.pos] == '}' {
			return statePopObject, nil
		}
		if p.data[p.pos] != ',' {
			return 0, errAt(p.data, p.pos, ExpectedComma)
		}
		p.pos++
		return stateObjectKey, nil

	case statePopObject:
		p.pos++
		basePtr := p.currentBase
		p.popElement = p.a.Scratch(basePtr)
		// Pop the frame before installing so the new record may reuse
		// its words; the reverse copy never overwrites an unread word.
		top := p.a.ScratchTop()
		p.a.ResetScratch(basePtr)
		newBase, err := installObject(p.a, p.data, basePtr+1, top, p.opts.KeySortThreshold)
		if err != nil {
			return 0, p.oom()
		}
		return p.pop(newBase)

	case statePopArray:
		p.pos++
		basePtr := p.currentBase
		p.popElement = p.a.Scratch(basePtr)
		top := p.a.ScratchTop()
		p.a.ResetScratch(basePtr)
		newBase, err := installArray(p.a, basePtr+1, top)
		if err != nil {
			return 0, p.oom()
		}
		return p.pop(newBase)
	}

	panic("ast: unreachable parser state")
}

// nextElement implements the next_element label: dispatch on the
// first byte of a value, installing literals/numbers/strings directly
// or descending into a new array/object frame.
func (p *Parser) nextElement() (state, error) {
	pos, ok := p.skipWhitespace(p.pos)
	if !ok {
		return 0, errAt(p.data, len(p.data), UnexpectedEnd)
	}
	p.pos = pos

	switch p.data[p.pos] {
	case 'n':
		next, err := p.matchLiteral("null", ExpectedNull)
		if err != nil {
			return 0, err
		}
		p.pos = next
		p.valueTagResult = arena.TagNull

	case 't':
		next, err := p.matchLiteral("true", ExpectedTrue)
		if err != nil {
			return 0, err
		}
		p.pos = next
		p.valueTagResult = arena.TagTrue

	case 'f':
		next, err := p.matchLiteral("false", ExpectedFalse)
		if err != nil {
			return 0, err
		}
		p.pos = next
		p.valueTagResult = arena.TagFalse

	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9', '-':
		next, tag, err := parseNumber(p.data, p.pos, p.a)
		if err != nil {
			return 0, err
		}
		p.pos = next
		p.valueTagResult = tag

	case '"':
		base, err := p.a.ReserveAST(2)
		if err != nil {
			return 0, p.oom()
		}
		out := p.a.AST(base)
		next, perr := parseString(p.data, p.pos, out)
		if perr != nil {
			return 0, perr
		}
		p.pos = next
		p.valueTagResult = arena.TagString

	case '[':
		previousBase := p.currentBase
		p.currentBase = p.a.ScratchTop()
		if err := p.a.PushScratch(arena.Make(p.currentStructureTag, arena.Word(previousBase))); err != nil {
			return 0, p.oom()
		}
		p.currentStructureTag = arena.TagArray
		return stateArrayCloseOrElement, nil

	case '{':
		previousBase := p.currentBase
		p.currentBase = p.a.ScratchTop()
		if err := p.a.PushScratch(arena.Make(p.currentStructureTag, arena.Word(previousBase))); err != nil {
			return 0, p.oom()
		}
		p.currentStructureTag = arena.TagObject
		return stateObjectCloseOrElement, nil

	case ',':
		return 0, errAt(p.data, p.pos, UnexpectedComma)

	default:
		return 0, errAt(p.data, p.pos, ExpectedValue)
	}

	if err := p.a.PushScratch(arena.Make(p.valueTagResult, arena.Word(p.a.WriteOffset()))); err != nil {
		return 0, p.oom()
	}
	return stateStructureCloseOrComma, nil
}

// pop implements the pop label shared by statePopArray/statePopObject:
// either the outermost frame closed (parse complete) or the enclosing
// frame resumes as though the just-closed structure were an ordinary
// value.
func (p *Parser) pop(newBase int) (state, error) {
	parent := arena.ValueOf(p.popElement)
	if parent == arena.RootMarker {
		p.rootTag = p.currentStructureTag
		p.rootBase = newBase
		pos, ok := p.skipWhitespace(p.pos)
		if ok {
			return 0, errAt(p.data, pos, ExpectedEndOfInput)
		}
		return -1, nil
	}

	p.currentBase = int(parent)
	p.valueTagResult = p.currentStructureTag
	p.currentStructureTag = arena.TagOf(p.popElement)

	if err := p.a.PushScratch(arena.Make(p.valueTagResult, arena.Word(p.a.Len()-newBase))); err != nil {
		return 0, p.oom()
	}
	return stateStructureCloseOrComma, nil
}

// matchLiteral matches the keyword lit starting at p.pos, returning
// the position just past it or the given error code on mismatch.
func (p *Parser) matchLiteral(lit string, mismatch ErrorCode) (int, error) {
	if len(p.data)-p.pos < len(lit) {
		return 0, errAt(p.data, len(p.data), UnexpectedEnd)
	}
	for i := 1; i < len(lit); i++ {
		if p.data[p.pos+i] != lit[i] {
			return 0, errAt(p.data, p.pos, mismatch)
		}
	}
	return p.pos + len(lit), nil
}
