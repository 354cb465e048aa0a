package parse

import (
	"fmt"
	"strconv"

	"github.com/globalaiplatform/go-langdiff/debug"
	"github.com/globalaiplatform/go-langdiff/ir"
	"github.com/globalaiplatform/go-langdiff/node"
)

type state int

const (
	stateValue      state = iota // expecting the start of a value
	stateKeyOrEnd                // inside an object, expecting a key or '}'
	stateKey                     // inside an object, expecting a key
	stateColon                   // after a key, expecting ':'
	stateAfterValue              // after a closed value
	stateString                  // inside a string (key or value)
	stateLiteral                 // inside a number/true/false/null token
)

// Parser is a scoped parsing session over one typed node tree. Feed
// fragments with Push; Close forces completion of the whole tree, so
// every pending node resolves even if the source stops short. A parse
// or schema-mismatch failure poisons the session: the node tree is
// invalid and must be discarded.
type Parser struct {
	root node.Node

	raw   *ir.Node   // document observed so far
	stack []*ir.Node // open containers

	st         state
	afterComma bool
	inKey      bool
	key        string
	keyBuf     []byte
	str        *ir.Node // open string value, already attached
	esc        []byte   // pending escape bytes, starting with '\'
	pendSurr   rune     // pending high surrogate from \uXXXX
	lit        []byte   // pending number/keyword bytes

	offset int
	dirty  bool
	failed error
	closed bool
}

func NewParser(root node.Node) *Parser {
	return &Parser{root: root}
}

// Err returns the error that poisoned the session, if any.
func (p *Parser) Err() error { return p.failed }

// Push feeds one raw text fragment. It fails fast and synchronously on
// malformed input or on a value shape contradicting the declared
// schema; both abort the session.
func (p *Parser) Push(fragment string) error {
	if p.failed != nil {
		return fmt.Errorf("%w: %w", ErrSessionFailed, p.failed)
	}
	if p.closed {
		return ErrSessionClosed
	}
	for i := 0; i < len(fragment); i++ {
		if err := p.step(fragment[i]); err != nil {
			return p.fail(err)
		}
		p.offset++
	}
	return p.update()
}

// Close ends the session, force-completing the root node. Idempotent.
func (p *Parser) Close() error {
	if p.failed != nil {
		return fmt.Errorf("%w: %w", ErrSessionFailed, p.failed)
	}
	if p.closed {
		return nil
	}
	p.closed = true
	if p.st == stateLiteral {
		// a trailing number is taken as-is; a token that is only a
		// prefix of a keyword cannot resolve and is dropped
		if err := p.finishLiteral(); err != nil {
			p.lit = nil
		}
	}
	if err := p.update(); err != nil {
		return err
	}
	if err := p.root.Complete(); err != nil {
		return p.fail(err)
	}
	return nil
}

func (p *Parser) update() error {
	if !p.dirty || p.raw == nil {
		return nil
	}
	p.dirty = false
	if err := p.root.Update(p.raw); err != nil {
		return p.fail(err)
	}
	return nil
}

func (p *Parser) fail(err error) error {
	if p.failed == nil {
		p.failed = err
	}
	if debug.Parse() {
		debug.Logf("parse: session failed: %v\n", err)
	}
	return err
}

func (p *Parser) errf(format string, args ...any) error {
	return &Error{Offset: p.offset, Msg: fmt.Sprintf(format, args...)}
}

func (p *Parser) step(b byte) error {
	switch p.st {
	case stateString:
		return p.stepString(b)
	case stateLiteral:
		if isLiteralByte(b) {
			p.lit = append(p.lit, b)
			return nil
		}
		if err := p.finishLiteral(); err != nil {
			return err
		}
		// reprocess b in the state following the literal
	}
	return p.dispatch(b)
}

func (p *Parser) dispatch(b byte) error {
	if isSpace(b) {
		return nil
	}
	switch p.st {
	case stateValue:
		return p.beginValue(b)
	case stateKeyOrEnd:
		switch b {
		case '"':
			p.beginKey()
		case '}':
			p.pop()
		default:
			return p.errf("expected object key or '}', got %q", b)
		}
	case stateKey:
		if b != '"' {
			return p.errf("expected object key, got %q", b)
		}
		p.beginKey()
	case stateColon:
		if b != ':' {
			return p.errf("expected ':', got %q", b)
		}
		p.st = stateValue
	case stateAfterValue:
		return p.afterValue(b)
	}
	return nil
}

func (p *Parser) beginValue(b byte) error {
	switch {
	case b == '{':
		obj := ir.Object()
		if err := p.attach(obj); err != nil {
			return err
		}
		p.stack = append(p.stack, obj)
		p.st = stateKeyOrEnd
		p.afterComma = false
	case b == '[':
		arr := ir.Array()
		if err := p.attach(arr); err != nil {
			return err
		}
		p.stack = append(p.stack, arr)
		p.st = stateValue
		p.afterComma = false
	case b == '"':
		s := ir.FromString("")
		if err := p.attach(s); err != nil {
			return err
		}
		p.str = s
		p.inKey = false
		p.st = stateString
		p.afterComma = false
	case b == ']':
		// empty array; a value after ',' cannot be elided
		if top := p.top(); top != nil && top.Type == ir.ArrayType && !p.afterComma {
			p.pop()
			return nil
		}
		return p.errf("unexpected ']'")
	case b == '-' || (b >= '0' && b <= '9') || b == 't' || b == 'f' || b == 'n':
		p.lit = append(p.lit[:0], b)
		p.st = stateLiteral
		p.afterComma = false
	default:
		return p.errf("unexpected %q at start of value", b)
	}
	return nil
}

func (p *Parser) afterValue(b byte) error {
	top := p.top()
	if top == nil {
		return p.errf("trailing data after top-level value")
	}
	if top.Type == ir.ObjectType {
		switch b {
		case ',':
			p.st = stateKey
		case '}':
			p.pop()
		default:
			return p.errf("expected ',' or '}', got %q", b)
		}
		return nil
	}
	switch b {
	case ',':
		p.st = stateValue
		p.afterComma = true
	case ']':
		p.pop()
	default:
		return p.errf("expected ',' or ']', got %q", b)
	}
	return nil
}

func (p *Parser) top() *ir.Node {
	if len(p.stack) == 0 {
		return nil
	}
	return p.stack[len(p.stack)-1]
}

func (p *Parser) pop() {
	p.stack = p.stack[:len(p.stack)-1]
	p.st = stateAfterValue
}

func (p *Parser) beginKey() {
	p.inKey = true
	p.keyBuf = p.keyBuf[:0]
	p.st = stateString
}

// attach places a newly started value into the document: the root
// slot, the pending object field, or the end of the open array.
func (p *Parser) attach(n *ir.Node) error {
	top := p.top()
	if top == nil {
		if p.raw != nil {
			return p.errf("multiple top-level values")
		}
		p.raw = n
	} else if top.Type == ir.ObjectType {
		top.Set(p.key, n)
	} else {
		top.Append(n)
	}
	if debug.Parse() {
		debug.Logf("parse: attach %s at %s\n", n.Type, n.Path().Pointer())
	}
	p.dirty = true
	return nil
}

func (p *Parser) finishLiteral() error {
	s := string(p.lit)
	p.lit = p.lit[:0]
	p.st = stateAfterValue
	var n *ir.Node
	switch s {
	case "true":
		n = ir.FromBool(true)
	case "false":
		n = ir.FromBool(false)
	case "null":
		n = ir.Null()
	default:
		// strconv alone is too lenient here: it accepts 012, 12.,
		// nan and inf, none of which are values
		if !isJSONNumber(s) {
			return p.errf("invalid literal %q", s)
		}
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			n = ir.FromInt(i)
		} else if f, err := strconv.ParseFloat(s, 64); err == nil {
			n = ir.FromFloat(f)
		} else {
			return p.errf("invalid literal %q", s)
		}
	}
	return p.attach(n)
}

// isJSONNumber reports whether s matches the JSON number grammar:
// -?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?
func isJSONNumber(s string) bool {
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}
	switch {
	case i < len(s) && s[i] == '0':
		i++
	case i < len(s) && s[i] >= '1' && s[i] <= '9':
		for i < len(s) && isDigit(s[i]) {
			i++
		}
	default:
		return false
	}
	if i < len(s) && s[i] == '.' {
		i++
		if i >= len(s) || !isDigit(s[i]) {
			return false
		}
		for i < len(s) && isDigit(s[i]) {
			i++
		}
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		if i >= len(s) || !isDigit(s[i]) {
			return false
		}
		for i < len(s) && isDigit(s[i]) {
			i++
		}
	}
	return i == len(s)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func isLiteralByte(b byte) bool {
	switch {
	case b >= '0' && b <= '9':
		return true
	case b >= 'a' && b <= 'z':
		return true
	case b == '-' || b == '+' || b == '.':
		return true
	case b == 'E':
		return true
	}
	return false
}
