package parse

import (
	"strconv"
	"unicode/utf16"
	"unicode/utf8"
)

// String lexing. Content bytes stream directly into the attached
// string node (so Text chunks surface per fragment); escape sequences
// are held back until complete, since a fragment boundary may fall
// anywhere inside them, including between the halves of a surrogate
// pair.

func (p *Parser) stepString(b byte) error {
	if len(p.esc) > 0 {
		p.esc = append(p.esc, b)
		return p.maybeFinishEscape()
	}
	switch {
	case b == '\\':
		p.esc = append(p.esc[:0], '\\')
		return nil
	case b == '"':
		return p.endString()
	case b < 0x20:
		return p.errf("control character 0x%02x in string", b)
	default:
		p.flushSurrogate()
		p.sinkByte(b)
		return nil
	}
}

func (p *Parser) endString() error {
	p.flushSurrogate()
	if p.inKey {
		p.key = string(p.keyBuf)
		p.inKey = false
		p.st = stateColon
		return nil
	}
	p.str = nil
	p.st = stateAfterValue
	return nil
}

func (p *Parser) maybeFinishEscape() error {
	if p.esc[1] == 'u' {
		if len(p.esc) < 6 {
			return nil
		}
		return p.finishUnicodeEscape()
	}
	defer func() { p.esc = p.esc[:0] }()
	var c byte
	switch p.esc[1] {
	case '"', '\\', '/':
		c = p.esc[1]
	case 'b':
		c = '\b'
	case 'f':
		c = '\f'
	case 'n':
		c = '\n'
	case 'r':
		c = '\r'
	case 't':
		c = '\t'
	default:
		return p.errf("invalid escape \\%c", p.esc[1])
	}
	p.flushSurrogate()
	p.sinkByte(c)
	return nil
}

func (p *Parser) finishUnicodeEscape() error {
	v, err := strconv.ParseUint(string(p.esc[2:6]), 16, 32)
	p.esc = p.esc[:0]
	if err != nil {
		return p.errf("invalid \\u escape")
	}
	r := rune(v)
	if p.pendSurr != 0 {
		if utf16.IsSurrogate(r) {
			if dec := utf16.DecodeRune(p.pendSurr, r); dec != utf8.RuneError {
				p.pendSurr = 0
				p.sinkRune(dec)
				return nil
			}
		}
		p.flushSurrogate()
	}
	if utf16.IsSurrogate(r) {
		if utf16.DecodeRune(r, 0xDC00) != utf8.RuneError {
			// high half: wait for its pair
			p.pendSurr = r
			return nil
		}
		r = utf8.RuneError // lone low surrogate
	}
	p.sinkRune(r)
	return nil
}

func (p *Parser) flushSurrogate() {
	if p.pendSurr == 0 {
		return
	}
	p.pendSurr = 0
	p.sinkRune(utf8.RuneError)
}

func (p *Parser) sinkByte(b byte) {
	if p.inKey {
		p.keyBuf = append(p.keyBuf, b)
		return
	}
	p.str.String += string([]byte{b})
	p.dirty = true
}

func (p *Parser) sinkRune(r rune) {
	if p.inKey {
		p.keyBuf = utf8.AppendRune(p.keyBuf, r)
		return
	}
	p.str.String += string(r)
	p.dirty = true
}
