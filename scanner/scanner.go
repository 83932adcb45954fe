// Package scanner turns Contour source text into a token stream.
//
// The scanner is byte-oriented: each token records the byte offset of the
// whitespace run preceding it, its first byte, and one past its last byte,
// so downstream phases can recover exact source spans. The parser may
// return at most one token to the stream with PushToken.
package scanner

import (
	"github.com/npillmayer/schuko/tracing"

	"github.com/contour-lang/contour/source"
)

func tracer() tracing.Trace {
	return tracing.Select("contour.scanner")
}

var keywords = map[string]source.Kind{
	"if":   source.KIf,
	"else": source.KElse,
	"for":  source.KFor,
	"let":  source.KLet,
	"by":   source.KBy,
}

// Scanner yields the tokens of a single Script.
type Scanner struct {
	script    *source.Script
	pos       int
	pushed    source.Token
	hasPushed bool
}

// New creates a Scanner positioned at the start of script.
func New(script *source.Script) *Scanner {
	return &Scanner{script: script}
}

// Script returns the underlying source, for Location construction.
func (s *Scanner) Script() *source.Script { return s.script }

// PushToken returns one token to the stream. At most one token may be
// outstanding; a second push before the next GetToken panics.
func (s *Scanner) PushToken(tok source.Token) {
	if s.hasPushed {
		panic("scanner: push-back overflow")
	}
	s.pushed = tok
	s.hasPushed = true
}

func (s *Scanner) errorAt(first int, msg string) error {
	tok := source.Token{FirstWhite: first, First: first, Last: s.pos, Kind: source.KMissing}
	return source.At(s.script, tok, msg)
}

// GetToken returns the next token. At end of script it returns a KEnd
// token, repeatedly. Lexical errors carry the offending byte span.
func (s *Scanner) GetToken() (source.Token, error) {
	if s.hasPushed {
		s.hasPushed = false
		return s.pushed, nil
	}

	src := s.script.Text
	tok := source.Token{FirstWhite: s.pos}

	// Whitespace and // comments are skipped but remembered via FirstWhite.
	for s.pos < len(src) {
		c := src[s.pos]
		if c == ' ' || c == '\t' || c == '\r' || c == '\n' {
			s.pos++
			continue
		}
		if c == '/' && s.pos+1 < len(src) && src[s.pos+1] == '/' {
			for s.pos < len(src) && src[s.pos] != '\n' {
				s.pos++
			}
			continue
		}
		break
	}

	tok.First = s.pos
	if s.pos >= len(src) {
		tok.Last = s.pos
		tok.Kind = source.KEnd
		return tok, nil
	}

	c := src[s.pos]
	switch {
	case isDigit(c):
		s.scanNumeral()
		tok.Kind = source.KNum
	case isAlpha(c):
		for s.pos < len(src) && isAlphaNum(src[s.pos]) {
			s.pos++
		}
		if kw, ok := keywords[src[tok.First:s.pos]]; ok {
			tok.Kind = kw
		} else {
			tok.Kind = source.KIdent
		}
	case c == '"':
		s.pos++
		for {
			if s.pos >= len(src) {
				return tok, s.errorAt(tok.First, "unterminated string literal")
			}
			if src[s.pos] == '"' {
				s.pos++
				break
			}
			s.pos++
		}
		tok.Kind = source.KString
	default:
		kind, err := s.scanOperator()
		if err != nil {
			return tok, err
		}
		tok.Kind = kind
	}

	tok.Last = s.pos
	tracer().Debugf("token %s %q", tok.Kind, src[tok.First:tok.Last])
	return tok, nil
}

// scanNumeral consumes a decimal numeral with optional fraction and
// exponent. A '.' is part of the numeral only when a digit follows,
// so "1..10" scans as num, range, num.
func (s *Scanner) scanNumeral() {
	src := s.script.Text
	for s.pos < len(src) && isDigit(src[s.pos]) {
		s.pos++
	}
	if s.pos+1 < len(src) && src[s.pos] == '.' && isDigit(src[s.pos+1]) {
		s.pos++
		for s.pos < len(src) && isDigit(src[s.pos]) {
			s.pos++
		}
	}
	if s.pos < len(src) && (src[s.pos] == 'e' || src[s.pos] == 'E') {
		mark := s.pos
		s.pos++
		if s.pos < len(src) && (src[s.pos] == '+' || src[s.pos] == '-') {
			s.pos++
		}
		if s.pos < len(src) && isDigit(src[s.pos]) {
			for s.pos < len(src) && isDigit(src[s.pos]) {
				s.pos++
			}
		} else {
			s.pos = mark
		}
	}
}

func (s *Scanner) scanOperator() (source.Kind, error) {
	src := s.script.Text
	first := s.pos
	c := src[s.pos]
	s.pos++
	next := byte(0)
	if s.pos < len(src) {
		next = src[s.pos]
	}

	switch c {
	case '(':
		return source.KLParen, nil
	case ')':
		return source.KRParen, nil
	case '[':
		return source.KLBracket, nil
	case ']':
		return source.KRBracket, nil
	case '{':
		return source.KLBrace, nil
	case '}':
		return source.KRBrace, nil
	case ',':
		return source.KComma, nil
	case ';':
		return source.KSemicolon, nil
	case ':':
		return source.KColon, nil
	case '\'':
		return source.KApostrophe, nil
	case '^':
		return source.KPower, nil
	case '+':
		return source.KPlus, nil
	case '*':
		return source.KTimes, nil
	case '/':
		return source.KOver, nil
	case '-':
		if next == '>' {
			s.pos++
			return source.KRightArrow, nil
		}
		return source.KMinus, nil
	case '=':
		if next == '=' {
			s.pos++
			return source.KEqual, nil
		}
		return source.KEquate, nil
	case '!':
		if next == '=' {
			s.pos++
			return source.KNotEqual, nil
		}
		return source.KNot, nil
	case '<':
		switch next {
		case '=':
			s.pos++
			return source.KLessOrEqual, nil
		case '<':
			s.pos++
			return source.KLeftCall, nil
		}
		return source.KLess, nil
	case '>':
		switch next {
		case '=':
			s.pos++
			return source.KGreaterOrEqual, nil
		case '>':
			s.pos++
			return source.KRightCall, nil
		}
		return source.KGreater, nil
	case '.':
		if next == '.' {
			s.pos++
			if s.pos < len(src) {
				switch src[s.pos] {
				case '.':
					s.pos++
					return source.KEllipsis, nil
				case '<':
					s.pos++
					return source.KOpenRange, nil
				}
			}
			return source.KRange, nil
		}
		return source.KDot, nil
	case '&':
		if next == '&' {
			s.pos++
			return source.KAnd, nil
		}
	case '|':
		if next == '|' {
			s.pos++
			return source.KOr, nil
		}
	}
	return source.KMissing, s.errorAt(first, "unexpected character")
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isAlpha(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' }
func isAlphaNum(b byte) bool {
	return isAlpha(b) || isDigit(b)
}
