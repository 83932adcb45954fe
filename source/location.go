package source

import (
	"fmt"
	"strings"
)

// Location pins a token (or a synthetic phrase span) to its Script.
type Location struct {
	Script *Script
	Token  Token
}

// Lineno is the 1-based line number of the location's first byte.
func (l Location) Lineno() int {
	lineno := 1
	for i := 0; i < l.Token.First && i < len(l.Script.Text); i++ {
		if l.Script.Text[i] == '\n' {
			lineno++
		}
	}
	return lineno
}

// Range returns the exact byte span of the location within the script.
func (l Location) Range() string {
	return l.Script.Text[l.Token.First:l.Token.Last]
}

// StartingAt widens the location so it begins at tok, producing a
// synthetic phrase token. A missing tok leaves the location unchanged.
func (l Location) StartingAt(tok Token) Location {
	loc := l
	if tok.Kind != KMissing {
		loc.Token.FirstWhite = tok.FirstWhite
		loc.Token.First = tok.First
		loc.Token.Kind = KPhrase
	}
	return loc
}

// EndingAt widens the location so it ends at tok.
func (l Location) EndingAt(tok Token) Location {
	loc := l
	if tok.Kind != KMissing {
		loc.Token.Last = tok.Last
		loc.Token.Kind = KPhrase
	}
	return loc
}

// To spans from the start of this location to the end of another.
func (l Location) To(end Location) Location {
	return l.EndingAt(end.Token)
}

func (l Location) String() string {
	var b strings.Builder
	if l.Script.Name != "" {
		fmt.Fprintf(&b, "file %s, ", l.Script.Name)
	}
	fmt.Fprintf(&b, "line %d", l.Lineno())
	switch l.Token.Kind {
	case KEnd:
		b.WriteString(", at end of script")
	default:
		fmt.Fprintf(&b, ", token %q", l.Range())
	}
	return b.String()
}
