// Package source owns script text and maps byte ranges back to
// file/line/lexeme coordinates for diagnostics. Everything downstream
// (scanner, parser, analyzer) points into a Script instead of copying
// text around.
package source

// Script is an immutable named piece of Contour source text.
// Tokens and Locations reference it by pointer and never mutate it.
type Script struct {
	Name string // display name, usually a file path; may be empty for REPL input
	Text string
}

// NewScript wraps source text for scanning.
func NewScript(name, text string) *Script {
	return &Script{Name: name, Text: text}
}
