package query

// Lexer walks the argument part of an operation token one byte at a time.
type Lexer struct {
	input string
	pos   int
}

// NewLexer creates a new lexer
func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

// peekChar looks at the current character without advancing
func (l *Lexer) peekChar() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

// eof reports whether the input is exhausted
func (l *Lexer) eof() bool {
	return l.pos >= len(l.input)
}

// skipWhitespace skips whitespace characters
func (l *Lexer) skipWhitespace() {
	for !l.eof() && isSpace(l.peekChar()) {
		l.pos++
	}
}

// readUntil reads up to max characters that are not delim. It stops early at
// delim or at the end of input.
func (l *Lexer) readUntil(delim byte, max int) string {
	start := l.pos
	for !l.eof() && l.pos-start < max && l.peekChar() != delim {
		l.pos++
	}
	return l.input[start:l.pos]
}

// readWord skips leading whitespace and reads up to max non-whitespace
// characters.
func (l *Lexer) readWord(max int) string {
	l.skipWhitespace()
	start := l.pos
	for !l.eof() && l.pos-start < max && !isSpace(l.peekChar()) {
		l.pos++
	}
	return l.input[start:l.pos]
}

// expect consumes c if it is the current character.
func (l *Lexer) expect(c byte) bool {
	if l.peekChar() != c || l.eof() {
		return false
	}
	l.pos++
	return true
}

// rest returns the unread input.
func (l *Lexer) rest() string {
	return l.input[l.pos:]
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}
