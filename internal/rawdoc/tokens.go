package rawdoc

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// TokenType classifies a lexed piece of annotation text.
type TokenType string

const (
	TokenSpace     TokenType = "SPACE"
	TokenBreak     TokenType = "BREAK"
	TokenEmptyLine TokenType = "EMPTY_LINE"
	TokenHTMLTag   TokenType = "HTML_TAG"
	TokenWord      TokenType = "WORD"
	TokenPunct     TokenType = "PUNCT"
)

// IsWhitespace reports whether t belongs to the whitespace set.
func (t TokenType) IsWhitespace() bool {
	return t == TokenSpace || t == TokenBreak || t == TokenEmptyLine
}

// Token is a single lexed unit with its literal value.
type Token struct {
	Type TokenType `json:"type"`
	Val  string    `json:"val"`
}

// Text is a raw text block: an ordered token stream.
type Text struct {
	Tokens []Token `json:"tokens"`
}

// String returns the literal text of the block.
func (t Text) String() string {
	var sb strings.Builder
	for _, tok := range t.Tokens {
		sb.WriteString(tok.Val)
	}
	return sb.String()
}

// Empty reports whether the block has no tokens.
func (t Text) Empty() bool {
	return len(t.Tokens) == 0
}

var (
	tagRe       = regexp.MustCompile(`^<(/)?\s*[_a-zA-Z][_a-zA-Z0-9]*(\s+[_a-zA-Z][_a-zA-Z0-9]*="[^"]*")*\s*/?>`)
	emptyLineRe = regexp.MustCompile(`^\n([ \t]*\n)+`)
	spaceRe     = regexp.MustCompile(`^[ \t\r]+`)
	wordRe      = regexp.MustCompile(`^[A-Za-z0-9_]+`)
)

// Tokenize lexes annotation text into a Text block.
func Tokenize(s string) Text {
	var toks []Token
	for len(s) > 0 {
		var tok Token
		switch {
		case s[0] == '<' && tagRe.MatchString(s):
			tok = Token{Type: TokenHTMLTag, Val: tagRe.FindString(s)}
		case emptyLineRe.MatchString(s):
			tok = Token{Type: TokenEmptyLine, Val: emptyLineRe.FindString(s)}
		case s[0] == '\n':
			tok = Token{Type: TokenBreak, Val: "\n"}
		case spaceRe.MatchString(s):
			tok = Token{Type: TokenSpace, Val: spaceRe.FindString(s)}
		case wordRe.MatchString(s):
			tok = Token{Type: TokenWord, Val: wordRe.FindString(s)}
		default:
			_, n := utf8.DecodeRuneInString(s)
			tok = Token{Type: TokenPunct, Val: s[:n]}
		}
		toks = append(toks, tok)
		s = s[len(tok.Val):]
	}
	return Text{Tokens: toks}
}
