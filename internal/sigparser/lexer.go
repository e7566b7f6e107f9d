package sigparser

import "strings"

type tokKind int

const (
	tokIdent tokKind = iota
	tokNumber
	tokPunct
	tokEOF
)

type token struct {
	kind tokKind
	val  string
	pos  int
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// lex splits a signature into identifiers, numbers and punctuation. "::",
// "..." and operator names like "operator==" are single tokens. Otherwise
// '>' is lexed alone so that ">>" closes two template argument lists.
func lex(s string) []token {
	var toks []token
	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case isIdentStart(c):
			j := i + 1
			for j < len(s) && (isIdentStart(s[j]) || isDigit(s[j])) {
				j++
			}
			if s[i:j] == "operator" {
				if k, sym := operatorSymbol(s, j); sym != "" {
					toks = append(toks, token{kind: tokIdent, val: "operator" + sym, pos: i})
					i = k
					continue
				}
			}
			toks = append(toks, token{kind: tokIdent, val: s[i:j], pos: i})
			i = j
		case isDigit(c):
			j := i + 1
			for j < len(s) && (isDigit(s[j]) || isIdentStart(s[j]) || s[j] == '.') {
				j++
			}
			toks = append(toks, token{kind: tokNumber, val: s[i:j], pos: i})
			i = j
		case strings.HasPrefix(s[i:], "::"):
			toks = append(toks, token{kind: tokPunct, val: "::", pos: i})
			i += 2
		case strings.HasPrefix(s[i:], "..."):
			toks = append(toks, token{kind: tokPunct, val: "...", pos: i})
			i += 3
		default:
			toks = append(toks, token{kind: tokPunct, val: string(c), pos: i})
			i++
		}
	}
	return append(toks, token{kind: tokEOF, pos: len(s)})
}

// operatorSymbol reads the symbol of an operator-function-id starting at i,
// e.g. "==", "<<=", "()" or "[]". Word forms such as "operator new" return "".
func operatorSymbol(s string, i int) (end int, sym string) {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	for _, pair := range []string{"()", "[]"} {
		if strings.HasPrefix(s[i:], pair) {
			return i + len(pair), pair
		}
	}
	j := i
	for j < len(s) && strings.IndexByte("+-*/%^&|~!=<>,", s[j]) >= 0 {
		j++
	}
	return j, s[i:j]
}

// join renders tokens back into normalized source text.
func join(toks []token) string {
	var sb strings.Builder
	for i, t := range toks {
		if i > 0 && needSpace(toks[i-1].val, t.val) {
			sb.WriteByte(' ')
		}
		sb.WriteString(t.val)
	}
	return sb.String()
}

func needSpace(prev, cur string) bool {
	switch prev {
	case "::", "<", "(", "[":
		return false
	}
	switch cur {
	case "::", "<", ">", ",", ")", "(", "]", "[", "...":
		return false
	}
	return true
}
