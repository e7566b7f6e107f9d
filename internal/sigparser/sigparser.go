// Package sigparser parses the C++-style signature fragments attached to
// documentation entries into a structured form.
package sigparser

import (
	"fmt"
	"strings"
)

// Kind classifies a parsed signature.
type Kind string

const (
	KindClass        Kind = "class"
	KindStruct       Kind = "struct"
	KindConcept      Kind = "concept"
	KindEnum         Kind = "enum"
	KindFunction     Kind = "function"
	KindMetafunction Kind = "metafunction"
	KindVariable     Kind = "variable"
)

// TParam is one template parameter, e.g. "typename TValue".
type TParam struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// Param is one function parameter. Name may be empty.
type Param struct {
	Type string `json:"type"`
	Name string `json:"name,omitempty"`
}

// Entry is a parsed signature.
type Entry struct {
	Kind Kind   `json:"kind"`
	Name string `json:"name"`

	// ReturnType is the function return type, the variable type, or the
	// result type of a metafunction. Empty for constructors.
	ReturnType string `json:"returnType,omitempty"`
	// ReturnName is the nested name a metafunction yields, e.g. "Type".
	ReturnName string `json:"returnName,omitempty"`

	IsTemplate bool     `json:"isTemplate,omitempty"`
	TParams    []TParam `json:"tparams,omitempty"`
	// TArgs are the template arguments written after the name.
	TArgs     []string `json:"targs,omitempty"`
	Params    []Param  `json:"params,omitempty"`
	Qualifier string   `json:"qualifier,omitempty"`
}

// String renders the entry as normalized signature text.
func (e *Entry) String() string {
	var sb strings.Builder
	if e.IsTemplate {
		sb.WriteString("template <")
		for i, tp := range e.TParams {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(tp.Type + " " + tp.Name)
		}
		sb.WriteString(">\n")
	}
	name := e.Name
	if len(e.TArgs) > 0 {
		name += "<" + strings.Join(e.TArgs, ", ") + ">"
	}
	switch e.Kind {
	case KindClass, KindStruct, KindConcept, KindEnum:
		sb.WriteString(string(e.Kind) + " " + name)
	case KindFunction:
		if e.ReturnType != "" {
			sb.WriteString(e.ReturnType + " ")
		}
		sb.WriteString(name + "(")
		for i, p := range e.Params {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(p.Type)
			if p.Name != "" {
				sb.WriteString(" " + p.Name)
			}
		}
		sb.WriteString(")")
		if e.Qualifier != "" {
			sb.WriteString(" " + e.Qualifier)
		}
	case KindMetafunction:
		if e.ReturnType != "" {
			sb.WriteString(e.ReturnType + " ")
		}
		sb.WriteString(name + "::" + e.ReturnName)
	case KindVariable:
		sb.WriteString(e.ReturnType + " " + name)
	}
	sb.WriteString(";")
	return sb.String()
}

// ParseError reports why a signature could not be parsed.
type ParseError struct {
	Text string
	Pos  int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse signature %q at offset %d: %s", e.Text, e.Pos, e.Msg)
}

// Parse parses one signature.
func Parse(text string) (*Entry, error) {
	p := &parser{text: text, toks: lex(text)}
	return p.parse()
}

// Parser is the value form of Parse, for callers that take a dependency.
type Parser struct{}

// Parse parses one signature.
func (Parser) Parse(text string) (*Entry, error) { return Parse(text) }

type parser struct {
	text string
	toks []token
	i    int
}

func (p *parser) peek() token { return p.toks[p.i] }

func (p *parser) next() token {
	t := p.toks[p.i]
	if t.kind != tokEOF {
		p.i++
	}
	return t
}

func (p *parser) errorf(t token, format string, args ...any) error {
	return &ParseError{Text: p.text, Pos: t.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) expect(val string) error {
	t := p.next()
	if t.val != val || t.kind == tokEOF {
		return p.errorf(t, "expected %q, found %s", val, describe(t))
	}
	return nil
}

func describe(t token) string {
	if t.kind == tokEOF {
		return "end of input"
	}
	return fmt.Sprintf("%q", t.val)
}

func (p *parser) parse() (*Entry, error) {
	if p.peek().kind == tokEOF {
		return nil, p.errorf(p.peek(), "empty signature")
	}
	e := &Entry{}
	if p.peek().val == "template" {
		p.next()
		tps, err := p.templateHeader()
		if err != nil {
			return nil, err
		}
		e.IsTemplate = true
		e.TParams = tps
	}

	var err error
	switch p.peek().val {
	case "class", "struct", "concept", "enum":
		err = p.typeDecl(e)
	default:
		err = p.declaration(e)
	}
	if err != nil {
		return nil, err
	}

	if p.peek().val == ";" {
		p.next()
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, p.errorf(t, "unexpected %s after declaration", describe(t))
	}
	return e, nil
}

// templateHeader parses "<typename T, int N = 3>" after the template keyword.
func (p *parser) templateHeader() ([]TParam, error) {
	if err := p.expect("<"); err != nil {
		return nil, err
	}
	groups, err := p.balanced(">")
	if err != nil {
		return nil, err
	}
	var tps []TParam
	for _, g := range groups {
		g = cutDefault(g)
		if len(g) == 0 {
			return nil, p.errorf(p.peek(), "empty template parameter")
		}
		last := g[len(g)-1]
		if len(g) < 2 || last.kind != tokIdent {
			return nil, p.errorf(last, "template parameter needs a type and a name")
		}
		tps = append(tps, TParam{Type: join(g[:len(g)-1]), Name: last.val})
	}
	return tps, nil
}

// balanced consumes tokens up to the closing delimiter and returns the
// comma-separated groups at nesting depth zero. The opening delimiter must
// already be consumed.
func (p *parser) balanced(closer string) ([][]token, error) {
	var (
		groups [][]token
		cur    []token
		depth  int
	)
	start := p.peek()
	for {
		t := p.next()
		switch {
		case t.kind == tokEOF:
			return nil, p.errorf(start, "unterminated list, expected %q", closer)
		case depth == 0 && t.val == closer:
			if len(cur) > 0 || len(groups) > 0 {
				groups = append(groups, cur)
			}
			return groups, nil
		case depth == 0 && t.val == ",":
			groups = append(groups, cur)
			cur = nil
			continue
		case t.val == "<" || t.val == "(" || t.val == "[":
			depth++
		case t.val == ">" || t.val == ")" || t.val == "]":
			depth--
		}
		cur = append(cur, t)
	}
}

func cutDefault(g []token) []token {
	for i, t := range g {
		if t.val == "=" {
			return g[:i]
		}
	}
	return g
}

// qualifiedName parses "A::B::C".
func (p *parser) qualifiedName() (string, error) {
	var parts []string
	for {
		t := p.next()
		if t.kind != tokIdent {
			return "", p.errorf(t, "expected name, found %s", describe(t))
		}
		parts = append(parts, t.val)
		if p.peek().val != "::" {
			return strings.Join(parts, "::"), nil
		}
		p.next()
	}
}

func (p *parser) typeDecl(e *Entry) error {
	kw := p.next().val
	if kw == "enum" && (p.peek().val == "class" || p.peek().val == "struct") {
		p.next()
	}
	name, err := p.qualifiedName()
	if err != nil {
		return err
	}
	e.Kind = Kind(kw)
	e.Name = name
	if p.peek().val == "<" {
		p.next()
		args, err := p.balanced(">")
		if err != nil {
			return err
		}
		for _, a := range args {
			e.TArgs = append(e.TArgs, join(a))
		}
	}
	return nil
}

// declaration handles functions, metafunctions and variables. It reads the
// tokens up to '(' or the end and decides based on their shape.
func (p *parser) declaration(e *Entry) error {
	var head []token
	depth := 0
	for {
		t := p.peek()
		if t.kind == tokEOF || (depth == 0 && (t.val == "(" || t.val == ";")) {
			break
		}
		switch t.val {
		case "<":
			depth++
		case ">":
			depth--
		}
		head = append(head, p.next())
	}
	if len(head) == 0 {
		return p.errorf(p.peek(), "expected declaration, found %s", describe(p.peek()))
	}
	if p.peek().val == "(" {
		return p.function(e, head)
	}
	return p.valueDecl(e, head)
}

func (p *parser) function(e *Entry, head []token) error {
	nameAt := nameStart(head)
	if nameAt < 0 {
		return p.errorf(head[len(head)-1], "expected function name")
	}
	e.Kind = KindFunction
	e.ReturnType = join(head[:nameAt])
	e.Name = join(head[nameAt:])

	p.next()
	groups, err := p.balanced(")")
	if err != nil {
		return err
	}
	for _, g := range groups {
		g = cutDefault(g)
		if len(g) == 0 {
			return p.errorf(p.peek(), "empty parameter")
		}
		if len(g) == 1 && g[0].val == "void" && len(groups) == 1 {
			break
		}
		last := g[len(g)-1]
		if len(g) > 1 && last.kind == tokIdent && g[len(g)-2].val != "::" && !isTypeKeyword(last.val) {
			e.Params = append(e.Params, Param{Type: join(g[:len(g)-1]), Name: last.val})
		} else {
			e.Params = append(e.Params, Param{Type: join(g)})
		}
	}

	var quals []string
	for p.peek().kind == tokIdent {
		switch v := p.peek().val; v {
		case "const", "volatile", "noexcept", "override", "final":
			quals = append(quals, v)
			p.next()
		default:
			return p.errorf(p.peek(), "unexpected %s after parameter list", describe(p.peek()))
		}
	}
	e.Qualifier = strings.Join(quals, " ")
	return nil
}

// nameStart returns the index of the first token of the trailing qualified
// name in head, including an "operator" form.
func nameStart(head []token) int {
	for i, t := range head {
		if t.val == "operator" {
			return qualifiedStart(head, i)
		}
	}
	last := len(head) - 1
	if head[last].kind != tokIdent {
		return -1
	}
	return qualifiedStart(head, last)
}

func qualifiedStart(head []token, i int) int {
	for i >= 2 && head[i-1].val == "::" && head[i-2].kind == tokIdent {
		i -= 2
	}
	if i >= 1 && head[i-1].val == "~" {
		i--
	}
	return i
}

func isTypeKeyword(s string) bool {
	switch s {
	case "const", "volatile", "int", "unsigned", "signed", "char", "bool",
		"float", "double", "long", "short", "void", "auto":
		return true
	}
	return false
}

// valueDecl handles "Name<T>::Type", "TResult Name<T>::Type" and "Type name".
func (p *parser) valueDecl(e *Entry, head []token) error {
	// Metafunction: a template-id followed by "::" and a trailing name.
	if n := len(head); n >= 3 && head[n-1].kind == tokIdent && head[n-2].val == "::" && head[n-3].val == ">" {
		closeAt := n - 3
		depth := 0
		openAt := -1
		for i := closeAt; i >= 0; i-- {
			switch head[i].val {
			case ">":
				depth++
			case "<":
				depth--
			}
			if depth == 0 {
				openAt = i
				break
			}
		}
		if openAt < 1 || head[openAt-1].kind != tokIdent {
			return p.errorf(head[closeAt], "malformed metafunction")
		}
		nameAt := qualifiedStart(head, openAt-1)
		sub := &parser{text: p.text, toks: append(append([]token{}, head[openAt+1:closeAt+1]...), token{kind: tokEOF, pos: head[closeAt].pos})}
		args, err := sub.balanced(">")
		if err != nil {
			return err
		}
		e.Kind = KindMetafunction
		e.ReturnType = join(stripTypename(head[:nameAt]))
		e.Name = join(head[nameAt:openAt])
		for _, a := range args {
			e.TArgs = append(e.TArgs, join(a))
		}
		e.ReturnName = head[n-1].val
		return nil
	}

	last := head[len(head)-1]
	if len(head) < 2 || last.kind != tokIdent {
		return p.errorf(last, "expected a type followed by a name")
	}
	nameAt := qualifiedStart(head, len(head)-1)
	if nameAt == 0 {
		return p.errorf(head[0], "missing type for %q", join(head))
	}
	e.Kind = KindVariable
	e.ReturnType = join(head[:nameAt])
	e.Name = join(head[nameAt:])
	return nil
}

func stripTypename(toks []token) []token {
	if len(toks) > 0 && toks[0].val == "typename" {
		return toks[1:]
	}
	return toks
}
