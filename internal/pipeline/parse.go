package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

//nolint:govet // Participle struct tags are DSL, not reflect tags
type pipelineAST struct {
	Elements []*elementAST `@@ ( "," @@ )*`
}

//nolint:govet // Participle struct tags are DSL, not reflect tags
type elementAST struct {
	Pos    lexer.Position
	Name   string     `@Ident`
	Nested *nestedAST `@@?`
}

//nolint:govet // Participle struct tags are DSL, not reflect tags
type nestedAST struct {
	Open     bool          `@"("`
	Elements []*elementAST `( @@ ( "," @@ )* )? ")"`
}

//nolint:govet // Participle DSL uses unkeyed fields
var pipelineLexer = lexer.MustSimple([]lexer.SimpleRule{
	{"Whitespace", `[ \t\r\n]+`},
	{"Ident", `[A-Za-z_][A-Za-z0-9_.\-]*`},
	{"Punct", `[(),]`},
})

var pipelineParser = participle.MustBuild[pipelineAST](
	participle.Lexer(pipelineLexer),
	participle.Elide("Whitespace"),
)

// Element is one node of a parsed pipeline description.
type Element struct {
	Name     string
	Nested   bool // written with parentheses, even if empty
	Children []Element
	Column   int
}

// Description is a parsed pipeline text.
type Description struct {
	Elements []Element
}

// String renders the description in canonical form: no whitespace,
// adaptors always parenthesized.
func (d *Description) String() string {
	var b strings.Builder
	writeElements(&b, d.Elements)
	return b.String()
}

func writeElements(b *strings.Builder, elems []Element) {
	for i, e := range elems {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(e.Name)
		if e.Nested {
			b.WriteByte('(')
			writeElements(b, e.Children)
			b.WriteByte(')')
		}
	}
}

// ParseError reports malformed pipeline text.
type ParseError struct {
	Text    string
	Column  int
	Message string
}

func (e *ParseError) Error() string {
	if e.Column > 0 {
		return fmt.Sprintf("%s: invalid pipeline %q at column %d: %s", ErrCodeParse, e.Text, e.Column, e.Message)
	}
	return fmt.Sprintf("%s: invalid pipeline %q: %s", ErrCodeParse, e.Text, e.Message)
}

// Parse parses pipeline text into a Description.
func Parse(text string) (*Description, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &ParseError{Text: text, Message: "empty pipeline"}
	}

	ast, err := pipelineParser.ParseString("", text)
	if err != nil {
		perr := &ParseError{Text: text, Message: err.Error()}
		var pe participle.Error
		if errors.As(err, &pe) {
			perr.Column = pe.Position().Column
			perr.Message = pe.Message()
		}
		return nil, perr
	}

	return &Description{Elements: convertElements(ast.Elements)}, nil
}

func convertElements(in []*elementAST) []Element {
	out := make([]Element, 0, len(in))
	for _, e := range in {
		el := Element{Name: e.Name, Column: e.Pos.Column}
		if e.Nested != nil {
			el.Nested = true
			el.Children = convertElements(e.Nested.Elements)
		}
		out = append(out, el)
	}
	return out
}
