/*
Package parser provides a lisp parser.

	expr    := '(' <expr>* ')' | '\'' <expr> | <string> | <atom> | <comment>
	string  := '"' <strcontent> '"'
	atom    := /[^[:space:]()"';]+/
	comment := ';' <any text up to a newline>

An atom matching /[+-]?[0-9]+/ is an integer, any other atom is a symbol.
String content uses Go escape sequences and may not contain a newline.

NewReader returns the streaming recursive descent reader used by runtimes.
ParseLVal parses a complete buffer in memory.
*/
package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/midnite8177/BasicLisp/lisp"
	"github.com/midnite8177/BasicLisp/parser/rdparser"
	parsec "github.com/prataprc/goparsec"
)

// NewReader returns a lisp.Reader which parses forms lazily from a stream.
func NewReader() lisp.Reader {
	return rdparser.NewReader()
}

const (
	nodeInvalid nodeType = iota
	nodeTerm
	nodeSExpr
	nodeQExpr
)

var nodeTypeStrings = []string{
	nodeInvalid: "INVALID",
	nodeTerm:    "TERM",
	nodeSExpr:   "SEXPR",
	nodeQExpr:   "QEXPR",
}

type nodeType uint

func (t nodeType) String() string {
	if int(t) >= len(nodeTypeStrings) {
		return "INVALID"
	}
	return nodeTypeStrings[t]
}

var intPattern = regexp.MustCompile(`^[+-]?[0-9]+$`)

// ParseLVal parses LVal values from text and returns them.  The number of
// bytes consumed is returned along with any error that was encountered in
// parsing.  Errors are *lisp.Error values of kind lisp.SyntaxError.
func ParseLVal(text []byte) ([]lisp.LVal, int, error) {
	b := &builder{}
	var v []lisp.LVal
	s := parsec.NewScanner(text)
	parser := b.newParsecParser()
	root, s := parser(s)
	for root != nil {
		if b.err != nil {
			return v, s.GetCursor(), b.err
		}
		if lval := getLVal(root); lval != nil {
			v = append(v, lval)
		}
		root, s = parser(s)
	}
	if b.err != nil {
		return v, s.GetCursor(), b.err
	}
	cursor := s.GetCursor()
	if rest := strings.TrimSpace(string(text[cursor:])); rest != "" {
		return v, cursor, lisp.Errorf(lisp.SyntaxError, "invalid syntax at byte %d: %s", cursor, excerpt(rest))
	}
	return v, cursor, nil
}

func excerpt(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if len(s) > 20 {
		return strconv.Quote(s[:20]) + "..."
	}
	return strconv.Quote(s)
}

// builder constructs lisp values from parse nodes and records the first
// invalid literal it encounters.
type builder struct {
	err error
}

func (b *builder) newParsecParser() parsec.Parser {
	openP := parsec.Atom("(", "OPENP")
	closeP := parsec.Atom(")", "CLOSEP")
	q := parsec.Atom("'", "QUOTE")
	comment := parsec.Token(`;[^\n]*`, "COMMENT")
	str := parsec.Token(`"(?:[^"\\\n]|\\.)*"`, "STRING")
	atom := parsec.Token(`[^\s()"';]+`, "ATOM")
	term := parsec.OrdChoice(b.astNode(nodeTerm), str, atom)
	var expr parsec.Parser // forward declaration allows for recursive parsing
	exprList := parsec.Kleene(nil, &expr)
	sexpr := parsec.And(b.astNode(nodeSExpr), openP, exprList, closeP)
	qexpr := parsec.And(b.astNode(nodeQExpr), q, &expr)
	expr = parsec.OrdChoice(nil, comment, term, sexpr, qexpr)
	return expr
}

func (b *builder) astNode(t nodeType) parsec.Nodify {
	return func(nodes []parsec.ParsecNode) parsec.ParsecNode {
		return b.newAST(t, nodes)
	}
}

func (b *builder) errorf(format string, v ...interface{}) parsec.ParsecNode {
	if b.err == nil {
		b.err = lisp.Errorf(lisp.SyntaxError, format, v...)
	}
	return nil
}

func (b *builder) newAST(typ nodeType, nodes []parsec.ParsecNode) parsec.ParsecNode {
	nodes = cleanParsecNodeList(nodes)
	switch typ {
	case nodeTerm:
		term, ok := nodes[0].(*parsec.Terminal)
		if !ok {
			return b.errorf("unexpected parse node: %T", nodes[0])
		}
		switch term.Name {
		case "STRING":
			s, err := strconv.Unquote(term.Value)
			if err != nil {
				return b.errorf("invalid string literal: %v", term.Value)
			}
			return lisp.LVal(lisp.Str(s))
		case "ATOM":
			if intPattern.MatchString(term.Value) {
				x, err := strconv.Atoi(term.Value)
				if err != nil {
					return b.errorf("integer literal overflows int: %v", term.Value)
				}
				return lisp.LVal(lisp.Integer(x))
			}
			return lisp.LVal(lisp.Sym(term.Value))
		}
		return b.errorf("unexpected terminal: %s", term.Name)
	case nodeSExpr:
		var cells []lisp.LVal
		// We don't want terminal parsec nodes '(' and ')'
		for _, c := range nodes {
			if lval, ok := c.(lisp.LVal); ok {
				cells = append(cells, lval)
			}
		}
		return lisp.LVal(lisp.NewList(cells...))
	case nodeQExpr:
		if len(nodes) < 2 {
			return b.errorf("quote is not followed by an expression")
		}
		c, ok := nodes[1].(lisp.LVal)
		if !ok {
			return b.errorf("quote is not followed by an expression")
		}
		return lisp.Quote(c)
	}
	return b.errorf("unknown node type: %s", typ)
}

func cleanParsecNodeList(lis []parsec.ParsecNode) []parsec.ParsecNode {
	var nodes []parsec.ParsecNode
	for _, n := range lis {
		switch node := n.(type) {
		case []parsec.ParsecNode:
			nodes = append(nodes, cleanParsecNodeList(node)...)
		case nil:
		default:
			nodes = append(nodes, node)
		}
	}
	return nodes
}

func getLVal(root parsec.ParsecNode) lisp.LVal {
	nodes := cleanParsecNodeList([]parsec.ParsecNode{root})
	if len(nodes) == 0 {
		// we can be here if there is only whitespace remaining
		return nil
	}
	lval, ok := nodes[0].(lisp.LVal)
	if !ok {
		// we can be here if the root is a comment
		return nil
	}
	return lval
}
