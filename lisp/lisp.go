package lisp

import (
	"bytes"
	"strconv"
)

// LValType is the type of an LVal
type LValType uint

// Possible LValType values
const (
	LInvalid LValType = iota
	LInt
	LString
	LSymbol
	LList
	LFun
	LBuiltin
	LTrue
)

var lvalTypeStrings = []string{
	LInvalid: "INVALID",
	LInt:     "integer",
	LString:  "string",
	LSymbol:  "symbol",
	LList:    "list",
	LFun:     "function",
	LBuiltin: "builtin",
	LTrue:    "t",
}

func (t LValType) String() string {
	if int(t) >= len(lvalTypeStrings) {
		return lvalTypeStrings[LInvalid]
	}
	return lvalTypeStrings[t]
}

// LVal is a lisp value.  The set of implementations is closed; consumers
// type-switch over *Int, *String, *Symbol, *List, *Function, *Builtin and
// the T singleton.
type LVal interface {
	// Type returns the variant of the value.
	Type() LValType
	// Quoted reports whether the value was read with a leading quote.
	Quoted() bool
	// String renders the value in its canonical printed form.
	String() string
	// Copy returns a deep copy of the value.  Singletons return themselves.
	Copy() LVal

	setQuoted(bool)
}

// quote holds the quoted flag for values produced by the reader.
type quote struct {
	quoted bool
}

func (q *quote) Quoted() bool {
	return q.quoted
}

func (q *quote) setQuoted(b bool) {
	q.quoted = b
}

// Int is an INTEGER value.
type Int struct {
	quote
	Value int
}

// Integer returns an LVal representing the number x.
func Integer(x int) *Int {
	return &Int{Value: x}
}

// Type implements LVal.
func (v *Int) Type() LValType { return LInt }

// Copy implements LVal.
func (v *Int) Copy() LVal {
	cp := *v
	return &cp
}

func (v *Int) String() string {
	return strconv.Itoa(v.Value)
}

// String is a STRING value.
type String struct {
	quote
	Value string
}

// Str returns an LVal representing the string s.
func Str(s string) *String {
	return &String{Value: s}
}

// Type implements LVal.
func (v *String) Type() LValType { return LString }

// Copy implements LVal.
func (v *String) Copy() LVal {
	cp := *v
	return &cp
}

func (v *String) String() string {
	return strconv.Quote(v.Value)
}

// Symbol is a SYMBOL value.  A Symbol is syntax; the value it names lives in
// a Binding of the runtime's SymbolTable.
type Symbol struct {
	quote
	Name string
}

// Sym returns an LVal resprenting the symbol name.
func Sym(name string) *Symbol {
	return &Symbol{Name: name}
}

// Type implements LVal.
func (v *Symbol) Type() LValType { return LSymbol }

// Copy implements LVal.
func (v *Symbol) Copy() LVal {
	cp := *v
	return &cp
}

func (v *Symbol) String() string {
	return v.Name
}

// List is a LIST value.  The empty list is always represented by Nil.
type List struct {
	quote
	Cells []LVal
}

// Nil is the empty list.  It is also bound to the constant symbol ``nil''.
// Nil must never be modified.
var Nil = &List{}

// NewList returns a list containing cells.  When cells is empty NewList
// returns Nil.
func NewList(cells ...LVal) *List {
	if len(cells) == 0 {
		return Nil
	}
	return &List{Cells: cells}
}

// Type implements LVal.
func (v *List) Type() LValType { return LList }

// IsNil returns true if v is an empty list.
func (v *List) IsNil() bool {
	return len(v.Cells) == 0
}

// Len returns the number of elements in v.
func (v *List) Len() int {
	return len(v.Cells)
}

// Copy implements LVal.
func (v *List) Copy() LVal {
	if v.IsNil() {
		return Nil
	}
	return &List{
		quote: v.quote,
		Cells: copyCells(v.Cells),
	}
}

func (v *List) setQuoted(b bool) {
	if v == Nil {
		return
	}
	v.quoted = b
}

func (v *List) String() string {
	return exprString(v.Cells, "(", ")")
}

func copyCells(cells []LVal) []LVal {
	if len(cells) == 0 {
		return nil
	}
	cp := make([]LVal, len(cells))
	for i := range cells {
		cp[i] = cells[i].Copy()
	}
	return cp
}

// Function is a FUNCTION value, a function defined in lisp.
type Function struct {
	quote
	Params    *List // a list of symbols
	NumParams int   // always equal to Params.Len()
	Body      *List // forms evaluated in sequence on each call
}

// NewFunction returns a function with the given formal parameters and body.
func NewFunction(params *List, body *List) *Function {
	if params == nil {
		params = Nil
	}
	if body == nil {
		body = Nil
	}
	return &Function{
		Params:    params,
		NumParams: params.Len(),
		Body:      body,
	}
}

// Type implements LVal.
func (v *Function) Type() LValType { return LFun }

// Copy implements LVal.
func (v *Function) Copy() LVal {
	return &Function{
		quote:     v.quote,
		Params:    v.Params.Copy().(*List),
		NumParams: v.NumParams,
		Body:      v.Body.Copy().(*List),
	}
}

func (v *Function) String() string {
	var buf bytes.Buffer
	buf.WriteString("(lambda ")
	buf.WriteString(v.Params.String())
	for _, form := range v.Body.Cells {
		buf.WriteString(" ")
		buf.WriteString(form.String())
	}
	buf.WriteString(")")
	return buf.String()
}

// trueType is the type of T.
type trueType struct{}

// T is the truth value bound to the constant symbol ``t''.
var T LVal = trueType{}

// Type implements LVal.
func (trueType) Type() LValType { return LTrue }

// Quoted implements LVal.  T is never quoted.
func (trueType) Quoted() bool { return false }

func (trueType) setQuoted(bool) {}

// Copy implements LVal.
func (t trueType) Copy() LVal { return t }

func (trueType) String() string { return "t" }

// Bool returns T if b is true and Nil otherwise.
func Bool(b bool) LVal {
	if b {
		return T
	}
	return Nil
}

// IsTrue reports whether v counts as true in a conditional.  Only Nil and
// empty lists are false.  In particular, the integer 0 is true.
func IsTrue(v LVal) bool {
	if lis, ok := v.(*List); ok {
		return !lis.IsNil()
	}
	return v != nil
}

// Len returns the length of v if it is a list and 0 otherwise.
func Len(v LVal) int {
	if lis, ok := v.(*List); ok {
		return lis.Len()
	}
	return 0
}

// Equal reports whether a and b are structurally equal.  The quoted flag is
// not part of a value's identity and is ignored.
func Equal(a, b LVal) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Type() != b.Type() {
		return false
	}
	switch a := a.(type) {
	case *Int:
		return a.Value == b.(*Int).Value
	case *String:
		return a.Value == b.(*String).Value
	case *Symbol:
		return a.Name == b.(*Symbol).Name
	case *List:
		return cellsEqual(a.Cells, b.(*List).Cells)
	case *Function:
		bf := b.(*Function)
		return cellsEqual(a.Params.Cells, bf.Params.Cells) && cellsEqual(a.Body.Cells, bf.Body.Cells)
	case *Builtin:
		bb := b.(*Builtin)
		return a == bb || (a.Name == bb.Name && a.Spec == bb.Spec && a.NumParams == bb.NumParams)
	case trueType:
		return true
	default:
		return false
	}
}

func cellsEqual(a, b []LVal) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// Quote marks v as quoted and returns it.  Quoting T or Nil has no effect
// because they are self-evaluating, so any number of quotes applied to them
// collapses to the bare value.  Any other value that is already quoted is
// wrapped in a quoted (quote v) expression.
func Quote(v LVal) LVal {
	if v.Quoted() {
		v = NewList(Sym("quote"), v)
	}
	v.setQuoted(true)
	return v
}

// unquote returns a deep copy of v with its own quoted flag cleared.  Nested
// values keep their flags.
func unquote(v LVal) LVal {
	cp := v.Copy()
	cp.setQuoted(false)
	return cp
}

func exprString(cells []LVal, left string, right string) string {
	if len(cells) == 0 {
		return left + right
	}
	var buf bytes.Buffer
	buf.WriteString(left)
	for i, c := range cells {
		if i > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString(c.String())
	}
	buf.WriteString(right)
	return buf.String()
}
