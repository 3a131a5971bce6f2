package lisp

import "sort"

// SymbolTableInitialSize is the initial capacity of a SymbolTable.
const SymbolTableInitialSize = 100

// SymbolTableScaleFactor is the factor by which a full SymbolTable grows.
const SymbolTableScaleFactor = 2

// Binding is an entry in a SymbolTable.  A Binding with a nil Value is
// registered but unbound.
type Binding struct {
	Name     string
	Value    LVal
	Constant bool
}

// IsBound returns true if b holds a value.
func (b *Binding) IsBound() bool {
	return b.Value != nil
}

// SymbolTable maps symbol names to bindings.  Entries are created lazily and
// are never removed.
type SymbolTable struct {
	rows  []*Binding
	index map[string]int
}

// NewSymbolTable returns an empty table with capacity for
// SymbolTableInitialSize bindings.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		rows:  make([]*Binding, 0, SymbolTableInitialSize),
		index: make(map[string]int, SymbolTableInitialSize),
	}
}

// Len returns the number of registered symbols.
func (tab *SymbolTable) Len() int {
	return len(tab.rows)
}

// Cap returns the number of bindings tab can hold before it must grow.
func (tab *SymbolTable) Cap() int {
	return cap(tab.rows)
}

// Names returns the sorted names of all registered symbols.
func (tab *SymbolTable) Names() []string {
	names := make([]string, len(tab.rows))
	for i, b := range tab.rows {
		names[i] = b.Name
	}
	sort.Strings(names)
	return names
}

// Peek returns the binding for name without creating it.
func (tab *SymbolTable) Peek(name string) (*Binding, bool) {
	i, ok := tab.index[name]
	if !ok {
		return nil, false
	}
	return tab.rows[i], true
}

// Lookup returns the binding for name, creating an unbound, non-constant
// binding if name has not been registered.
func (tab *SymbolTable) Lookup(name string) *Binding {
	if b, ok := tab.Peek(name); ok {
		return b
	}
	if len(tab.rows) == cap(tab.rows) {
		tab.grow()
	}
	b := &Binding{Name: name}
	tab.index[name] = len(tab.rows)
	tab.rows = append(tab.rows, b)
	return b
}

func (tab *SymbolTable) grow() {
	n := cap(tab.rows) * SymbolTableScaleFactor
	if n == 0 {
		n = SymbolTableInitialSize
	}
	rows := make([]*Binding, len(tab.rows), n)
	copy(rows, tab.rows)
	tab.rows = rows
}

// Value returns the value bound to name.  An UnboundSymbol error is returned
// if name is registered without a value and a NoSuchSymbol error is returned
// if name was never registered.
func (tab *SymbolTable) Value(name string) (LVal, error) {
	b, ok := tab.Peek(name)
	if !ok {
		return nil, Errorf(NoSuchSymbol, "no such symbol: %s", name)
	}
	if !b.IsBound() {
		return nil, Errorf(UnboundSymbol, "unbound symbol: %s", name)
	}
	return b.Value, nil
}

// Set binds v to name.  Set returns a ConstantViolation error if name is
// bound to a constant.
func (tab *SymbolTable) Set(name string, v LVal) error {
	b := tab.Lookup(name)
	if b.Constant {
		return Errorf(ConstantViolation, "cannot rebind constant: %s", name)
	}
	b.Value = v
	return nil
}

// Define binds v to name regardless of whether name is currently constant.
// Define is reserved for initialization and builtin registration.
func (tab *SymbolTable) Define(name string, v LVal, constant bool) *Binding {
	b := tab.Lookup(name)
	b.Value = v
	b.Constant = constant
	return b
}

// Unbind removes the value bound to name, leaving it registered.
func (tab *SymbolTable) Unbind(name string) error {
	b, ok := tab.Peek(name)
	if !ok {
		return Errorf(NoSuchSymbol, "no such symbol: %s", name)
	}
	if b.Constant {
		return Errorf(ConstantViolation, "cannot unbind constant: %s", name)
	}
	b.Value = nil
	return nil
}
