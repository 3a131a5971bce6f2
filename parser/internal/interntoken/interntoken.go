package interntoken

import "sync"

// Table interns token text so that repeated symbol names share storage.  A
// Table is safe for concurrent use.
type Table struct {
	mut    sync.RWMutex
	intern map[string]string
}

func NewTable() *Table {
	return &Table{
		intern: make(map[string]string),
	}
}

// GetBytes returns a string representing b.
func (tab *Table) GetBytes(b []byte) string {
	if tab == nil {
		return string(b)
	}
	// The conversion in the map index does not allocate.
	tab.mut.RLock()
	s, ok := tab.intern[string(b)]
	tab.mut.RUnlock()
	if ok {
		return s
	}
	return tab.insert(string(b))
}

// Get returns a string that equals s.
func (tab *Table) Get(s string) string {
	if tab == nil {
		return s
	}
	tab.mut.RLock()
	p, ok := tab.intern[s]
	tab.mut.RUnlock()
	if ok {
		return p
	}
	return tab.insert(s)
}

// Len returns the number of distinct strings in tab.
func (tab *Table) Len() int {
	if tab == nil {
		return 0
	}
	tab.mut.RLock()
	defer tab.mut.RUnlock()
	return len(tab.intern)
}

func (tab *Table) insert(s string) string {
	tab.mut.Lock()
	p, ok := tab.intern[s]
	if !ok {
		p = s
		tab.intern[s] = p
	}
	tab.mut.Unlock()
	return p
}
