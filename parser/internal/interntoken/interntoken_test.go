package interntoken

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable(t *testing.T) {
	tab := NewTable()
	a := tab.GetBytes([]byte("abc"))
	b := tab.Get("abc")
	assert.Equal(t, "abc", a)
	assert.Equal(t, a, b)
	assert.Equal(t, 1, tab.Len())
	tab.Get("def")
	assert.Equal(t, 2, tab.Len())

	var nilTab *Table
	assert.Equal(t, "x", nilTab.GetBytes([]byte("x")))
	assert.Equal(t, "x", nilTab.Get("x"))
	assert.Equal(t, 0, nilTab.Len())
}

func TestTable_concurrent(t *testing.T) {
	tab := NewTable()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, s := range []string{"a", "b", "c", "a"} {
				tab.GetBytes([]byte(s))
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 3, tab.Len())
}
