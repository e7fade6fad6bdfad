package cache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/Celebrate-future/jmesgo/pkg/parser"
	"github.com/Celebrate-future/jmesgo/pkg/types"
)

func compile(t *testing.T, input string) *types.Expression {
	t.Helper()
	expr, err := parser.Compile(input)
	if err != nil {
		t.Fatalf("Compile(%q) failed: %v", input, err)
	}
	return expr
}

func TestCacheGetSet(t *testing.T) {
	c := New(4)
	if _, ok := c.Get("foo"); ok {
		t.Fatal("Get on empty cache reported a hit")
	}

	expr := compile(t, "foo")
	c.Set("foo", expr)

	got, ok := c.Get("foo")
	if !ok || got != expr {
		t.Fatalf("Get = %v, %v, want cached expression", got, ok)
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
}

func TestCacheEviction(t *testing.T) {
	c := New(2)
	c.Set("a", compile(t, "a"))
	c.Set("b", compile(t, "b"))

	// Touch "a" so "b" becomes the LRU entry.
	c.Get("a")
	c.Set("c", compile(t, "c"))

	if _, ok := c.Get("b"); ok {
		t.Error("least recently used entry survived eviction")
	}
	if _, ok := c.Get("a"); !ok {
		t.Error("recently used entry was evicted")
	}
	if c.Len() != 2 {
		t.Errorf("Len = %d, want capacity 2", c.Len())
	}
}

func TestCacheGetOrCompile(t *testing.T) {
	c := New(4)
	calls := 0
	compileFn := func() (*types.Expression, error) {
		calls++
		return parser.Compile("foo.bar")
	}

	first, err := c.GetOrCompile("foo.bar", compileFn)
	if err != nil {
		t.Fatal(err)
	}
	second, err := c.GetOrCompile("foo.bar", compileFn)
	if err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("compile ran %d times, want 1", calls)
	}
	if first != second {
		t.Error("GetOrCompile returned different expressions for the same key")
	}
}

func TestCacheGetOrCompileError(t *testing.T) {
	c := New(4)
	fail := func() (*types.Expression, error) {
		return parser.Compile("foo[")
	}

	if _, err := c.GetOrCompile("foo[", fail); err == nil {
		t.Fatal("GetOrCompile swallowed the compile error")
	}
	// Errors are not cached.
	if c.Len() != 0 {
		t.Errorf("Len = %d after failed compile, want 0", c.Len())
	}
}

func TestCacheClear(t *testing.T) {
	c := New(4)
	c.Set("a", compile(t, "a"))
	c.Set("b", compile(t, "b"))

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len = %d after Clear, want 0", c.Len())
	}
	if c.Capacity() != 4 {
		t.Errorf("Capacity = %d after Clear, want 4", c.Capacity())
	}
}

func TestCacheDefaultCapacity(t *testing.T) {
	if got := New(0).Capacity(); got != 256 {
		t.Errorf("New(0).Capacity() = %d, want 256", got)
	}
}

func TestCacheConcurrent(t *testing.T) {
	c := New(8)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("k%d", (n+j)%16)
				_, err := c.GetOrCompile(key, func() (*types.Expression, error) {
					return parser.Compile("foo")
				})
				if err != nil {
					t.Errorf("GetOrCompile(%s) failed: %v", key, err)
					return
				}
			}
		}(i)
	}
	wg.Wait()
}
