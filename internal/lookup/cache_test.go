package lookup

import "testing"

func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewCache[string, int](2)
	c.Put("a", 1)
	c.Put("b", 2)
	if _, ok := c.Get("a"); !ok { // a is now most recent
		t.Fatal("a missing")
	}
	c.Put("c", 3)
	if _, ok := c.Get("b"); ok {
		t.Fatal("b should have been evicted")
	}
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("a: %d %v", v, ok)
	}
	if c.Len() != 2 {
		t.Fatalf("len %d", c.Len())
	}
}

func TestCachePutReplaces(t *testing.T) {
	c := NewCache[string, string](0)
	c.Put("k", "old")
	c.Put("k", "new")
	if v, _ := c.Get("k"); v != "new" || c.Len() != 1 {
		t.Fatalf("got %q len %d", v, c.Len())
	}
}
