package cache

import (
	"testing"
	"time"
)

func TestLRU(t *testing.T) {
	t.Run("get_set", func(t *testing.T) {
		c := NewLRU[int](4, time.Minute)
		c.Set("a", 1)

		got, ok := c.Get("a")
		if !ok || got != 1 {
			t.Fatalf("expected (1, true), got (%d, %v)", got, ok)
		}
		if _, ok := c.Get("missing"); ok {
			t.Fatal("expected miss for unknown key")
		}
	})

	t.Run("overwrite", func(t *testing.T) {
		c := NewLRU[int](4, time.Minute)
		c.Set("a", 1)
		c.Set("a", 2)

		got, _ := c.Get("a")
		if got != 2 {
			t.Fatalf("expected 2, got %d", got)
		}
		if c.Len() != 1 {
			t.Fatalf("expected 1 entry, got %d", c.Len())
		}
	})

	t.Run("ttl_expiry", func(t *testing.T) {
		c := NewLRU[int](4, 10*time.Millisecond)
		c.Set("a", 1)
		time.Sleep(20 * time.Millisecond)

		if _, ok := c.Get("a"); ok {
			t.Fatal("expected expired entry to miss")
		}
		if c.Len() != 0 {
			t.Fatalf("expected expired entry to be dropped, len %d", c.Len())
		}
	})

	t.Run("evicts_least_recently_used", func(t *testing.T) {
		c := NewLRU[int](2, time.Minute)
		c.Set("a", 1)
		c.Set("b", 2)
		c.Get("a") // refresh a
		c.Set("c", 3)

		if _, ok := c.Get("b"); ok {
			t.Fatal("expected b to be evicted")
		}
		if _, ok := c.Get("a"); !ok {
			t.Fatal("expected a to survive")
		}
	})

	t.Run("delete_prefix", func(t *testing.T) {
		c := NewLRU[int](8, time.Minute)
		c.Set("trend:u1:Expense", 1)
		c.Set("trend:u1:Income", 2)
		c.Set("trend:u2:Expense", 3)

		if dropped := c.DeletePrefix("trend:u1:"); dropped != 2 {
			t.Fatalf("expected 2 dropped, got %d", dropped)
		}
		if _, ok := c.Get("trend:u2:Expense"); !ok {
			t.Fatal("expected other user's entry to survive")
		}
	})
}
