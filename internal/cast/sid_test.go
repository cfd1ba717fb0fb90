package cast

import "testing"

func TestCounterAllocatesDenseIncreasingSids(t *testing.T) {
	c := NewCounter()
	if got := c.Peek(); got != 1 {
		t.Fatalf("Peek() = %d, want 1", got)
	}
	first := c.Next()
	second := c.Next()
	if first != 1 || second != 2 {
		t.Fatalf("first, second = %d, %d, want 1, 2", first, second)
	}
	if c.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", c.Count())
	}
}

func TestCounterResetRestartsAtOne(t *testing.T) {
	c := NewCounter()
	c.Next()
	c.Next()
	c.Reset()
	if got := c.Next(); got != 1 {
		t.Fatalf("Next() after Reset() = %d, want 1", got)
	}
}

func TestCounterNumberingIsStableAcrossResets(t *testing.T) {
	c := NewCounter()
	var first []Sid
	for i := 0; i < 5; i++ {
		first = append(first, c.Next())
	}
	c.Reset()
	var second []Sid
	for i := 0; i < 5; i++ {
		second = append(second, c.Next())
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("sid %d changed across reset: %d != %d", i, first[i], second[i])
		}
	}
}
