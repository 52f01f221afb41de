package logdom

import "testing"

func TestLevelOrder(t *testing.T) {
	order := []Level{Error, Critical, Warning, Message, Info, Debug}
	for i := 1; i < len(order); i++ {
		if order[i-1] >= order[i] {
			t.Fatalf("level order broken at %d: %v >= %v", i, order[i-1], order[i])
		}
	}
}

func TestPasses(t *testing.T) {
	cases := []struct {
		record, min Level
		want        bool
	}{
		{Error, Message, true},
		{Debug, Message, false},
		{Message, Message, true},
		{Critical, Error, false},
		{Error, Error, true},
	}
	for _, c := range cases {
		if got := Passes(c.record, c.min); got != c.want {
			t.Errorf("Passes(%v, %v) = %v, want %v", c.record, c.min, got, c.want)
		}
	}
}

func TestLevelStringAndParse(t *testing.T) {
	for _, l := range []Level{Error, Critical, Warning, Message, Info, Debug} {
		name := l.String()
		parsed, ok := ParseLevel(name)
		if !ok {
			t.Fatalf("ParseLevel(%q) failed to parse", name)
		}
		if parsed != l {
			t.Errorf("ParseLevel(%q) = %v, want %v", name, parsed, l)
		}
	}
	if _, ok := ParseLevel("bogus"); ok {
		t.Error("ParseLevel(bogus) unexpectedly succeeded")
	}
	if l, ok := ParseLevel("WARNING"); !ok || l != Warning {
		t.Errorf("ParseLevel(WARNING) = %v, %v, want Warning, true", l, ok)
	}
}
