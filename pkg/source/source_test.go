package source

import "testing"

func TestSpanMerge(t *testing.T) {
	a := NewSpan(2, 5)
	b := NewSpan(0, 3)

	got := a.Merge(b)
	if got.Start() != 0 || got.End() != 5 {
		t.Fatalf("Merge = [%d,%d), want [0,5)", got.Start(), got.End())
	}
}

func TestSpanLength(t *testing.T) {
	s := NewSpan(3, 7)
	if got := s.Length(); got != 4 {
		t.Fatalf("Length() = %d, want 4", got)
	}
}

func TestNewSpanRejectsInverted(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected NewSpan(5, 2) to panic")
		}
	}()

	NewSpan(5, 2)
}

func TestSyntaxErrorOffset(t *testing.T) {
	err := NewSyntaxError(NewSpan(2, 4), "boom")
	offset := err.Offset(10)

	if offset.Span().Start() != 12 || offset.Span().End() != 14 {
		t.Fatalf("Offset(10).Span() = [%d,%d), want [12,14)", offset.Span().Start(), offset.Span().End())
	}

	if offset.Message() != "boom" {
		t.Fatalf("Offset should preserve the message, got %q", offset.Message())
	}
}
