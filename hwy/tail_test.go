package hwy

import "testing"

func TestTailMask(t *testing.T) {
	lanes := MaxLanes[float32]()
	tests := []struct {
		count int
		want  int
	}{
		{-1, 0},
		{0, 0},
		{3, 3},
		{lanes, lanes},
		{lanes + 5, lanes},
	}
	for _, tt := range tests {
		m := TailMask[float32](tt.count)
		if m.NumLanes() != lanes {
			t.Errorf("TailMask(%d).NumLanes() = %d, want %d", tt.count, m.NumLanes(), lanes)
		}
		if got := m.CountTrue(); got != tt.want {
			t.Errorf("TailMask(%d).CountTrue() = %d, want %d", tt.count, got, tt.want)
		}
	}
}

func TestProcessWithTail(t *testing.T) {
	lanes := MaxLanes[float32]()
	size := lanes*3 + 2
	covered := make([]int, size)

	var tails int
	ProcessWithTail[float32](size,
		func(offset int) {
			for i := offset; i < offset+lanes; i++ {
				covered[i]++
			}
		},
		func(offset, count int) {
			tails++
			if count != 2 {
				t.Errorf("tail count = %d, want 2", count)
			}
			for i := offset; i < offset+count; i++ {
				covered[i]++
			}
		},
	)

	if tails != 1 {
		t.Errorf("tailFn called %d times, want 1", tails)
	}
	for i, c := range covered {
		if c != 1 {
			t.Errorf("index %d covered %d times", i, c)
		}
	}
}

func TestProcessWithTailExact(t *testing.T) {
	lanes := MaxLanes[float64]()
	var full int
	ProcessWithTail[float64](lanes*2,
		func(int) { full++ },
		func(int, int) { t.Error("unexpected tail call") },
	)
	if full != 2 {
		t.Errorf("fullFn called %d times, want 2", full)
	}
}
