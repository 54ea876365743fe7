package sequence

import (
	"bytes"
	"errors"
	"testing"
)

func testSeed(b byte) []byte {
	return bytes.Repeat([]byte{b}, 32)
}

// collect drains a sequence into a slice.
func collect(s *Sequence) []Position {
	out := make([]Position, 0, s.Len())
	for {
		pos, ok := s.Next()
		if !ok {
			return out
		}
		out = append(out, pos)
	}
}

func TestNew_PermutationCoversAllSlots(t *testing.T) {
	tests := []struct {
		name      string
		pixels    int
		channels  int
		skipAlpha bool
		wantSlots int
	}{
		{"rgb", 100, 3, true, 300},
		{"rgba skip alpha", 100, 4, true, 300},
		{"rgba with alpha", 100, 4, false, 400},
		{"single pixel", 1, 3, true, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq, err := New(testSeed(1), tt.pixels, tt.channels, tt.skipAlpha)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if seq.Len() != tt.wantSlots {
				t.Fatalf("Len() = %d, want %d", seq.Len(), tt.wantSlots)
			}

			embeddable := tt.wantSlots / tt.pixels
			seen := make([]bool, tt.wantSlots)
			for _, pos := range collect(seq) {
				if pos.Pixel < 0 || pos.Pixel >= tt.pixels {
					t.Fatalf("pixel index %d out of range", pos.Pixel)
				}
				if pos.Channel < 0 || pos.Channel >= embeddable {
					t.Fatalf("channel index %d out of range", pos.Channel)
				}
				slot := pos.Pixel*embeddable + pos.Channel
				if seen[slot] {
					t.Fatalf("slot %d visited twice", slot)
				}
				seen[slot] = true
			}
			for slot, ok := range seen {
				if !ok {
					t.Fatalf("slot %d never visited", slot)
				}
			}
		})
	}
}

func TestNew_DeterministicAcrossInstances(t *testing.T) {
	a, err := New(testSeed(7), 64, 4, true)
	if err != nil {
		t.Fatal(err)
	}
	b, err := New(testSeed(7), 64, 4, true)
	if err != nil {
		t.Fatal(err)
	}

	first := collect(a)
	second := collect(b)
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("position %d differs: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestSequence_ResetRestarts(t *testing.T) {
	seq, err := New(testSeed(9), 32, 3, true)
	if err != nil {
		t.Fatal(err)
	}

	first := collect(seq)
	seq.Reset()
	second := collect(seq)

	if len(first) != len(second) {
		t.Fatalf("lengths differ after Reset: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("position %d differs after Reset", i)
		}
	}
}

func TestNew_DifferentSeedsDiffer(t *testing.T) {
	a, err := New(testSeed(1), 256, 3, true)
	if err != nil {
		t.Fatal(err)
	}
	b, err := New(testSeed(2), 256, 3, true)
	if err != nil {
		t.Fatal(err)
	}

	first := collect(a)
	second := collect(b)
	same := 0
	for i := range first {
		if first[i] == second[i] {
			same++
		}
	}
	// Two random permutations of 768 slots agreeing on most positions would
	// mean the seed is being ignored.
	if same > len(first)/2 {
		t.Errorf("different seeds agree on %d of %d positions", same, len(first))
	}
}

func TestNew_SkipAlphaExcludesFourthChannel(t *testing.T) {
	seq, err := New(testSeed(3), 16, 4, true)
	if err != nil {
		t.Fatal(err)
	}
	for _, pos := range collect(seq) {
		if pos.Channel == 3 {
			t.Fatal("alpha channel selected despite skipAlpha")
		}
	}
}

func TestNew_NoCapacity(t *testing.T) {
	_, err := New(testSeed(1), 0, 3, true)
	if !errors.Is(err, ErrNoCapacity) {
		t.Errorf("expected ErrNoCapacity, got %v", err)
	}
}

func TestNew_InvalidGeometry(t *testing.T) {
	tests := []struct {
		name     string
		pixels   int
		channels int
	}{
		{"negative pixels", -1, 3},
		{"zero channels", 10, 0},
		{"too many channels", 10, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(testSeed(1), tt.pixels, tt.channels, true); err == nil {
				t.Error("expected error for invalid geometry")
			}
		})
	}
}

func TestSequence_ExhaustionSignaled(t *testing.T) {
	seq, err := New(testSeed(1), 1, 3, true)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < seq.Len(); i++ {
		if _, ok := seq.Next(); !ok {
			t.Fatalf("sequence ended early at %d", i)
		}
	}
	if _, ok := seq.Next(); ok {
		t.Error("Next() returned a position past the end")
	}
}

func BenchmarkNew_1MPixels(b *testing.B) {
	seed := testSeed(5)
	for i := 0; i < b.N; i++ {
		_, _ = New(seed, 1<<20, 3, true)
	}
}
