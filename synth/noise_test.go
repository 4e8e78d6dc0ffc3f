package synth

import "testing"

func TestNoise_GoldenSequence(t *testing.T) {
	var n noise
	n.reset()

	// state = state*1103515245 + 12345 from a seed of 1, bits 16..30.
	wantBits := []int{16838, 5758, 10113, 17515, 31051, 5627, 23010, 7419}
	for i, bits := range wantBits {
		want := float64(bits)/32768.0 - 1.0
		if got := n.next(); got != want {
			t.Fatalf("sample %d: got %v, want %v", i, got, want)
		}
	}
}

func TestNoise_ResetRepeats(t *testing.T) {
	var a, b noise
	a.reset()
	for i := 0; i < 1000; i++ {
		a.next()
	}
	a.reset()
	b.reset()
	for i := 0; i < 1000; i++ {
		if x, y := a.next(), b.next(); x != y {
			t.Fatalf("sample %d: got %v, want %v", i, x, y)
		}
	}
}

func TestNoise_Range(t *testing.T) {
	var n noise
	n.reset()
	for i := 0; i < 100000; i++ {
		v := n.next()
		if v < -1 || v >= 1 {
			t.Fatalf("sample %d out of range: %v", i, v)
		}
	}
}
