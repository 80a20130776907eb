package phred

import (
	"math"
	"testing"
)

func TestProbKnownValues(t *testing.T) {
	tests := []struct {
		q    int
		want float64
	}{
		{0, 0},
		{10, 0.9},
		{20, 0.99},
		{30, 0.999},
		{40, 0.9999},
		{50, 0.99999},
		{60, 0.999999},
	}

	for _, tt := range tests {
		if got := Prob(tt.q); math.Abs(got-tt.want) > 1e-10 {
			t.Errorf("Prob(%d) = %v, want %v", tt.q, got, tt.want)
		}
	}
}

func TestProbOutsideTable(t *testing.T) {
	// Scores beyond the precomputed range fall back to the formula
	want := 1 - math.Pow(10, -30.0)
	if got := Prob(300); math.Abs(got-want) > 1e-12 {
		t.Errorf("Prob(300) = %v, want %v", got, want)
	}
}

func TestScoreProbRoundTrip(t *testing.T) {
	for q := 0; q <= 60; q++ {
		if got := Score(Prob(q)); got != q {
			t.Errorf("Score(Prob(%d)) = %d, want %d", q, got, q)
		}
	}
}

func TestClampProb(t *testing.T) {
	tests := []struct {
		name string
		p    float64
		want float64
	}{
		{"Below limit", 0.5, 0.5},
		{"At limit", MaxProb, MaxProb},
		{"Above limit", 0.99999, MaxProb},
		{"One", 1.0, MaxProb},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampProb(tt.p); got != tt.want {
				t.Errorf("ClampProb(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestClampedScoreIsFinite(t *testing.T) {
	if got := Score(ClampProb(1.0)); got != 40 {
		t.Errorf("Score(ClampProb(1.0)) = %d, want 40", got)
	}
}

func TestEncodeDecodeQuals(t *testing.T) {
	scores := []int{0, 2, 30, 40, 41}

	qual := EncodeQuals(scores)
	if string(qual) != "!#?IJ" {
		t.Errorf("EncodeQuals(%v) = %q, want %q", scores, qual, "!#?IJ")
	}

	decoded := DecodeQuals(qual)
	for i, q := range decoded {
		if q != scores[i] {
			t.Errorf("DecodeQuals()[%d] = %d, want %d", i, q, scores[i])
		}
	}
}
