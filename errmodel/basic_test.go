package errmodel

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"

	"github.com/shenwei356/bio/seq"
	"github.com/shenwei356/bio/seqio/fastx"
)

func TestBasicAttributes(t *testing.T) {
	m := NewBasic(nil)
	if m.ReadLength() != 125 {
		t.Errorf("ReadLength() = %d, want 125", m.ReadLength())
	}
	if m.InsertSize() != 200 {
		t.Errorf("InsertSize() = %d, want 200", m.InsertSize())
	}
}

func TestBasicPhredScores(t *testing.T) {
	m := NewBasic(rand.New(rand.NewSource(42)))

	for _, o := range []Orientation{Forward, Reverse} {
		scores, err := m.PhredScores(o)
		if err != nil {
			t.Fatalf("PhredScores(%v) unexpected error: %v", o, err)
		}
		if len(scores) != m.ReadLength() {
			t.Fatalf("PhredScores(%v) returned %d scores, want %d", o, len(scores), m.ReadLength())
		}
		// Probabilities are clamped at 0.9999, so 40 is the ceiling
		for i, s := range scores {
			if s < 0 || s > 40 {
				t.Errorf("PhredScores(%v)[%d] = %d, want 0..40", o, i, s)
			}
		}
	}
}

func TestBasicPhredScoresInvalidOrientation(t *testing.T) {
	m := NewBasic(rand.New(rand.NewSource(1)))

	_, err := m.PhredScores(Orientation(3))
	var oerr InvalidOrientationError
	if !errors.As(err, &oerr) {
		t.Fatalf("PhredScores(3) error = %v, want InvalidOrientationError", err)
	}
}

func TestBasicMutateKeepsCorrectCalls(t *testing.T) {
	// Phred 200 maps to a correctness probability that rounds to 1.0 in
	// float64, so the uniform draw in [0,1) can never exceed it and the
	// sequence must come back unchanged.
	m := NewBasic(rand.New(rand.NewSource(1)))
	in := []byte("ACGTACGTACGT")
	quals := make([]int, len(in))
	for i := range quals {
		quals[i] = 200
	}

	got, err := m.Mutate(in, quals, Forward)
	if err != nil {
		t.Fatalf("Mutate() unexpected error: %v", err)
	}
	if !bytes.Equal(got, in) {
		t.Errorf("Mutate() = %s, want unchanged %s", got, in)
	}
}

func TestBasicMutateLowQuality(t *testing.T) {
	// Phred 0 means every call is wrong: every position must change, and
	// only to one of the three other bases.
	m := NewBasic(rand.New(rand.NewSource(7)))
	in := bytes.Repeat([]byte("ACGT"), 50)
	quals := make([]int, len(in))

	got, err := m.Mutate(in, quals, Forward)
	if err != nil {
		t.Fatalf("Mutate() unexpected error: %v", err)
	}
	if len(got) != len(in) {
		t.Fatalf("Mutate() length = %d, want %d", len(got), len(in))
	}
	for i := range got {
		switch got[i] {
		case 'A', 'C', 'G', 'T':
		default:
			t.Fatalf("Mutate()[%d] = %c, outside ACGT", i, got[i])
		}
		if got[i] == in[i] {
			t.Errorf("Mutate()[%d] = %c, substitution must change the base", i, got[i])
		}
	}
	if !bytes.Equal(in, bytes.Repeat([]byte("ACGT"), 50)) {
		t.Error("Mutate() modified its input")
	}
}

func TestBasicMutateErrorRate(t *testing.T) {
	// At phred 30 roughly 1 in 1000 calls is wrong
	m := NewBasic(rand.New(rand.NewSource(11)))
	in := bytes.Repeat([]byte("A"), 20000)
	quals := make([]int, len(in))
	for i := range quals {
		quals[i] = 30
	}

	got, err := m.Mutate(in, quals, Forward)
	if err != nil {
		t.Fatalf("Mutate() unexpected error: %v", err)
	}
	changed := 0
	for i := range got {
		if got[i] != in[i] {
			changed++
		}
	}
	if changed > 100 {
		t.Errorf("Mutate() changed %d of %d bases at phred 30, expected about 20", changed, len(in))
	}
}

func TestBasicMutateUnsupportedBase(t *testing.T) {
	m := NewBasic(rand.New(rand.NewSource(1)))

	got, err := m.Mutate([]byte("ACGN"), []int{30, 30, 30, 30}, Forward)
	var berr *UnsupportedBaseError
	if !errors.As(err, &berr) {
		t.Fatalf("Mutate(ACGN) error = %v, want UnsupportedBaseError", err)
	}
	if got != nil {
		t.Errorf("Mutate(ACGN) = %v, want nil on error", got)
	}
}

func TestBasicMutateQualLengthMismatch(t *testing.T) {
	m := NewBasic(rand.New(rand.NewSource(1)))

	if _, err := m.Mutate([]byte("ACGT"), []int{30}, Forward); err == nil {
		t.Error("Mutate() with mismatched quality length, want error")
	}
}

func TestBasicDeterminism(t *testing.T) {
	m1 := NewBasic(rand.New(rand.NewSource(99)))
	m2 := NewBasic(rand.New(rand.NewSource(99)))

	s1, err1 := m1.PhredScores(Forward)
	s2, err2 := m2.PhredScores(Forward)
	if err1 != nil || err2 != nil {
		t.Fatalf("PhredScores() unexpected errors: %v, %v", err1, err2)
	}
	for i := range s1 {
		if s1[i] != s2[i] {
			t.Fatalf("PhredScores() diverged at %d under the same seed: %d vs %d", i, s1[i], s2[i])
		}
	}

	in := bytes.Repeat([]byte("ACGT"), 30)
	quals := make([]int, len(in))
	g1, _ := m1.Mutate(in, quals, Forward)
	g2, _ := m2.Mutate(in, quals, Forward)
	if !bytes.Equal(g1, g2) {
		t.Error("Mutate() diverged under the same seed")
	}
}

func TestBasicAnnotate(t *testing.T) {
	m := NewBasic(rand.New(rand.NewSource(5)))
	rec := &fastx.Record{
		Name: []byte("read1"),
		Seq:  &seq.Seq{Seq: bytes.Repeat([]byte("A"), m.ReadLength())},
	}

	scores, err := m.Annotate(rec, Forward)
	if err != nil {
		t.Fatalf("Annotate() unexpected error: %v", err)
	}
	if len(scores) != m.ReadLength() || len(rec.Seq.Qual) != m.ReadLength() {
		t.Fatalf("Annotate() produced %d scores and %d quality bytes, want %d of each",
			len(scores), len(rec.Seq.Qual), m.ReadLength())
	}
	for i, q := range rec.Seq.Qual {
		if int(q) != scores[i]+33 {
			t.Fatalf("Annotate() quality byte %d = %d, want %d", i, q, scores[i]+33)
		}
	}
}
