package errmodel

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/shenwei356/bio/seqio/fastx"

	"readsim/phred"
)

// KDE is the kernel density (empirical) error model. Quality scores are
// drawn from per-position histograms recorded from a real sequencing run,
// and replacement bases are drawn from the per-position base-to-base
// substitution counts observed in the same run. Forward and reverse reads
// use fully independent profiles; the two are never mixed.
type KDE struct {
	profile *Profile
	rng     *rand.Rand
}

// NewKDE loads the profile archive at path and builds the empirical model
// from it. rng may be nil for a time-seeded source.
func NewKDE(path string, rng *rand.Rand) (*KDE, error) {
	p, err := LoadProfile(path)
	if err != nil {
		return nil, err
	}
	return NewKDEFromProfile(p, rng)
}

// NewKDEFromProfile builds the empirical model from an already loaded
// profile. The profile is validated once and treated as read-only
// afterwards, so a single profile may back many models as long as each
// model owns its own random stream.
func NewKDEFromProfile(p *Profile, rng *rand.Rand) (*KDE, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &KDE{profile: p, rng: newRand(rng)}, nil
}

func (m *KDE) ReadLength() int { return m.profile.ReadLength }
func (m *KDE) InsertSize() int { return m.profile.InsertSize }

func (m *KDE) hists(o Orientation) ([]Histogram, error) {
	switch o {
	case Forward:
		return m.profile.QualityHistForward, nil
	case Reverse:
		return m.profile.QualityHistReverse, nil
	}
	return nil, InvalidOrientationError(o.String())
}

func (m *KDE) substMatrix(o Orientation) ([]SubstRow, error) {
	switch o {
	case Forward:
		return m.profile.SubstMatrixForward, nil
	case Reverse:
		return m.profile.SubstMatrixReverse, nil
	}
	return nil, InvalidOrientationError(o.String())
}

// PhredScores samples each position's score from its recorded histogram,
// treating the bin weights as an unnormalized discrete distribution over
// the bin values, and rounds the sampled value to the nearest integer.
func (m *KDE) PhredScores(o Orientation) ([]int, error) {
	hists, err := m.hists(o)
	if err != nil {
		return nil, err
	}
	scores := make([]int, len(hists))
	for i, h := range hists {
		scores[i] = int(math.Round(h.sample(m.rng)))
	}
	return scores, nil
}

// Mutate returns a copy of seq with substitution errors drawn from the
// empirical profile for o. For each position, the three off-diagonal
// counts of the current base form the replacement distribution; the
// same-base count is excluded, so the draw models which substitution
// happens given that an error occurred. A row whose three counts are all
// zero has no such distribution and yields a DegenerateProfileError.
func (m *KDE) Mutate(seq []byte, quals []int, o Orientation) ([]byte, error) {
	matrix, err := m.substMatrix(o)
	if err != nil {
		return nil, err
	}
	if len(quals) != len(seq) {
		return nil, fmt.Errorf("quality scores length %d does not match sequence length %d", len(quals), len(seq))
	}
	if len(seq) > len(matrix) {
		return nil, fmt.Errorf("sequence length %d exceeds profile read length %d", len(seq), len(matrix))
	}
	if err := validateSeq(seq); err != nil {
		return nil, err
	}

	mutated := make([]byte, len(seq))
	copy(mutated, seq)
	for i, b := range mutated {
		bi, _ := baseIndex(b)
		counts := matrix[i].counts(bi)
		total := counts[0] + counts[1] + counts[2]
		if total == 0 {
			return nil, &DegenerateProfileError{Position: i, Base: b}
		}
		if m.rng.Float64() > phred.Prob(quals[i]) {
			mutated[i] = alternatives[bi][weightedIndex(m.rng, counts, total)]
		}
	}
	return mutated, nil
}

// Annotate generates quality scores for o and stores them in rec's
// quality slot (phred+33).
func (m *KDE) Annotate(rec *fastx.Record, o Orientation) ([]int, error) {
	return annotate(m, rec, o)
}

// weightedIndex draws an index proportionally to counts. total is the sum
// of counts and must be positive.
func weightedIndex(rng *rand.Rand, counts [3]float64, total float64) int {
	r := rng.Float64() * total
	for i, c := range counts {
		r -= c
		if r < 0 {
			return i
		}
	}
	return len(counts) - 1
}
