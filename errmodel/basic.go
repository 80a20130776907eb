package errmodel

import (
	"fmt"
	"math/rand"

	"github.com/shenwei356/bio/seqio/fastx"

	"readsim/phred"
)

const (
	basicReadLength = 125
	basicInsertSize = 200
	basicMeanQual   = 30

	// Standard deviation of the correctness probability around the mean
	// quality.
	basicQualSD = 0.01
)

// Basic is the parametric error model: quality scores come from a normal
// distribution around a fixed mean quality, and substitutions replace the
// base with one of the three alternatives chosen uniformly.
//
// Forward and reverse reads share one score distribution. Real
// instruments degrade R2 relative to R1; this model deliberately does not.
type Basic struct {
	readLength int
	insertSize int
	meanQual   int
	rng        *rand.Rand
}

// NewBasic returns the parametric model with read length 125, insert size
// 200 and mean quality 30. rng may be nil, in which case a time-seeded
// source is used; pass a seeded source for reproducible output.
func NewBasic(rng *rand.Rand) *Basic {
	return &Basic{
		readLength: basicReadLength,
		insertSize: basicInsertSize,
		meanQual:   basicMeanQual,
		rng:        newRand(rng),
	}
}

func (m *Basic) ReadLength() int { return m.readLength }
func (m *Basic) InsertSize() int { return m.insertSize }

// PhredScores draws one correctness probability per position from
// N(Prob(30), 0.01), clamps it to phred.MaxProb and converts it to an
// integer score.
func (m *Basic) PhredScores(o Orientation) ([]int, error) {
	if !o.valid() {
		return nil, InvalidOrientationError(o.String())
	}
	mean := phred.Prob(m.meanQual)
	scores := make([]int, m.readLength)
	for i := range scores {
		p := phred.ClampProb(m.rng.NormFloat64()*basicQualSD + mean)
		scores[i] = phred.Score(p)
	}
	return scores, nil
}

// Mutate returns a copy of seq where every position whose quality check
// fails is replaced by one of the three other bases, chosen uniformly.
// Positions are decided independently; a position whose draw stays within
// the call-correctness probability is left untouched.
func (m *Basic) Mutate(seq []byte, quals []int, o Orientation) ([]byte, error) {
	if !o.valid() {
		return nil, InvalidOrientationError(o.String())
	}
	if len(quals) != len(seq) {
		return nil, fmt.Errorf("quality scores length %d does not match sequence length %d", len(quals), len(seq))
	}
	if err := validateSeq(seq); err != nil {
		return nil, err
	}

	mutated := make([]byte, len(seq))
	copy(mutated, seq)
	for i, b := range mutated {
		if m.rng.Float64() > phred.Prob(quals[i]) {
			bi, _ := baseIndex(b)
			mutated[i] = alternatives[bi][m.rng.Intn(3)]
		}
	}
	return mutated, nil
}

// Annotate generates quality scores for o and stores them in rec's
// quality slot (phred+33). The scores are returned so callers can feed
// them straight into Mutate.
func (m *Basic) Annotate(rec *fastx.Record, o Orientation) ([]int, error) {
	return annotate(m, rec, o)
}
