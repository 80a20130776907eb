// Package errmodel implements the sequencing error models used to give
// simulated reads realistic quality scores and substitution errors.
//
// Two variants share one contract: the basic model draws scores from a
// normal distribution and substitutes uniformly, while the kernel density
// model replays per-position quality histograms and substitution counts
// recorded from a real sequencing run.
package errmodel

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/shenwei356/bio/seqio/fastx"

	"readsim/phred"
)

// Orientation tags a read as forward (R1) or reverse (R2). The kernel
// density model keeps fully independent profiles per orientation.
type Orientation int

const (
	Forward Orientation = iota
	Reverse
)

// ParseOrientation maps "forward" or "reverse" to an Orientation. Any
// other value is an InvalidOrientationError.
func ParseOrientation(s string) (Orientation, error) {
	switch s {
	case "forward":
		return Forward, nil
	case "reverse":
		return Reverse, nil
	}
	return 0, InvalidOrientationError(s)
}

func (o Orientation) String() string {
	switch o {
	case Forward:
		return "forward"
	case Reverse:
		return "reverse"
	}
	return fmt.Sprintf("orientation(%d)", int(o))
}

func (o Orientation) valid() bool { return o == Forward || o == Reverse }

// Model is the capability set shared by all error model variants. A model
// is immutable after construction apart from its random stream, so one
// model per worker (each with its own seeded source) is safe for parallel
// simulation.
type Model interface {
	// ReadLength returns the length of the simulated reads.
	ReadLength() int

	// InsertSize returns the expected fragment size, used by read
	// generation to place mate pairs.
	InsertSize() int

	// PhredScores generates one quality score per read position.
	PhredScores(o Orientation) ([]int, error)

	// Mutate returns a copy of seq with substitution errors consistent
	// with the given quality scores. The input is never modified.
	Mutate(seq []byte, quals []int, o Orientation) ([]byte, error)

	// Annotate generates quality scores for o, stores their ASCII form in
	// rec's quality slot, and returns them for use with Mutate.
	Annotate(rec *fastx.Record, o Orientation) ([]int, error)
}

// baseIndex maps a nucleotide to its row in the substitution tables.
func baseIndex(b byte) (int, bool) {
	switch b {
	case 'A':
		return 0, true
	case 'T':
		return 1, true
	case 'C':
		return 2, true
	case 'G':
		return 3, true
	}
	return 0, false
}

// alternatives lists, per source base (A, T, C, G), the three bases a
// substitution can produce, in the order their counts appear in a
// substitution matrix row.
var alternatives = [4][3]byte{
	{'T', 'C', 'G'}, // A
	{'A', 'C', 'G'}, // T
	{'A', 'T', 'G'}, // C
	{'A', 'T', 'C'}, // G
}

// validateSeq rejects sequences containing symbols outside ACGT before any
// mutation happens, so a failed call never leaves partial state behind.
func validateSeq(seq []byte) error {
	for i, b := range seq {
		if _, ok := baseIndex(b); !ok {
			return &UnsupportedBaseError{Base: b, Position: i}
		}
	}
	return nil
}

// annotate generates scores for o and attaches them to rec.
func annotate(m Model, rec *fastx.Record, o Orientation) ([]int, error) {
	if rec == nil || rec.Seq == nil {
		return nil, fmt.Errorf("cannot annotate a record without a sequence")
	}
	scores, err := m.PhredScores(o)
	if err != nil {
		return nil, err
	}
	rec.Seq.Qual = phred.EncodeQuals(scores)
	return scores, nil
}

// newRand returns rng, or a time-seeded source when rng is nil.
func newRand(rng *rand.Rand) *rand.Rand {
	if rng != nil {
		return rng
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
