// Package phred converts between phred quality scores and the probability
// that a base call is correct, and encodes score lists into the ASCII form
// carried by FASTQ records.
package phred

import "math"

const (
	// Offset is the ASCII offset of encoded quality scores (Sanger).
	Offset = 33

	// MaxProb is the largest call-correctness probability Score accepts.
	// Probabilities must be clamped here before conversion, otherwise the
	// score diverges as p approaches 1.
	MaxProb = 0.9999
)

var correctProbs [256]float64

func init() {
	// Pre-compute call-correctness probabilities for Phred scores
	for q := range correctProbs {
		correctProbs[q] = 1 - math.Pow(10, float64(q)/-10)
	}
}

// Prob returns the probability that a base call with score q is correct,
// p = 1 - 10^(-q/10).
func Prob(q int) float64 {
	if q >= 0 && q < len(correctProbs) {
		return correctProbs[q]
	}
	return 1 - math.Pow(10, float64(q)/-10)
}

// Score returns the phred score for a call-correctness probability p,
// q = round(-10*log10(1-p)). The result is undefined for p >= 1; callers
// must clamp p with ClampProb first.
func Score(p float64) int {
	return int(math.Round(-10 * math.Log10(1-p)))
}

// ClampProb limits p to MaxProb so that Score stays finite.
func ClampProb(p float64) float64 {
	if p > MaxProb {
		return MaxProb
	}
	return p
}

// EncodeQuals converts phred scores to ASCII quality bytes (offset 33).
func EncodeQuals(scores []int) []byte {
	qual := make([]byte, len(scores))
	for i, q := range scores {
		qual[i] = byte(q + Offset)
	}
	return qual
}

// DecodeQuals converts ASCII quality bytes (offset 33) to phred scores.
func DecodeQuals(qual []byte) []int {
	scores := make([]int, len(qual))
	for i, c := range qual {
		scores[i] = int(c) - Offset
	}
	return scores
}
