package errmodel

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/shenwei356/xopen"
)

// Histogram is one position's quality distribution: one weight per pair of
// adjacent bin values, so Bins is one element longer than Weights. A
// sampled weight yields the bin value at its right edge.
type Histogram struct {
	Weights []float64 `json:"weights"`
	Bins    []float64 `json:"bins"`
}

// sample draws one bin value from the histogram, normalizing the weights
// by their sum. Validate guarantees the sum is positive.
func (h Histogram) sample(rng *rand.Rand) float64 {
	var total float64
	for _, w := range h.Weights {
		total += w
	}
	r := rng.Float64() * total
	for i, w := range h.Weights {
		r -= w
		if r < 0 {
			return h.Bins[i+1]
		}
	}
	return h.Bins[len(h.Bins)-1]
}

// SubstRow holds one position's 16 base-to-base substitution counts, four
// per source base in A, T, C, G order. Each block of four starts with the
// source base's own count, followed by the counts for its three
// alternatives in the order of the alternatives table.
type SubstRow []float64

// counts returns the three off-diagonal counts for source base index bi.
func (r SubstRow) counts(bi int) [3]float64 {
	off := 4 * bi
	return [3]float64{r[off+1], r[off+2], r[off+3]}
}

// Profile is the persisted bundle of empirical histograms and substitution
// tables defining a KDE model instance. Archives are JSON documents,
// optionally zstd-compressed (".zst" extension) or compressed in any form
// xopen recognizes. The key set and table shapes are a compatibility
// boundary; Validate enforces them.
type Profile struct {
	ReadLength         int         `json:"read_length"`
	InsertSize         int         `json:"insert_size"`
	QualityHistForward []Histogram `json:"quality_hist_forward"`
	QualityHistReverse []Histogram `json:"quality_hist_reverse"`
	SubstMatrixForward []SubstRow  `json:"subst_matrix_forward"`
	SubstMatrixReverse []SubstRow  `json:"subst_matrix_reverse"`
}

// LoadProfile reads and validates a profile archive. Any failure is a
// ProfileLoadError.
func LoadProfile(path string) (*Profile, error) {
	var p Profile
	if strings.HasSuffix(path, ".zst") {
		fh, err := os.Open(path)
		if err != nil {
			return nil, &ProfileLoadError{Path: path, Reason: "cannot open archive", Err: err}
		}
		defer fh.Close()

		decoder, err := zstd.NewReader(fh)
		if err != nil {
			return nil, &ProfileLoadError{Path: path, Reason: "cannot create zstd decoder", Err: err}
		}
		defer decoder.Close()

		if err := json.NewDecoder(decoder).Decode(&p); err != nil {
			return nil, &ProfileLoadError{Path: path, Reason: "cannot decode archive", Err: err}
		}
	} else {
		fh, err := xopen.Ropen(path)
		if err != nil {
			return nil, &ProfileLoadError{Path: path, Reason: "cannot open archive", Err: err}
		}
		defer fh.Close()

		if err := json.NewDecoder(fh).Decode(&p); err != nil {
			return nil, &ProfileLoadError{Path: path, Reason: "cannot decode archive", Err: err}
		}
	}

	if err := p.Validate(); err != nil {
		if pe, ok := err.(*ProfileLoadError); ok {
			pe.Path = path
		}
		return nil, err
	}
	return &p, nil
}

// SaveProfile writes a profile archive to path, zstd-compressed when the
// path ends in ".zst" and otherwise through xopen (plain or
// extension-selected compression).
func SaveProfile(p *Profile, path string) error {
	if strings.HasSuffix(path, ".zst") {
		fh, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("error creating profile archive: %v", err)
		}
		defer fh.Close()

		encoder, err := zstd.NewWriter(fh)
		if err != nil {
			return fmt.Errorf("error creating zstd encoder: %v", err)
		}
		if err := json.NewEncoder(encoder).Encode(p); err != nil {
			encoder.Close()
			return fmt.Errorf("error encoding profile archive: %v", err)
		}
		return encoder.Close()
	}

	fh, err := xopen.Wopen(path)
	if err != nil {
		return fmt.Errorf("error creating profile archive: %v", err)
	}
	defer fh.Close()

	if err := json.NewEncoder(fh).Encode(p); err != nil {
		return fmt.Errorf("error encoding profile archive: %v", err)
	}
	return nil
}

// Validate checks the structural invariants of a profile: required keys
// present, per-orientation table lengths equal to the read length, 16
// counts per substitution row, consistent histogram shapes and
// normalizable histogram weights. Violations are ProfileLoadErrors.
func (p *Profile) Validate() error {
	if p.ReadLength <= 0 {
		return &ProfileLoadError{Reason: "missing or non-positive read_length"}
	}
	if p.InsertSize <= 0 {
		return &ProfileLoadError{Reason: "missing or non-positive insert_size"}
	}

	hists := []struct {
		key   string
		hists []Histogram
	}{
		{"quality_hist_forward", p.QualityHistForward},
		{"quality_hist_reverse", p.QualityHistReverse},
	}
	for _, hh := range hists {
		if len(hh.hists) != p.ReadLength {
			return &ProfileLoadError{Reason: fmt.Sprintf("%s has %d histograms, want read_length (%d)", hh.key, len(hh.hists), p.ReadLength)}
		}
		for i, h := range hh.hists {
			if len(h.Bins) != len(h.Weights)+1 {
				return &ProfileLoadError{Reason: fmt.Sprintf("%s[%d] has %d bins for %d weights, want %d", hh.key, i, len(h.Bins), len(h.Weights), len(h.Weights)+1)}
			}
			var total float64
			for _, w := range h.Weights {
				if w < 0 {
					return &ProfileLoadError{Reason: fmt.Sprintf("%s[%d] contains a negative weight", hh.key, i)}
				}
				total += w
			}
			if total <= 0 {
				return &ProfileLoadError{Reason: fmt.Sprintf("%s[%d] has zero total weight", hh.key, i)}
			}
		}
	}

	matrices := []struct {
		key  string
		rows []SubstRow
	}{
		{"subst_matrix_forward", p.SubstMatrixForward},
		{"subst_matrix_reverse", p.SubstMatrixReverse},
	}
	for _, mm := range matrices {
		if len(mm.rows) != p.ReadLength {
			return &ProfileLoadError{Reason: fmt.Sprintf("%s has %d rows, want read_length (%d)", mm.key, len(mm.rows), p.ReadLength)}
		}
		for i, row := range mm.rows {
			if len(row) != 16 {
				return &ProfileLoadError{Reason: fmt.Sprintf("%s[%d] has %d counts, want 16", mm.key, i, len(row))}
			}
			for _, c := range row {
				if c < 0 {
					return &ProfileLoadError{Reason: fmt.Sprintf("%s[%d] contains a negative count", mm.key, i)}
				}
			}
		}
	}

	return nil
}
