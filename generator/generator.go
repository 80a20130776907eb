// Package generator simulates paired-end sequencing reads: fragments are
// sampled uniformly from a reference genome and both mates are run
// through an error model (quality annotation, then substitution) before
// being written as FASTQ.
package generator

import (
	"fmt"
	"io"
	"math/rand"
	"sort"
	"time"

	"github.com/maruel/natural"
	"github.com/shenwei356/bio/seq"
	"github.com/shenwei356/bio/seqio/fastx"
	"github.com/shenwei356/xopen"

	"readsim/errmodel"
)

// maxSampleAttempts bounds resampling when fragments keep hitting
// ambiguous bases (e.g. N runs in the reference).
const maxSampleAttempts = 1000

// contig is one reference sequence eligible for fragment sampling.
type contig struct {
	id  string
	seq []byte
}

// Generator samples fragments from a genome and simulates read pairs with
// an error model. Each Generator owns its random stream; run one
// Generator per worker for parallel simulation.
type Generator struct {
	model errmodel.Model
	rng   *rand.Rand
}

// New returns a Generator using the given error model. rng may be nil, in
// which case a time-seeded source is used.
func New(model errmodel.Model, rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{model: model, rng: rng}
}

// Run simulates nPairs read pairs from the genome at genomePath and
// writes them to r1Path and r2Path (compressed according to the file
// extension). The forward mate is the start of a sampled fragment, the
// reverse mate the reverse complement of its end; both have the model's
// read length.
func (g *Generator) Run(genomePath, r1Path, r2Path string, nPairs int) error {
	fragLen := g.model.InsertSize()
	if rl := g.model.ReadLength(); fragLen < rl {
		fragLen = rl
	}

	contigs, err := loadGenome(genomePath, fragLen)
	if err != nil {
		return err
	}

	r1fh, err := xopen.Wopen(r1Path)
	if err != nil {
		return fmt.Errorf("error creating output file: %v", err)
	}
	defer r1fh.Close()

	r2fh, err := xopen.Wopen(r2Path)
	if err != nil {
		return fmt.Errorf("error creating output file: %v", err)
	}
	defer r2fh.Close()

	for i := 0; i < nPairs; i++ {
		c, start, err := g.sampleFragment(contigs, fragLen)
		if err != nil {
			return err
		}

		fwd, rev, err := matePair(c.seq[start:start+fragLen], g.model.ReadLength())
		if err != nil {
			return err
		}

		r1 := &fastx.Record{
			Name: []byte(fmt.Sprintf("%s_%d/1", c.id, i)),
			Seq:  &seq.Seq{Seq: fwd},
		}
		r2 := &fastx.Record{
			Name: []byte(fmt.Sprintf("%s_%d/2", c.id, i)),
			Seq:  &seq.Seq{Seq: rev},
		}

		if err := g.simulate(r1, errmodel.Forward); err != nil {
			return err
		}
		if err := g.simulate(r2, errmodel.Reverse); err != nil {
			return err
		}

		r1.FormatToWriter(r1fh, 0)
		r2.FormatToWriter(r2fh, 0)
	}

	return nil
}

// simulate annotates rec with quality scores for o and applies the
// matching substitution pass to its sequence.
func (g *Generator) simulate(rec *fastx.Record, o errmodel.Orientation) error {
	scores, err := g.model.Annotate(rec, o)
	if err != nil {
		return err
	}
	mutated, err := g.model.Mutate(rec.Seq.Seq, scores, o)
	if err != nil {
		return err
	}
	rec.Seq.Seq = mutated
	return nil
}

// sampleFragment picks a fragment start uniformly over all eligible
// positions of the genome, so longer contigs receive proportionally more
// fragments. Fragments containing ambiguous bases are redrawn.
func (g *Generator) sampleFragment(contigs []contig, fragLen int) (contig, int, error) {
	var total int
	for _, c := range contigs {
		total += len(c.seq) - fragLen + 1
	}

	for attempt := 0; attempt < maxSampleAttempts; attempt++ {
		r := g.rng.Intn(total)
		for _, c := range contigs {
			starts := len(c.seq) - fragLen + 1
			if r >= starts {
				r -= starts
				continue
			}
			if acgtOnly(c.seq[r : r+fragLen]) {
				return c, r, nil
			}
			break
		}
	}
	return contig{}, 0, fmt.Errorf("could not sample a fragment free of ambiguous bases after %d attempts", maxSampleAttempts)
}

// matePair builds the forward and reverse read sequences from one
// fragment: the forward read is its first readLength bases, the reverse
// read the first readLength bases of its reverse complement.
func matePair(frag []byte, readLength int) (fwd, rev []byte, err error) {
	fwd = make([]byte, readLength)
	copy(fwd, frag[:readLength])

	fragCopy := make([]byte, len(frag))
	copy(fragCopy, frag)
	s, err := seq.NewSeq(seq.DNAredundant, fragCopy)
	if err != nil {
		return nil, nil, fmt.Errorf("error building fragment sequence: %v", err)
	}
	rev = s.RevCom().Seq[:readLength]
	return fwd, rev, nil
}

// loadGenome reads every contig at least minLen long from a FASTA file.
// Contigs are ordered by natural sort of their IDs so fragment sampling
// is reproducible for a given seed regardless of input order.
func loadGenome(path string, minLen int) ([]contig, error) {
	reader, err := fastx.NewReader(seq.DNAredundant, path, fastx.DefaultIDRegexp)
	if err != nil {
		return nil, fmt.Errorf("error creating reader: %v", err)
	}
	defer reader.Close()

	var contigs []contig
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading record: %v", err)
		}
		if len(record.Seq.Seq) < minLen {
			continue
		}

		s := make([]byte, len(record.Seq.Seq))
		copy(s, record.Seq.Seq)
		contigs = append(contigs, contig{id: string(record.ID), seq: s})
	}

	if len(contigs) == 0 {
		return nil, fmt.Errorf("no contig in %s is long enough to hold a %d bp fragment", path, minLen)
	}

	sort.Slice(contigs, func(i, j int) bool {
		return natural.Less(contigs[i].id, contigs[j].id)
	})
	return contigs, nil
}

// acgtOnly reports whether s contains only unambiguous uppercase bases.
func acgtOnly(s []byte) bool {
	for _, b := range s {
		switch b {
		case 'A', 'C', 'G', 'T':
		default:
			return false
		}
	}
	return true
}
