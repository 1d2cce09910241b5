package core

import (
	"fmt"

	"genomecore/pkg/genome"
)

var complement [256]byte

func init() {
	for i := range complement {
		complement[i] = 'N'
	}
	pairs := map[byte]byte{
		'A': 'T', 'C': 'G', 'G': 'C', 'T': 'A', 'U': 'A',
		'R': 'Y', 'Y': 'R', 'S': 'S', 'W': 'W', 'K': 'M', 'M': 'K',
		'B': 'V', 'V': 'B', 'D': 'H', 'H': 'D', 'N': 'N',
	}
	for b, c := range pairs {
		complement[b] = c
		complement[b+'a'-'A'] = c + 'a' - 'A'
	}
}

// ReverseComplement returns the reverse complement of a nucleotide sequence.
// Case is preserved; unrecognised symbols map to N.
func ReverseComplement(seq string) string {
	n := len(seq)
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = complement[seq[n-1-i]]
	}
	return string(out)
}

// FeatureDNA resolves the feature's location against the contig index and
// returns its nucleotide sequence: segment substrings concatenated in
// location order, with reverse-strand segments reverse-complemented. A
// location referencing a contig absent from the index is an error, as is a
// segment extending past its contig.
func (g *GTO) FeatureDNA(f *genome.Feature) (string, error) {
	if f == nil {
		return "", fmt.Errorf("feature dna: nil feature")
	}
	var dna []byte
	for _, seg := range f.Location {
		contig, ok := g.FindContig(seg.Contig)
		if !ok {
			return "", fmt.Errorf("feature dna %s: %w", f.ID, ErrNotFound{Kind: "contig", ID: seg.Contig})
		}
		sub, err := segmentDNA(contig.DNA, seg)
		if err != nil {
			return "", fmt.Errorf("feature dna %s: %w", f.ID, err)
		}
		dna = append(dna, sub...)
	}
	return string(dna), nil
}

// FeatureDNAByID looks the feature up in the feature index first.
func (g *GTO) FeatureDNAByID(id string) (string, error) {
	f, ok := g.FindFeature(id)
	if !ok {
		return "", ErrNotFound{Kind: "feature", ID: id}
	}
	return g.FeatureDNA(f)
}

// segmentDNA extracts one location segment from a contig sequence. Forward
// strand (and single-base) segments read dna[begin-1 : begin-1+length];
// reverse segments read the length bases below begin and flip them.
func segmentDNA(dna string, seg genome.Segment) (string, error) {
	if seg.Strand == genome.StrandReverse && seg.Length > 1 {
		lo, hi := seg.Begin-seg.Length-1, seg.Begin-1
		if lo < 0 || hi > len(dna) {
			return "", fmt.Errorf("segment %s out of range on contig of length %d", seg.CompactString(), len(dna))
		}
		return ReverseComplement(dna[lo:hi]), nil
	}
	lo := seg.Begin - 1
	if lo < 0 || lo+seg.Length > len(dna) {
		return "", fmt.Errorf("segment %s out of range on contig of length %d", seg.CompactString(), len(dna))
	}
	return dna[lo : lo+seg.Length], nil
}
