package core

import (
	"errors"
	"testing"

	"genomecore/pkg/genome"

	"genomecore/internal/idalloc"
)

func dnaGTO(t *testing.T) *GTO {
	t.Helper()
	g := New(idalloc.NewMemory(), testEnv())
	g.AddContigs([]Contig{{ID: "c1", DNA: "ACGTACGTAC"}})
	g.UpdateIndexes()
	return g
}

func TestReverseComplement(t *testing.T) {
	cases := map[string]string{
		"":     "",
		"A":    "T",
		"ACGT": "ACGT",
		"TACG": "CGTA",
		"AAAC": "GTTT",
		"acgn": "ncgt",
		"AXGT": "ACNT",
	}
	for in, want := range cases {
		if got := ReverseComplement(in); got != want {
			t.Fatalf("revcomp(%q): got %q want %q", in, got, want)
		}
	}
}

func TestFeatureDNAForward(t *testing.T) {
	g := dnaGTO(t)
	f := &Feature{ID: "f1", Location: genome.Location{
		{Contig: "c1", Begin: 3, Strand: StrandForward, Length: 4},
	}}
	dna, err := g.FeatureDNA(f)
	if err != nil {
		t.Fatalf("feature dna: %v", err)
	}
	if dna != "GTAC" {
		t.Fatalf("got %q want GTAC", dna)
	}
}

func TestFeatureDNAReverse(t *testing.T) {
	g := dnaGTO(t)
	f := &Feature{ID: "f1", Location: genome.Location{
		{Contig: "c1", Begin: 8, Strand: StrandReverse, Length: 4},
	}}
	// dna[3:7] = "TACG", reverse-complemented.
	dna, err := g.FeatureDNA(f)
	if err != nil {
		t.Fatalf("feature dna: %v", err)
	}
	if dna != "CGTA" {
		t.Fatalf("got %q want CGTA", dna)
	}
}

func TestFeatureDNASingleBaseReverse(t *testing.T) {
	g := dnaGTO(t)
	// Single-base segments read forward regardless of strand.
	f := &Feature{ID: "f1", Location: genome.Location{
		{Contig: "c1", Begin: 3, Strand: StrandReverse, Length: 1},
	}}
	dna, err := g.FeatureDNA(f)
	if err != nil {
		t.Fatalf("feature dna: %v", err)
	}
	if dna != "G" {
		t.Fatalf("got %q want G", dna)
	}
}

func TestFeatureDNASpliced(t *testing.T) {
	g := dnaGTO(t)
	f := &Feature{ID: "f1", Location: genome.Location{
		{Contig: "c1", Begin: 1, Strand: StrandForward, Length: 2},
		{Contig: "c1", Begin: 8, Strand: StrandReverse, Length: 4},
		{Contig: "c1", Begin: 9, Strand: StrandForward, Length: 2},
	}}
	dna, err := g.FeatureDNA(f)
	if err != nil {
		t.Fatalf("feature dna: %v", err)
	}
	if dna != "AC"+"CGTA"+"AC" {
		t.Fatalf("got %q want ACCGTAAC", dna)
	}
}

func TestFeatureDNALengthMatchesSegments(t *testing.T) {
	g := dnaGTO(t)
	for _, seg := range []Segment{
		{Contig: "c1", Begin: 1, Strand: StrandForward, Length: 10},
		{Contig: "c1", Begin: 10, Strand: StrandReverse, Length: 9},
		{Contig: "c1", Begin: 5, Strand: StrandForward, Length: 1},
		{Contig: "c1", Begin: 6, Strand: StrandReverse, Length: 3},
	} {
		dna, err := g.FeatureDNA(&Feature{ID: "f", Location: genome.Location{seg}})
		if err != nil {
			t.Fatalf("feature dna %v: %v", seg, err)
		}
		if len(dna) != seg.Length {
			t.Fatalf("segment %v: extracted %d bases, want %d", seg, len(dna), seg.Length)
		}
	}
}

func TestFeatureDNADanglingContig(t *testing.T) {
	g := dnaGTO(t)
	f := &Feature{ID: "f1", Location: genome.Location{
		{Contig: "missing", Begin: 1, Strand: StrandForward, Length: 2},
	}}
	_, err := g.FeatureDNA(f)
	var nf ErrNotFound
	if err == nil || !errors.As(err, &nf) || nf.Kind != "contig" {
		t.Fatalf("expected contig not-found error, got %v", err)
	}
}

func TestFeatureDNAOutOfRange(t *testing.T) {
	g := dnaGTO(t)
	for _, loc := range []genome.Location{
		{{Contig: "c1", Begin: 9, Strand: StrandForward, Length: 4}},
		{{Contig: "c1", Begin: 3, Strand: StrandReverse, Length: 5}},
	} {
		if _, err := g.FeatureDNA(&Feature{ID: "f", Location: loc}); err == nil {
			t.Fatalf("expected out-of-range error for %v", loc)
		}
	}
}

func TestFeatureDNAByID(t *testing.T) {
	g := dnaGTO(t)
	g.doc.Features = append(g.doc.Features, Feature{
		ID:       "g.CDS.1",
		Type:     genome.TypeCDS,
		Location: genome.Location{{Contig: "c1", Begin: 3, Strand: StrandForward, Length: 4}},
	})
	g.UpdateIndexes()
	dna, err := g.FeatureDNAByID("g.CDS.1")
	if err != nil {
		t.Fatalf("feature dna by id: %v", err)
	}
	if dna != "GTAC" {
		t.Fatalf("got %q want GTAC", dna)
	}
	if _, err := g.FeatureDNAByID("nope"); err == nil {
		t.Fatalf("expected not-found error")
	}
}
