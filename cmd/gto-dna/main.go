// Command gto-dna extracts feature nucleotide sequences from a genome typed
// object document and writes them to stdout as FASTA.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"genomecore/internal/core"
	"genomecore/internal/idalloc"
	"genomecore/internal/seqio"
	"genomecore/pkg/genome"
)

func main() {
	var (
		in  = flag.String("in", "-", "genome document JSON file ('-' for stdin)")
		ids = flag.String("features", "", "comma-separated feature ids (default: all features)")
	)
	flag.Parse()

	if err := run(*in, *ids, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "gto-dna: %v\n", err)
		os.Exit(1)
	}
}

func run(in, ids string, w io.Writer) error {
	var r io.Reader = os.Stdin
	if in != "-" {
		f, err := os.Open(in)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		r = f
	}
	var doc genome.Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	gto, err := core.Initialize(doc, idalloc.NewMemory(), core.DefaultEnvironment())
	if err != nil {
		return err
	}

	if ids == "" {
		features := gto.Features()
		for i := range features {
			f := &features[i]
			dna, err := gto.FeatureDNA(f)
			if err != nil {
				return err
			}
			if err := seqio.Write(w, seqio.Record{ID: f.ID, Description: f.Function, Seq: dna}); err != nil {
				return err
			}
		}
		return nil
	}

	for _, id := range strings.Split(ids, ",") {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		f, ok := gto.FindFeature(id)
		if !ok {
			return core.ErrNotFound{Kind: "feature", ID: id}
		}
		dna, err := gto.FeatureDNA(f)
		if err != nil {
			return err
		}
		if err := seqio.Write(w, seqio.Record{ID: f.ID, Description: f.Function, Seq: dna}); err != nil {
			return err
		}
	}
	return nil
}
