// Command gto-export reads a genome typed object document (JSON) and writes
// it out as a seed directory, optionally archiving the result to the
// configured blob store.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"genomecore/internal/blob"
	"genomecore/internal/core"
	"genomecore/internal/export"
	"genomecore/internal/idalloc"
	"genomecore/pkg/genome"
)

func main() {
	var (
		in            = flag.String("in", "-", "genome document JSON file ('-' for stdin)")
		dir           = flag.String("dir", "", "output seed directory (required)")
		mapCDSToPeg   = flag.Bool("map-cds-to-peg", false, "rename CDS features to peg in output paths and ids")
		correctFigID  = flag.Bool("correct-fig-id", false, "prefix bare genome-scoped feature ids with fig|")
		assignedFuncs = flag.String("assigned-functions", "", "override the assigned-functions file name")
		archiveKey    = flag.String("archive", "", "also archive the directory to the blob store under this key")
	)
	flag.Parse()

	if err := run(*in, *dir, export.Options{
		MapCDSToPeg:           *mapCDSToPeg,
		CorrectFigID:          *correctFigID,
		AssignedFunctionsFile: *assignedFuncs,
	}, *archiveKey); err != nil {
		fmt.Fprintf(os.Stderr, "gto-export: %v\n", err)
		os.Exit(1)
	}
}

func run(in, dir string, opts export.Options, archiveKey string) error {
	if dir == "" {
		return fmt.Errorf("-dir is required")
	}
	doc, err := readDocument(in)
	if err != nil {
		return err
	}
	gto, err := core.Initialize(doc, idalloc.NewMemory(), core.DefaultEnvironment())
	if err != nil {
		return err
	}
	if err := export.WriteSeedDir(gto, dir, opts); err != nil {
		return err
	}
	if archiveKey == "" {
		return nil
	}
	ctx := context.Background()
	store, err := blob.Open(ctx)
	if err != nil {
		return err
	}
	info, err := export.Archive(ctx, dir, store, archiveKey)
	if err != nil {
		return err
	}
	fmt.Printf("archived %s (%d bytes) to %s store\n", info.Key, info.Size, store.Driver())
	return nil
}

func readDocument(in string) (genome.Document, error) {
	var r io.Reader = os.Stdin
	if in != "-" {
		f, err := os.Open(in)
		if err != nil {
			return genome.Document{}, err
		}
		defer func() { _ = f.Close() }()
		r = f
	}
	var doc genome.Document
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return genome.Document{}, fmt.Errorf("decode document: %w", err)
	}
	return doc, nil
}
