package export

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"io"
	"path/filepath"
	"testing"

	"genomecore/internal/blob"
)

func TestArchiveSeedDir(t *testing.T) {
	g := fixtureGTO(t)
	dir := filepath.Join(t.TempDir(), "seed")
	if err := WriteSeedDir(g, dir, Options{}); err != nil {
		t.Fatalf("write seed dir: %v", err)
	}

	store := blob.NewMemory()
	ctx := context.Background()
	info, err := Archive(ctx, dir, store, "exports/83333.1.tar.gz")
	if err != nil {
		t.Fatalf("archive: %v", err)
	}
	if info.ContentType != "application/gzip" || info.Size == 0 {
		t.Fatalf("unexpected artifact info %+v", info)
	}

	_, rc, err := store.Get(ctx, "exports/83333.1.tar.gz")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer func() { _ = rc.Close() }()
	gz, err := gzip.NewReader(rc)
	if err != nil {
		t.Fatalf("gzip: %v", err)
	}
	tr := tar.NewReader(gz)
	names := map[string]bool{}
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("tar: %v", err)
		}
		names[hdr.Name] = true
	}
	for _, want := range []string{"contigs", "GENOME", "GENETIC_CODE", "assigned_functions", "annotations", "Features/CDS/tbl", "Features/CDS/fasta", "Features/rna/tbl", "Features/rna/fasta"} {
		if !names[want] {
			t.Fatalf("archive missing %s: %v", want, names)
		}
	}

	// Immutable: a second archive under the same key must fail.
	if _, err := Archive(ctx, dir, store, "exports/83333.1.tar.gz"); err == nil {
		t.Fatalf("expected duplicate-key failure")
	}
}
