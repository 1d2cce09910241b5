// Package export projects a genome typed object into the conventional
// multi-file seed directory layout consumed by legacy annotation tooling, and
// optionally archives the result to a blob store.
package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"genomecore/internal/core"
	"genomecore/internal/seqio"
	"genomecore/pkg/genome"
)

// DefaultFunction is written for features with no assigned function.
const DefaultFunction = "hypothetical protein"

// Options configures the directory projection.
type Options struct {
	// MapCDSToPeg renames feature type CDS to the legacy peg naming in
	// directory paths and feature-id suffixes.
	MapCDSToPeg bool
	// CorrectFigID prefixes ids that look like bare genome-scoped ids
	// (e.g. 83333.1.peg.4) with the legacy fig| namespace tag.
	CorrectFigID bool
	// AssignedFunctionsFile overrides the function-assignment file name.
	AssignedFunctionsFile string
}

var figIDRe = regexp.MustCompile(`^\d+\.\d+\.`)

// WriteSeedDir writes the genome into dir as a seed directory. The first
// failed write aborts the export; files already written stay on disk.
func WriteSeedDir(g *core.GTO, dir string, opts Options) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("write seed dir: %w", err)
	}

	if err := writeContigs(g, filepath.Join(dir, "contigs")); err != nil {
		return err
	}
	if err := writeLine(filepath.Join(dir, "GENETIC_CODE"), fmt.Sprintf("%d", g.GeneticCode())); err != nil {
		return err
	}
	if err := writeLine(filepath.Join(dir, "GENOME"), g.ScientificName()); err != nil {
		return err
	}
	if tax := g.Taxonomy(); tax != "" {
		if err := writeLine(filepath.Join(dir, "TAXONOMY"), tax); err != nil {
			return err
		}
	}
	if err := writeCloseGenomes(g, filepath.Join(dir, "closest.genomes")); err != nil {
		return err
	}

	funcsName := opts.AssignedFunctionsFile
	if funcsName == "" {
		funcsName = "assigned_functions"
	}
	if err := writeFeatures(g, dir, funcsName, opts); err != nil {
		return err
	}
	return nil
}

func writeContigs(g *core.GTO, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write seed dir: %w", err)
	}
	defer func() { _ = f.Close() }()
	for _, contig := range g.Contigs() {
		if err := seqio.Write(f, seqio.Record{ID: contig.ID, Seq: contig.DNA}); err != nil {
			return fmt.Errorf("write seed dir: contigs: %w", err)
		}
	}
	return f.Close()
}

func writeLine(path, line string) error {
	if err := os.WriteFile(path, []byte(line+"\n"), 0o644); err != nil {
		return fmt.Errorf("write seed dir: %w", err)
	}
	return nil
}

func writeCloseGenomes(g *core.GTO, path string) error {
	related := g.CloseGenomes()
	if len(related) == 0 {
		return nil
	}
	var buf bytes.Buffer
	for _, cg := range related {
		fmt.Fprintf(&buf, "%s\t%g\t%s\n", cg.GenomeID, cg.ClosenessMeasure, cg.GenomeName)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write seed dir: closest.genomes: %w", err)
	}
	return nil
}

// typeFiles accumulates the per-type table and fasta content while features
// are walked in sequence order.
type typeFiles struct {
	tbl   bytes.Buffer
	fasta bytes.Buffer
}

func writeFeatures(g *core.GTO, dir, funcsName string, opts Options) error {
	var (
		funcs       bytes.Buffer
		annotations bytes.Buffer
		byType      = map[string]*typeFiles{}
		typeOrder   []string
	)

	features := g.Features()
	for i := range features {
		f := &features[i]
		exportType := f.Type
		exportID := f.ID
		if opts.MapCDSToPeg && f.Type == genome.TypeCDS {
			exportType = genome.TypePeg
			exportID = strings.ReplaceAll(exportID, "."+genome.TypeCDS+".", "."+genome.TypePeg+".")
		}
		if opts.CorrectFigID && figIDRe.MatchString(exportID) {
			exportID = "fig|" + exportID
		}

		tf, ok := byType[exportType]
		if !ok {
			tf = &typeFiles{}
			byType[exportType] = tf
			typeOrder = append(typeOrder, exportType)
		}

		tf.tbl.WriteString(exportID)
		tf.tbl.WriteByte('\t')
		tf.tbl.WriteString(f.Location.SeedString())
		for _, alias := range f.Aliases {
			tf.tbl.WriteByte('\t')
			tf.tbl.WriteString(alias)
		}
		tf.tbl.WriteByte('\n')

		seq := f.ProteinTranslation
		if seq == "" {
			dna, err := g.FeatureDNA(f)
			if err != nil {
				return fmt.Errorf("write seed dir: feature %s: %w", f.ID, err)
			}
			seq = dna
		}
		if err := seqio.Write(&tf.fasta, seqio.Record{ID: exportID, Seq: seq}); err != nil {
			return fmt.Errorf("write seed dir: feature %s: %w", f.ID, err)
		}

		function := f.Function
		if function == "" {
			function = DefaultFunction
		}
		fmt.Fprintf(&funcs, "%s\t%s\n", exportID, function)

		for _, ann := range f.Annotations {
			fmt.Fprintf(&annotations, "%s\n%d\t%s\n%s\n//\n", exportID, ann.Time, ann.Annotator, ann.Comment)
		}
	}

	if err := os.WriteFile(filepath.Join(dir, funcsName), funcs.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write seed dir: %s: %w", funcsName, err)
	}
	if err := os.WriteFile(filepath.Join(dir, "annotations"), annotations.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write seed dir: annotations: %w", err)
	}

	for _, typ := range typeOrder {
		typeDir := filepath.Join(dir, "Features", typ)
		if err := os.MkdirAll(typeDir, 0o755); err != nil {
			return fmt.Errorf("write seed dir: %s: %w", typeDir, err)
		}
		tf := byType[typ]
		if err := os.WriteFile(filepath.Join(typeDir, "tbl"), tf.tbl.Bytes(), 0o644); err != nil {
			return fmt.Errorf("write seed dir: %s tbl: %w", typ, err)
		}
		if err := os.WriteFile(filepath.Join(typeDir, "fasta"), tf.fasta.Bytes(), 0o644); err != nil {
			return fmt.Errorf("write seed dir: %s fasta: %w", typ, err)
		}
	}
	return nil
}
