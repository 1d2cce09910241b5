// Package genome defines the persisted genome document schema: contigs,
// features, annotation and analysis-event logs, and the location value types
// shared by the core aggregate and its exporters.
package genome

import (
	"encoding/json"
	"fmt"
)

// Strand identifies the direction a location segment runs on its contig.
type Strand string

// Canonical strand markers used in location encodings.
const (
	// StrandForward means begin is the lowest coordinate and the sequence runs forward.
	StrandForward Strand = "+"
	// StrandReverse means begin is the highest coordinate and the sequence runs backward.
	StrandReverse Strand = "-"
)

// Common feature type identifiers. Feature.Type is open-ended; these are the
// values exchanged with legacy seed directories.
const (
	// TypeCDS identifies a protein-coding feature.
	TypeCDS = "CDS"
	// TypePeg is the legacy name for protein-coding features in seed directories.
	TypePeg = "peg"
	// TypeRNA identifies an RNA feature.
	TypeRNA = "rna"
)

// Contig is a contiguous assembled DNA sequence owned by the document's
// contig collection.
type Contig struct {
	ID  string `json:"id"`
	DNA string `json:"dna"`
}

// Segment places part of a feature on a contig: begin is 1-based and, on the
// reverse strand, names the rightmost covered base. Length counts covered
// bases regardless of strand and is always positive.
type Segment struct {
	Contig string
	Begin  int
	Strand Strand
	Length int
}

// Location is an ordered sequence of segments. Order determines concatenation
// order when extracting sequence for spliced features.
type Location []Segment

// Annotation is a single append-only log entry on a feature.
type Annotation struct {
	Comment   string
	Annotator string
	Time      int64
	EventID   string // optional reference into the analysis-event log
}

// Feature is an annotated region of the genome.
type Feature struct {
	ID                   string       `json:"id"`
	Type                 string       `json:"type"`
	Location             Location     `json:"location"`
	Function             string       `json:"function,omitempty"`
	ProteinTranslation   string       `json:"protein_translation,omitempty"`
	Aliases              []string     `json:"aliases,omitempty"`
	Quality              any          `json:"quality,omitempty"`
	FeatureCreationEvent string       `json:"feature_creation_event,omitempty"`
	Annotations          []Annotation `json:"annotations"`
}

// CloseGenome records a related genome and how close it is.
type CloseGenome struct {
	GenomeID         string  `json:"genome_id"`
	ClosenessMeasure float64 `json:"closeness_measure"`
	GenomeName       string  `json:"genome_name"`
}

// AnalysisEvent is a provenance record for a tool invocation that produced or
// modified genome data. Events are append-only and referenced from features by id.
type AnalysisEvent struct {
	ID            string   `json:"id"`
	ToolName      string   `json:"tool_name"`
	ExecutionTime float64  `json:"execution_time"`
	Parameters    []string `json:"parameters"`
	Hostname      string   `json:"hostname"`
}

// Document is the plain persisted form of a genome. It carries no derived
// state: index maps and collaborator bindings live on the core aggregate and
// never serialize.
type Document struct {
	ID             string          `json:"id"`
	ScientificName string          `json:"scientific_name,omitempty"`
	Domain         string          `json:"domain,omitempty"`
	GeneticCode    int             `json:"genetic_code,omitempty"`
	Source         string          `json:"source,omitempty"`
	SourceID       string          `json:"source_id,omitempty"`
	Taxonomy       string          `json:"taxonomy,omitempty"`
	Contigs        []Contig        `json:"contigs"`
	Features       []Feature       `json:"features"`
	CloseGenomes   []CloseGenome   `json:"close_genomes,omitempty"`
	AnalysisEvents []AnalysisEvent `json:"analysis_events,omitempty"`
}

// Metadata carries the scalar fields settable through the aggregate's
// metadata allow-list. Nil pointers leave the corresponding document field
// untouched.
type Metadata struct {
	ID             *string
	ScientificName *string
	Domain         *string
	GeneticCode    *int
	Source         *string
	SourceID       *string
	Taxonomy       *string
}

// MarshalJSON renders a segment in the wire tuple form [contig, begin, strand, length].
func (s Segment) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{s.Contig, s.Begin, s.Strand, s.Length})
}

// UnmarshalJSON parses the wire tuple form [contig, begin, strand, length].
func (s *Segment) UnmarshalJSON(data []byte) error {
	var tuple []json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		return fmt.Errorf("location segment: %w", err)
	}
	if len(tuple) != 4 {
		return fmt.Errorf("location segment: expected 4 elements, got %d", len(tuple))
	}
	if err := json.Unmarshal(tuple[0], &s.Contig); err != nil {
		return fmt.Errorf("location segment contig: %w", err)
	}
	if err := json.Unmarshal(tuple[1], &s.Begin); err != nil {
		return fmt.Errorf("location segment begin: %w", err)
	}
	if err := json.Unmarshal(tuple[2], &s.Strand); err != nil {
		return fmt.Errorf("location segment strand: %w", err)
	}
	if err := json.Unmarshal(tuple[3], &s.Length); err != nil {
		return fmt.Errorf("location segment length: %w", err)
	}
	return nil
}

// MarshalJSON renders an annotation in the wire tuple form
// [comment, annotator, time] or [comment, annotator, time, event_id].
func (a Annotation) MarshalJSON() ([]byte, error) {
	tuple := []any{a.Comment, a.Annotator, a.Time}
	if a.EventID != "" {
		tuple = append(tuple, a.EventID)
	}
	return json.Marshal(tuple)
}

// UnmarshalJSON parses the three- or four-element annotation tuple.
func (a *Annotation) UnmarshalJSON(data []byte) error {
	var tuple []json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		return fmt.Errorf("annotation: %w", err)
	}
	if len(tuple) != 3 && len(tuple) != 4 {
		return fmt.Errorf("annotation: expected 3 or 4 elements, got %d", len(tuple))
	}
	if err := json.Unmarshal(tuple[0], &a.Comment); err != nil {
		return fmt.Errorf("annotation comment: %w", err)
	}
	if err := json.Unmarshal(tuple[1], &a.Annotator); err != nil {
		return fmt.Errorf("annotation annotator: %w", err)
	}
	if err := json.Unmarshal(tuple[2], &a.Time); err != nil {
		return fmt.Errorf("annotation time: %w", err)
	}
	if len(tuple) == 4 {
		if err := json.Unmarshal(tuple[3], &a.EventID); err != nil {
			return fmt.Errorf("annotation event id: %w", err)
		}
	}
	return nil
}

// Validate reports whether the segment satisfies the location contract.
func (s Segment) Validate() error {
	if s.Contig == "" {
		return fmt.Errorf("location segment: empty contig id")
	}
	if s.Begin < 1 {
		return fmt.Errorf("location segment %s: begin %d < 1", s.Contig, s.Begin)
	}
	if s.Strand != StrandForward && s.Strand != StrandReverse {
		return fmt.Errorf("location segment %s: invalid strand %q", s.Contig, s.Strand)
	}
	if s.Length < 1 {
		return fmt.Errorf("location segment %s: length %d < 1", s.Contig, s.Length)
	}
	return nil
}
