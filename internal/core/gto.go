// Package core implements the genome typed object: an in-memory genome
// document with indexed lookup, id allocation, feature mutation, DNA
// extraction, and projection back to the plain persisted form.
package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"genomecore/internal/idalloc"
	"genomecore/pkg/genome"
)

// DefaultAnnotator attributes annotations when no annotator is supplied.
const DefaultAnnotator = "Nobody"

// GTO is the genome typed object: the aggregate over a genome.Document plus
// transient id indexes and the collaborators bound at initialization. The
// indexes are rebuilt on demand and never serialize. A GTO is not safe for
// concurrent use without external locking.
type GTO struct {
	doc genome.Document

	featureIndex map[string]int
	contigIndex  map[string]int

	alloc   idalloc.Allocator
	env     Environment
	metrics MetricsRecorder
}

// Option configures optional aggregate collaborators.
type Option func(*GTO)

// WithMetrics attaches a metrics recorder observing aggregate operations.
func WithMetrics(rec MetricsRecorder) Option {
	return func(g *GTO) { g.metrics = rec }
}

// ErrNotFound reports a failed lookup of an owned or referenced record.
type ErrNotFound struct {
	Kind string
	ID   string
}

func (e ErrNotFound) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// New constructs an empty genome typed object bound to the given allocator
// and environment.
func New(alloc idalloc.Allocator, env Environment, opts ...Option) *GTO {
	g := &GTO{
		doc: genome.Document{
			Contigs:  []genome.Contig{},
			Features: []genome.Feature{},
		},
		alloc: alloc,
		env:   env.normalize(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.UpdateIndexes()
	return g
}

// Initialize blesses a deserialized document into a genome typed object:
// it validates the required containers, binds the id-allocation collaborator,
// and builds both transient indexes.
func Initialize(doc genome.Document, alloc idalloc.Allocator, env Environment, opts ...Option) (*GTO, error) {
	if doc.Contigs == nil {
		return nil, fmt.Errorf("initialize genome: missing contigs container")
	}
	if doc.Features == nil {
		return nil, fmt.Errorf("initialize genome: missing features container")
	}
	g := &GTO{doc: doc, alloc: alloc, env: env.normalize()}
	for _, opt := range opts {
		opt(g)
	}
	g.UpdateIndexes()
	return g, nil
}

// ID returns the genome identifier.
func (g *GTO) ID() string { return g.doc.ID }

// Contigs returns the live contig sequence. Callers must not reorder it.
func (g *GTO) Contigs() []genome.Contig { return g.doc.Contigs }

// Features returns the live feature sequence. Callers must not reorder it.
func (g *GTO) Features() []genome.Feature { return g.doc.Features }

// CloseGenomes returns the close-genome collection.
func (g *GTO) CloseGenomes() []genome.CloseGenome { return g.doc.CloseGenomes }

// AnalysisEvents returns the analysis-event log.
func (g *GTO) AnalysisEvents() []genome.AnalysisEvent { return g.doc.AnalysisEvents }

// GeneticCode returns the genome's genetic code.
func (g *GTO) GeneticCode() int { return g.doc.GeneticCode }

// ScientificName returns the organism name.
func (g *GTO) ScientificName() string { return g.doc.ScientificName }

// Taxonomy returns the taxonomy string, empty when unset.
func (g *GTO) Taxonomy() string { return g.doc.Taxonomy }

// SetMetadata copies the allow-listed scalar fields from meta onto the
// document. Nil fields leave the current values untouched.
func (g *GTO) SetMetadata(meta genome.Metadata) {
	if meta.ID != nil {
		g.doc.ID = *meta.ID
	}
	if meta.ScientificName != nil {
		g.doc.ScientificName = *meta.ScientificName
	}
	if meta.Domain != nil {
		g.doc.Domain = *meta.Domain
	}
	if meta.GeneticCode != nil {
		g.doc.GeneticCode = *meta.GeneticCode
	}
	if meta.Source != nil {
		g.doc.Source = *meta.Source
	}
	if meta.SourceID != nil {
		g.doc.SourceID = *meta.SourceID
	}
	if meta.Taxonomy != nil {
		g.doc.Taxonomy = *meta.Taxonomy
	}
}

// AddContigs appends contigs verbatim. It neither deduplicates ids nor
// refreshes the contig index; callers needing lookup must run UpdateIndexes.
func (g *GTO) AddContigs(contigs []genome.Contig) {
	g.doc.Contigs = append(g.doc.Contigs, contigs...)
}

// AddCloseGenomes appends close-genome records.
func (g *GTO) AddCloseGenomes(related []genome.CloseGenome) {
	g.doc.CloseGenomes = append(g.doc.CloseGenomes, related...)
}

// FeatureParams describes a feature to create. Type and Location are
// required; everything else is optional.
type FeatureParams struct {
	ID                 string // explicit id; allocated when empty
	IDPrefix           string // allocation prefix; defaults to the genome id
	Type               string
	Location           genome.Location
	Function           string
	Annotator          string // defaults to DefaultAnnotator
	Annotation         string // creation comment; defaults to "Add feature"
	ProteinTranslation string
	Aliases            []string
	Quality            any
	AnalysisEventID    string // provenance event the feature was created by
}

// AddFeature creates a feature and appends it to the feature sequence. When
// no explicit id is given one is allocated as <prefix>.<type>.<n>; allocation
// failure fails the operation. The feature index is not updated.
func (g *GTO) AddFeature(ctx context.Context, params FeatureParams) (feature *genome.Feature, err error) {
	defer g.observe(ctx, "add_feature", g.env.Now(), &err)

	if params.Type == "" {
		return nil, fmt.Errorf("add feature: no type supplied")
	}
	if err := params.Location.Validate(); err != nil {
		return nil, fmt.Errorf("add feature: %w", err)
	}

	id := params.ID
	if id == "" {
		prefix := params.IDPrefix
		if prefix == "" {
			prefix = g.doc.ID
		}
		if prefix == "" {
			return nil, fmt.Errorf("add feature: no id prefix and genome has no id")
		}
		typed := prefix + "." + params.Type
		n, err := g.alloc.AllocateIDRange(ctx, typed, 1)
		if err != nil {
			return nil, fmt.Errorf("add feature: allocate id for %s: %w", typed, err)
		}
		id = fmt.Sprintf("%s.%d", typed, n)
	}

	annotator := params.Annotator
	if annotator == "" {
		annotator = DefaultAnnotator
	}
	comment := params.Annotation
	if comment == "" {
		comment = "Add feature"
	}
	now := g.env.Now().Unix()

	f := genome.Feature{
		ID:                   id,
		Type:                 params.Type,
		Location:             params.Location,
		ProteinTranslation:   params.ProteinTranslation,
		Aliases:              params.Aliases,
		Quality:              params.Quality,
		FeatureCreationEvent: params.AnalysisEventID,
		Annotations: []genome.Annotation{
			{Comment: comment, Annotator: annotator, Time: now, EventID: params.AnalysisEventID},
		},
	}
	if params.Function != "" {
		f.Function = params.Function
		f.Annotations = append(f.Annotations, genome.Annotation{
			Comment:   "Set function to " + params.Function,
			Annotator: annotator,
			Time:      now,
			EventID:   params.AnalysisEventID,
		})
	}

	g.doc.Features = append(g.doc.Features, f)
	return &g.doc.Features[len(g.doc.Features)-1], nil
}

// FeatureTuple is the compact batch-import form:
// (caller id hint, compact location string, type, function, comma-joined aliases).
type FeatureTuple struct {
	ID       string
	Location string
	Type     string
	Function string
	Aliases  string
}

// AddFeaturesFromList imports a batch of compact feature tuples. One analysis
// event covers the whole batch and every created feature references it. The
// returned map associates each tuple's caller-supplied id with the allocated
// id, which callers need because allocation ignores the hint. The batch is
// not transactional: a malformed tuple leaves earlier features in place.
func (g *GTO) AddFeaturesFromList(ctx context.Context, tuples []FeatureTuple) (idMap map[string]string, err error) {
	defer g.observe(ctx, "add_features_from_list", g.env.Now(), &err)

	eventID, err := g.AddAnalysisEvent(&genome.AnalysisEvent{
		ToolName:      "add_features_from_list",
		ExecutionTime: float64(g.env.Now().Unix()),
		Parameters:    []string{},
		Hostname:      g.env.Hostname(),
	})
	if err != nil {
		return nil, fmt.Errorf("add features from list: %w", err)
	}

	idMap = make(map[string]string, len(tuples))
	for _, tuple := range tuples {
		loc, err := genome.ParseCompactLocation(tuple.Location)
		if err != nil {
			return nil, fmt.Errorf("add features from list: tuple %s: %w", tuple.ID, err)
		}
		var aliases []string
		if tuple.Aliases != "" {
			aliases = splitAliases(tuple.Aliases)
		}
		f, err := g.AddFeature(ctx, FeatureParams{
			Type:            tuple.Type,
			Location:        loc,
			Function:        tuple.Function,
			Aliases:         aliases,
			AnalysisEventID: eventID,
		})
		if err != nil {
			return nil, fmt.Errorf("add features from list: tuple %s: %w", tuple.ID, err)
		}
		idMap[tuple.ID] = f.ID
	}
	return idMap, nil
}

// UpdateFunction overwrites a feature's function and appends an annotation
// attributing the change to user and the supplied analysis event. The lookup
// goes through the feature index; a miss returns ErrNotFound.
func (g *GTO) UpdateFunction(user, featureID, function, eventID string) error {
	f, ok := g.FindFeature(featureID)
	if !ok {
		return ErrNotFound{Kind: "feature", ID: featureID}
	}
	f.Annotations = append(f.Annotations, genome.Annotation{
		Comment:   "Function updated to " + function,
		Annotator: user,
		Time:      g.env.Now().Unix(),
		EventID:   eventID,
	})
	f.Function = function
	return nil
}

// AddAnalysisEvent assigns the event a fresh unique id, appends it to the
// event log, and returns the id. The event's own id field is overwritten.
func (g *GTO) AddAnalysisEvent(ev *genome.AnalysisEvent) (string, error) {
	if ev == nil {
		return "", fmt.Errorf("add analysis event: nil event")
	}
	id := g.env.NewID()
	if id == "" {
		return "", fmt.Errorf("add analysis event: id generation returned empty id")
	}
	ev.ID = id
	g.doc.AnalysisEvents = append(g.doc.AnalysisEvents, *ev)
	return id, nil
}

// FindFeature returns the feature with the given id via the transient index.
// The second result is false when the id is absent or the index is stale.
func (g *GTO) FindFeature(id string) (*genome.Feature, bool) {
	i, ok := g.featureIndex[id]
	if !ok || i >= len(g.doc.Features) {
		return nil, false
	}
	return &g.doc.Features[i], true
}

// FindContig returns the contig with the given id via the transient index.
func (g *GTO) FindContig(id string) (*genome.Contig, bool) {
	i, ok := g.contigIndex[id]
	if !ok || i >= len(g.doc.Contigs) {
		return nil, false
	}
	return &g.doc.Contigs[i], true
}

// FindAnalysisEvent resolves an event id against the append-only event log.
func (g *GTO) FindAnalysisEvent(id string) (*genome.AnalysisEvent, bool) {
	for i := range g.doc.AnalysisEvents {
		if g.doc.AnalysisEvents[i].ID == id {
			return &g.doc.AnalysisEvents[i], true
		}
	}
	return nil, false
}

// UpdateIndexes rebuilds both transient indexes from the current contig and
// feature sequences. Idempotent; required after any bulk mutation before
// indexed lookup.
func (g *GTO) UpdateIndexes() {
	g.featureIndex = make(map[string]int, len(g.doc.Features))
	for i := range g.doc.Features {
		g.featureIndex[g.doc.Features[i].ID] = i
	}
	g.contigIndex = make(map[string]int, len(g.doc.Contigs))
	for i := range g.doc.Contigs {
		g.contigIndex[g.doc.Contigs[i].ID] = i
	}
}

// PrepareForReturn projects the aggregate back to the plain document form.
// The result carries no transient state and is safe to serialize.
func (g *GTO) PrepareForReturn() genome.Document {
	return g.doc
}

func (g *GTO) observe(ctx context.Context, operation string, start time.Time, errp *error) {
	if g.metrics == nil {
		return
	}
	g.metrics.Observe(ctx, operation, *errp == nil, g.env.Now().Sub(start))
}

func splitAliases(s string) []string {
	var out []string
	for _, a := range strings.Split(s, ",") {
		if a != "" {
			out = append(out, a)
		}
	}
	return out
}
