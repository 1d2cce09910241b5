package core

import "genomecore/pkg/genome"

type (
	Contig        = genome.Contig
	Feature       = genome.Feature
	Location      = genome.Location
	Segment       = genome.Segment
	Annotation    = genome.Annotation
	AnalysisEvent = genome.AnalysisEvent
	CloseGenome   = genome.CloseGenome
	Document      = genome.Document
	Metadata      = genome.Metadata
)

const (
	StrandForward = genome.StrandForward
	StrandReverse = genome.StrandReverse
)
