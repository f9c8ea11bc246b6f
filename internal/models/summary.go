package models

// Provenance records which summarization path produced a Summary.
type Provenance string

const (
	ProvenanceDirect      Provenance = "direct"
	ProvenanceChunked     Provenance = "chunked-combined"
	ProvenanceFallback    Provenance = "fallback-extractive"
	ProvenancePassThrough Provenance = "pass-through"
)

// Summary is the body text produced by the summarization stage.
type Summary struct {
	Text       string
	Provenance Provenance

	// Chunks is the number of chunks the article was split into; 0 in direct mode.
	Chunks int
	// ChunksSummarized counts chunks whose summarization call succeeded.
	ChunksSummarized int
}
