package domain

// DefaultTopK is the number of chunks retrieved per question when no
// retrieval depth is configured.
const DefaultTopK = 4

// Chunk is a bounded-length span of page text prepared for embedding.
// Chunks are ephemeral: they exist between chunking and upsert, and are
// otherwise stored only as vectors in the external index.
type Chunk struct {
	// ID is the point identifier in the vector index.
	ID string

	// PageTitle links the chunk back to its page. The index is scoped by
	// this value when a page is re-indexed.
	PageTitle string

	// Content is the chunk text.
	Content string

	// Position is the ordinal position within the page.
	Position int

	// Embedding is the vector representation. Populated just before upsert.
	Embedding []float32
}

// ScoredChunk is a similarity search hit.
type ScoredChunk struct {
	Chunk Chunk

	// Score is the cosine similarity reported by the index.
	Score float64
}
