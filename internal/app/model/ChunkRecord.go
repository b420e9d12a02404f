package model

// ChunkRecord is one row of the embedding table.
type ChunkRecord struct {
	SourceName   string    `json:"source_name"`
	SourceHash   string    `json:"source_hash"`
	Offset       int       `json:"offset"`
	ChunkHash    string    `json:"chunk_hash"`
	ChunkContent string    `json:"chunk_content"`
	Embedding    []float32 `json:"embedding"`
}
