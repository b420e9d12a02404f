package model

// Transcription is a transcript artifact read back from disk. Name is the
// file name without its extension.
type Transcription struct {
	Name    string
	Content string
}
