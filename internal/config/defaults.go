package config

// Pipeline defaults
const (
	DefaultChunkSize        = 1500
	DefaultStride           = 500
	DefaultMaxSizeMB        = 25
	DefaultAudioExt         = ".m4a"
	DefaultEmptyPlaceholder = "empty string"
	DefaultDedupPolicy      = DedupStop
)

// Service defaults
const (
	DefaultProvider      = "openai"
	DefaultWhisperModel  = "whisper-1"
	DefaultWhisperPrompt = "This is a transcript of an iPhone voice memo: "
	DefaultMockDimension = 8
)

// Dedup policies for chunks whose hash is already in the table.
const (
	// DedupStop abandons the rest of a transcript at the first known chunk.
	DedupStop = "stop"
	// DedupSkip skips only the known chunk and keeps walking.
	DedupSkip = "skip"
)

func getEnvOrDefault(key, defaultValue string, lookup func(string) (string, bool)) string {
	if value, ok := lookup(key); ok && value != "" {
		return value
	}
	return defaultValue
}
