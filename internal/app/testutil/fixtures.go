package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// AudioFixture describes one audio file in a test directory.
type AudioFixture struct {
	Name    string
	Size    int
	ModTime time.Time
}

// TestTranscripts provides sample transcript texts keyed by memo name.
var TestTranscripts = map[string]string{
	"grocery list":    "Remember to buy oat milk, eggs and coffee beans on the way home.",
	"garden idea":     "Idea for the weekend: sketch the garden layout and price out raised beds.",
	"meeting recap":   "Recap of the planning call. We agreed to ship the beta on Friday and revisit pricing next month.",
	"empty recording": "",
}

// wavHeader is a minimal mono 16 kHz PCM header; padded with silence it
// forms a valid WAV file of any size.
var wavHeader = []byte{
	0x52, 0x49, 0x46, 0x46, // "RIFF"
	0x24, 0x08, 0x00, 0x00, // File size
	0x57, 0x41, 0x56, 0x45, // "WAVE"
	0x66, 0x6D, 0x74, 0x20, // "fmt "
	0x10, 0x00, 0x00, 0x00, // Chunk size
	0x01, 0x00, // Audio format (PCM)
	0x01, 0x00, // Channels (mono)
	0x80, 0x3E, 0x00, 0x00, // Sample rate (16000)
	0x00, 0x7D, 0x00, 0x00, // Byte rate
	0x02, 0x00, // Block align
	0x10, 0x00, // Bits per sample
	0x64, 0x61, 0x74, 0x61, // "data"
	0x00, 0x08, 0x00, 0x00, // Data size
}

// CreateAudioDir writes fixtures into a fresh temporary directory and
// returns its path. Sizes below the header length still get a full header.
func CreateAudioDir(t *testing.T, fixtures ...AudioFixture) string {
	t.Helper()

	dir := t.TempDir()
	for _, f := range fixtures {
		data := make([]byte, max(f.Size, len(wavHeader)))
		copy(data, wavHeader)

		path := filepath.Join(dir, f.Name)
		if err := os.WriteFile(path, data, 0644); err != nil {
			t.Fatalf("Failed to create test audio file: %v", err)
		}
		if !f.ModTime.IsZero() {
			if err := os.Chtimes(path, f.ModTime, f.ModTime); err != nil {
				t.Fatalf("Failed to set modification time: %v", err)
			}
		}
	}
	return dir
}

// CreateTranscriptDir writes each transcript as <name>.txt into a fresh
// temporary directory and returns its path.
func CreateTranscriptDir(t *testing.T, transcripts map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range transcripts {
		if err := os.WriteFile(filepath.Join(dir, name+".txt"), []byte(content), 0644); err != nil {
			t.Fatalf("Failed to create transcript: %v", err)
		}
	}
	return dir
}
