package table

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memo2vec/internal/app/errors"
)

func TestEncodeDecode_PreservesRows(t *testing.T) {
	original := New(row("memo-1", "h1", 0), row("memo-1", "h2", 500))
	original.rows[1].Embedding = []float32{-0.0123456789, 3.4028235e38, 0.5}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, original))

	decoded, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, original.Rows(), decoded.Rows())
	assert.True(t, decoded.Contains("h2"))
}

func TestEncode_EmptyTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, New()))
	assert.Equal(t, "[]\n", buf.String())

	decoded, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 0, decoded.Len())
}

func TestEncode_OneRowPerLine(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, New(row("a", "h1", 0), row("b", "h2", 0))))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 4)
	assert.Contains(t, lines[1], `"chunk_hash":"h1"`)
	assert.Contains(t, lines[2], `"source_name":"b"`)
}

func TestDecode_ColumnLayout(t *testing.T) {
	doc := `{
	  "voice_memo_name": {"0": "memo-1", "1": "memo-1", "10": "memo-2"},
	  "transcript_hash": {"0": "t1", "1": "t1", "10": "t2"},
	  "offset": {"0": 0, "1": 500, "10": 0},
	  "chunk_hash": {"0": "h1", "1": "h2", "10": "h3"},
	  "chunk_content": {"0": "abc", "1": "def", "10": "ghi"},
	  "chunk_embedding": {"0": [0.5, 1.5], "1": [2.5, 3.5], "10": [4.5, 5.5]},
	  "unrelated": {"0": true}
	}`

	tbl, err := Decode(strings.NewReader(doc))
	require.NoError(t, err)
	require.Equal(t, 3, tbl.Len())

	rows := tbl.Rows()
	assert.Equal(t, "memo-1", rows[0].SourceName)
	assert.Equal(t, "t1", rows[0].SourceHash)
	assert.Equal(t, 500, rows[1].Offset)
	assert.Equal(t, "h3", rows[2].ChunkHash, "index 10 sorts after 1")
	assert.Equal(t, "ghi", rows[2].ChunkContent)
	assert.Equal(t, []float32{4.5, 5.5}, rows[2].Embedding)
}

func TestDecode_Corrupt(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty", ""},
		{"scalar", "42"},
		{"truncated array", `[{"chunk_hash":"h1"`},
		{"row without hash", `[{"source_name":"a"}]`},
		{"columns without hash", `{"source_name":{"0":"a"}}`},
		{"non numeric index", `{"chunk_hash":{"x":"h1"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, errors.ErrTableCorrupt)
		})
	}
}
