package table

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"

	"memo2vec/internal/app/errors"
	"memo2vec/internal/app/model"
)

// Encode writes t as a JSON array with one row object per line.
func Encode(w io.Writer, t *Table) error {
	var buf bytes.Buffer
	buf.WriteString("[")
	for i, row := range t.Rows() {
		data, err := json.Marshal(row)
		if err != nil {
			return fmt.Errorf("encode row %d (%s@%d): %w", i, row.SourceName, row.Offset, err)
		}
		if i > 0 {
			buf.WriteString(",")
		}
		buf.WriteString("\n")
		buf.Write(data)
	}
	if t.Len() > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString("]\n")

	_, err := w.Write(buf.Bytes())
	return err
}

// Decode reads a table written by Encode. It also accepts the
// column-oriented layout {"column": {"0": value, ...}} used by earlier
// versions of the tool, including their column names.
func Decode(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.Wrap(errors.ErrTableCorrupt, "empty document")
	}

	var rows []model.ChunkRecord
	switch data[0] {
	case '[':
		if err := json.Unmarshal(data, &rows); err != nil {
			return nil, errors.Wrapf(errors.ErrTableCorrupt, "%v", err)
		}
	case '{':
		rows, err = decodeColumns(data)
		if err != nil {
			return nil, err
		}
	default:
		return nil, errors.Wrapf(errors.ErrTableCorrupt, "unexpected leading %q", data[0])
	}

	for i, row := range rows {
		if row.ChunkHash == "" {
			return nil, errors.Wrapf(errors.ErrTableCorrupt, "row %d has no chunk_hash", i)
		}
	}
	return New(rows...), nil
}

// columnAliases maps column names of the column-oriented layout to fields.
var columnAliases = map[string]string{
	"source_name":     "source_name",
	"voice_memo_name": "source_name",
	"source_hash":     "source_hash",
	"transcript_hash": "source_hash",
	"offset":          "offset",
	"chunk_hash":      "chunk_hash",
	"chunk_content":   "chunk_content",
	"embedding":       "embedding",
	"chunk_embedding": "embedding",
}

func decodeColumns(data []byte) ([]model.ChunkRecord, error) {
	var columns map[string]map[string]json.RawMessage
	if err := json.Unmarshal(data, &columns); err != nil {
		return nil, errors.Wrapf(errors.ErrTableCorrupt, "%v", err)
	}
	if _, ok := columns["chunk_hash"]; !ok {
		return nil, errors.Wrap(errors.ErrTableCorrupt, "missing chunk_hash column")
	}

	var indexes []int
	for key := range columns["chunk_hash"] {
		idx, err := strconv.Atoi(key)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrTableCorrupt, "row index %q", key)
		}
		indexes = append(indexes, idx)
	}
	slices.Sort(indexes)

	rows := make([]model.ChunkRecord, 0, len(indexes))
	for _, idx := range indexes {
		// Rebuild one row object under canonical names and decode it.
		obj := make(map[string]json.RawMessage, len(columns))
		for name, values := range columns {
			field, known := columnAliases[name]
			if !known {
				continue
			}
			if v, ok := values[strconv.Itoa(idx)]; ok {
				obj[field] = v
			}
		}
		raw, err := json.Marshal(obj)
		if err != nil {
			return nil, err
		}
		var row model.ChunkRecord
		if err := json.Unmarshal(raw, &row); err != nil {
			return nil, errors.Wrapf(errors.ErrTableCorrupt, "row %d: %v", idx, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
