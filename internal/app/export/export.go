package export

import (
	"github.com/tealeg/xlsx"

	"memo2vec/internal/app/errors"
	"memo2vec/internal/app/table"
)

const sheetName = "Chunks"

// ToExcel writes one row per table record to a workbook at outputFilePath.
// Embeddings are shown by their dimension only.
func ToExcel(t *table.Table, outputFilePath string) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet(sheetName)
	if err != nil {
		return err
	}

	headerRow := sheet.AddRow()
	headerRow.AddCell().Value = "Source"
	headerRow.AddCell().Value = "Source Hash"
	headerRow.AddCell().Value = "Offset"
	headerRow.AddCell().Value = "Chunk Hash"
	headerRow.AddCell().Value = "Chunk"
	headerRow.AddCell().Value = "Embedding Dimension"

	for _, r := range t.Rows() {
		row := sheet.AddRow()
		row.AddCell().Value = r.SourceName
		row.AddCell().Value = r.SourceHash
		row.AddCell().SetInt(r.Offset)
		row.AddCell().Value = r.ChunkHash
		row.AddCell().Value = r.ChunkContent
		row.AddCell().SetInt(len(r.Embedding))
	}

	if err := file.Save(outputFilePath); err != nil {
		return errors.Wrapf(errors.ErrFileWriteFailed, "%s: %v", outputFilePath, err)
	}
	return nil
}
