package export

import (
	"fmt"

	"github.com/spf13/cobra"

	"memo2vec/cmd/m2v/cmd/shared"
	"memo2vec/internal/app"
	"memo2vec/internal/app/errors"
	appexport "memo2vec/internal/app/export"
)

var tablePath string
var outputFilePath string

func init() {
	Cmd.Flags().StringVarP(&tablePath, "table", "t", "", "table file, or s3://bucket/key")
	Cmd.Flags().StringVarP(&outputFilePath, "outputFilePath", "o", "", "set outputFilePath")

	Cmd.MarkFlagRequired("table")
	Cmd.MarkFlagRequired("outputFilePath")
}

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export the result table to excel",
	Long: `Export the result table to excel

- One row per chunk; the embedding column shows the vector dimension only`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := shared.Setup("export", nil)
		if err != nil {
			return err
		}
		defer rt.Close()

		ctx, stop := shared.Context()
		defer stop()

		store, err := app.OpenTable(rt.Config, tablePath)
		if err != nil {
			return err
		}
		tbl, err := store.Load(ctx)
		if err != nil {
			return err
		}
		if tbl == nil {
			return errors.Wrapf(errors.ErrTableLoadFailed, "%s does not exist", tablePath)
		}

		if err := appexport.ToExcel(tbl, outputFilePath); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "export finished, %d rows written to %v\n", tbl.Len(), outputFilePath)
		return nil
	},
}
