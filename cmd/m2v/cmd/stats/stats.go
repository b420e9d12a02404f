package stats

import (
	"fmt"

	"github.com/spf13/cobra"

	"memo2vec/internal/app/util/files"
)

var transcriptDir string

func init() {
	Cmd.Flags().StringVarP(&transcriptDir, "input", "i", "", "transcripts directory")
	Cmd.MarkFlagRequired("input")
}

// Cmd represents the stats command
var Cmd = &cobra.Command{
	Use:   "stats",
	Short: "Count transcripts and transcribed words",
	RunE: func(cmd *cobra.Command, args []string) error {
		count, words, err := files.CountWords(transcriptDir)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "transcripts: %d\nwords: %d\n", count, words)
		return nil
	},
}
