package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"memo2vec/cmd/m2v/cmd/embed"
	"memo2vec/cmd/m2v/cmd/export"
	"memo2vec/cmd/m2v/cmd/search"
	"memo2vec/cmd/m2v/cmd/shared"
	"memo2vec/cmd/m2v/cmd/stats"
	"memo2vec/cmd/m2v/cmd/transcribe"
	"memo2vec/cmd/m2v/cmd/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "m2v",
	Short: "Transcribe voice memos and embed the transcripts for semantic search",
	Long: `Transcribe voice memos and embed the transcripts for semantic search.
- transcribe turns a directory of audio files into text files with Whisper
- embed chunks the text files, embeds new chunks and appends them to a table
- search, export and stats read what the first two produced`,
	SilenceUsage:     true,
	TraverseChildren: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(transcribe.Cmd)
	rootCmd.AddCommand(embed.Cmd)
	rootCmd.AddCommand(search.Cmd)
	rootCmd.AddCommand(export.Cmd)
	rootCmd.AddCommand(stats.Cmd)
	rootCmd.AddCommand(version.Cmd)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&shared.Global.ConfigFile, "config", "", "YAML config file")
	flags.BoolVarP(&shared.Global.Verbose, "verbose", "V", false, "verbose output")
	flags.StringVar(&shared.Global.MetricsFile, "metrics-file", "", "write Prometheus metrics to this file after the run")
	flags.BoolVar(&shared.Global.Progress, "progress", false, "show progress bars even when stderr is not a terminal")
}
