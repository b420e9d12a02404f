package transcribe

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"memo2vec/cmd/m2v/cmd/shared"
	"memo2vec/internal/app"
	"memo2vec/internal/app/errors"
	"memo2vec/internal/config"
)

var (
	inputDir  string
	outputDir string
	apiKey    string
	maxMB     float64
	ext       string
)

func init() {
	Cmd.Flags().StringVarP(&inputDir, "input", "i", "", "voice memos directory")
	Cmd.Flags().StringVarP(&outputDir, "output", "o", "", "directory for the text transcripts")
	Cmd.Flags().StringVar(&apiKey, "api-key", "", "OpenAI API key (default $OPENAI_API_KEY)")
	Cmd.Flags().Float64Var(&maxMB, "max-mb", config.DefaultMaxSizeMB, "skip audio files larger than this many MB")
	Cmd.Flags().StringVar(&ext, "ext", config.DefaultAudioExt, "audio file extension")
}

// Cmd represents the transcribe command
var Cmd = &cobra.Command{
	Use:   "transcribe",
	Short: "Transcribe the voice memos in a directory to text files",
	Long: `Transcribe the voice memos in a directory to text files

- Iterate through the audio files in the input directory, oldest first
- Skip files over the size limit and files already transcribed
- Write <name>.txt to the output directory with OpenAI Whisper`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := shared.Setup("transcribe", func(cfg *config.Config) {
			shared.StringFlag(cmd, "input", inputDir, &cfg.InputDir)
			shared.StringFlag(cmd, "output", outputDir, &cfg.Output)
			shared.StringFlag(cmd, "api-key", apiKey, &cfg.APIKey)
			shared.StringFlag(cmd, "ext", ext, &cfg.AudioExt)
			if cmd.Flags().Changed("max-mb") {
				cfg.MaxSizeMB = maxMB
			}
		})
		if err != nil {
			return err
		}
		defer rt.Close()

		cfg := rt.Config
		if cfg.InputDir == "" {
			return errors.RequiredField("input")
		}
		if cfg.Output == "" {
			return errors.RequiredField("output")
		}

		ctx, stop := shared.Context()
		defer stop()

		converter, err := app.InitializeConverter(cfg, rt.Logger, rt.Metrics, rt.Progress)
		if err != nil {
			return err
		}

		_, err = converter.Do(ctx, cfg.InputDir, cfg.Output, cfg.AudioExt, cfg.MaxSizeBytes())
		if err != nil {
			rt.Logger.Error("Transcription failed", zap.Error(err))
			return err
		}
		return nil
	},
}
