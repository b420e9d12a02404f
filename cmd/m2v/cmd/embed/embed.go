package embed

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"memo2vec/cmd/m2v/cmd/shared"
	"memo2vec/internal/app"
	"memo2vec/internal/app/errors"
	"memo2vec/internal/config"
)

var (
	inputDir    string
	output      string
	apiKey      string
	chunkSize   int
	stride      int
	providerArg string
	model       string
	dedupPolicy string
)

func init() {
	Cmd.Flags().StringVarP(&inputDir, "input", "i", "", "transcripts directory")
	Cmd.Flags().StringVarP(&output, "output", "o", "", "table file, or s3://bucket/key")
	Cmd.Flags().StringVar(&apiKey, "api-key", "", "embedding API key (default from the environment)")
	Cmd.Flags().IntVar(&chunkSize, "chunk", config.DefaultChunkSize, "chunk size in characters")
	Cmd.Flags().IntVar(&stride, "stride", config.DefaultStride, "offset between chunk starts")
	Cmd.Flags().StringVar(&providerArg, "provider", config.DefaultProvider, "embedding provider: openai, gemini, ollama or mock")
	Cmd.Flags().StringVar(&model, "model", "", "embedding model (default depends on the provider)")
	Cmd.Flags().StringVar(&dedupPolicy, "dedup-policy", config.DefaultDedupPolicy,
		"what to do at a chunk already in the table: stop the transcript or skip the chunk")
}

// Cmd represents the embed command
var Cmd = &cobra.Command{
	Use:   "embed",
	Short: "Chunk and embed transcripts into the result table",
	Long: `Chunk and embed transcripts into the result table

- Split each transcript into overlapping chunks
- Stop at the first chunk already in the table (or skip it with --dedup-policy skip)
- Embed the new chunks and append them to the table, saved once at the end`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := shared.Setup("embed", func(cfg *config.Config) {
			shared.StringFlag(cmd, "input", inputDir, &cfg.InputDir)
			shared.StringFlag(cmd, "output", output, &cfg.Output)
			shared.StringFlag(cmd, "api-key", apiKey, &cfg.APIKey)
			shared.IntFlag(cmd, "chunk", chunkSize, &cfg.ChunkSize)
			shared.IntFlag(cmd, "stride", stride, &cfg.Stride)
			shared.StringFlag(cmd, "provider", providerArg, &cfg.Embedding.Provider)
			shared.StringFlag(cmd, "model", model, &cfg.Embedding.Model)
			shared.StringFlag(cmd, "dedup-policy", dedupPolicy, &cfg.DedupPolicy)
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

		embedder, err := app.InitializeEmbedder(ctx, cfg, rt.Logger, rt.Metrics, rt.Progress)
		if err != nil {
			return err
		}

		if _, err := embedder.EmbedDirectory(ctx, cfg.InputDir); err != nil {
			rt.Logger.Error("Embedding failed, table not saved", zap.Error(err))
			return err
		}
		return nil
	},
}
