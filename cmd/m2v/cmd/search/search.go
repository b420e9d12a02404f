package search

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"memo2vec/cmd/m2v/cmd/shared"
	"memo2vec/internal/app"
	"memo2vec/internal/app/errors"
	"memo2vec/internal/config"
)

var (
	tablePath   string
	query       string
	topK        int
	apiKey      string
	providerArg string
)

func init() {
	Cmd.Flags().StringVarP(&tablePath, "table", "t", "", "table file, or s3://bucket/key")
	Cmd.Flags().StringVarP(&query, "query", "q", "", "text to search for")
	Cmd.Flags().IntVarP(&topK, "top", "k", 5, "number of results")
	Cmd.Flags().StringVar(&apiKey, "api-key", "", "embedding API key (default from the environment)")
	Cmd.Flags().StringVar(&providerArg, "provider", config.DefaultProvider, "embedding provider used to build the table")

	Cmd.MarkFlagRequired("table")
	Cmd.MarkFlagRequired("query")
}

// Cmd represents the search command
var Cmd = &cobra.Command{
	Use:   "search",
	Short: "Find the chunks most similar to a query",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := shared.Setup("search", func(cfg *config.Config) {
			shared.StringFlag(cmd, "api-key", apiKey, &cfg.APIKey)
			shared.StringFlag(cmd, "provider", providerArg, &cfg.Embedding.Provider)
		})
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

		searcher, err := app.InitializeSearcher(ctx, rt.Config, rt.Logger)
		if err != nil {
			return err
		}
		hits, err := searcher.Search(ctx, tbl, query, topK)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for i, hit := range hits {
			fmt.Fprintf(out, "%d. %.4f  %s @%d\n   %s\n", i+1, hit.Similarity,
				hit.Record.SourceName, hit.Record.Offset,
				strings.ReplaceAll(hit.Record.ChunkContent, "\n", " "))
		}
		return nil
	},
}
