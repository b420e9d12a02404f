// Package embedder turns transcripts into embedded chunk records and merges
// them into the persisted table, stopping at chunks the table already holds.
package embedder

import (
	"context"
	"time"

	"go.uber.org/zap"

	"memo2vec/internal/app/chunker"
	"memo2vec/internal/app/embedding/provider"
	"memo2vec/internal/app/errors"
	"memo2vec/internal/app/metrics"
	"memo2vec/internal/app/model"
	"memo2vec/internal/app/progress"
	"memo2vec/internal/app/table"
	"memo2vec/internal/app/util/files"
	"memo2vec/internal/app/utils"
	"memo2vec/internal/config"
)

// Options controls chunking and deduplication.
type Options struct {
	ChunkSize        int
	Stride           int
	EmptyPlaceholder string
	// DedupPolicy is config.DedupStop or config.DedupSkip.
	DedupPolicy string
}

// OptionsFromConfig picks the embedding options out of cfg.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		ChunkSize:        cfg.ChunkSize,
		Stride:           cfg.Stride,
		EmptyPlaceholder: cfg.EmptyPlaceholder,
		DedupPolicy:      cfg.DedupPolicy,
	}
}

// Result summarizes one run.
type Result struct {
	Transcripts    int // transcripts read
	ShortCircuited int // transcripts whose walk stopped at a known chunk
	Embedded       int // new rows
	Skipped        int // known chunks passed over
	TotalRows      int // rows in the saved table
}

type Embedder struct {
	provider provider.EmbeddingProvider
	store    table.Store
	opts     Options
	logger   *zap.Logger
	metrics  *metrics.Recorder
	progress *progress.Manager
}

// New returns an Embedder. metrics and progress may be nil; the caller waits
// on progress once it is done with the Embedder.
func New(p provider.EmbeddingProvider, store table.Store, opts Options, logger *zap.Logger,
	recorder *metrics.Recorder, pm *progress.Manager) *Embedder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Embedder{
		provider: p,
		store:    store,
		opts:     opts,
		logger:   logger,
		metrics:  recorder,
		progress: pm,
	}
}

// EmbedDirectory embeds the transcripts in inputDir and saves the merged
// table. Nothing is saved when any step fails.
func (e *Embedder) EmbedDirectory(ctx context.Context, inputDir string) (Result, error) {
	absDir, err := files.GetAbsolutePath(inputDir)
	if err != nil {
		return Result{}, err
	}
	e.logger.Info("Reading transcripts", zap.String("dir", absDir))

	transcripts, err := files.ReadTextFiles(absDir)
	if err != nil {
		return Result{}, err
	}

	prior, err := e.store.Load(ctx)
	if err != nil {
		return Result{}, err
	}
	if prior != nil {
		e.logger.Info("Table already exists, adding unembedded transcripts",
			zap.String("table", e.store.Location()),
			zap.Int("rows", prior.Len()),
			zap.Int("sources", len(prior.Sources())))
	}

	merged, res, err := e.Run(ctx, prior, transcripts)
	if err != nil {
		return res, err
	}

	e.logger.Info("Saving table", zap.String("table", e.store.Location()), zap.Int("rows", merged.Len()))
	if err := e.store.Save(ctx, merged); err != nil {
		return res, err
	}
	return res, nil
}

// Run chunks and embeds transcripts in order and returns prior's rows
// followed by the new rows. Only chunk hashes in prior count as known.
func (e *Embedder) Run(ctx context.Context, prior *table.Table, transcripts []model.Transcription) (*table.Table, Result, error) {
	var res Result
	if err := chunker.Validate(e.opts.ChunkSize, e.opts.Stride); err != nil {
		return nil, res, err
	}
	added := table.New()

	bar := e.progress.NewBar(len(transcripts), "Embedding", "memos")
	for _, tr := range transcripts {
		start := time.Now()
		stopped, err := e.embedTranscript(ctx, prior, tr, added, &res)
		if err != nil {
			bar.Abort()
			return nil, res, err
		}
		res.Transcripts++
		if stopped {
			res.ShortCircuited++
		}
		bar.Increment(time.Since(start))
	}
	bar.Complete()

	merged := table.Concat(prior, added)
	res.TotalRows = merged.Len()
	e.logger.Info("Embedding finished",
		zap.Int("transcripts", res.Transcripts),
		zap.Int("newRows", res.Embedded),
		zap.Int("shortCircuited", res.ShortCircuited),
		zap.Int("skippedChunks", res.Skipped),
		zap.Int("totalRows", res.TotalRows))
	return merged, res, nil
}

// embedTranscript appends the new chunks of tr to added and reports whether
// the walk stopped early at a known chunk.
func (e *Embedder) embedTranscript(ctx context.Context, prior *table.Table, tr model.Transcription,
	added *table.Table, res *Result) (bool, error) {
	content := tr.Content
	if content == "" {
		content = e.opts.EmptyPlaceholder
	}
	sourceHash := utils.HashString(content)
	logger := e.logger.With(zap.String("source", tr.Name))
	logger.Debug("Chunking transcript", zap.String("sourceHash", sourceHash), zap.Int("length", len(content)))

	embedded := 0
	for offset, chunk := range chunker.Chunks(content, e.opts.ChunkSize, e.opts.Stride) {
		if err := ctx.Err(); err != nil {
			return false, err
		}

		chunkHash := utils.HashString(chunk)
		if prior.Contains(chunkHash) {
			if e.opts.DedupPolicy == config.DedupSkip {
				logger.Debug("Skipping known chunk", zap.Int("offset", offset))
				res.Skipped++
				e.metrics.Chunk(metrics.OutcomeSkipped)
				continue
			}
			logger.Debug("Known chunk, stopping", zap.Int("offset", offset), zap.Int("embedded", embedded))
			if embedded == 0 {
				e.metrics.Transcript(metrics.OutcomeAlreadyStored)
			} else {
				e.metrics.Transcript(metrics.OutcomeShortCircuit)
			}
			return true, nil
		}

		start := time.Now()
		vector, err := e.provider.GenerateEmbedding(ctx, chunk)
		e.metrics.ObserveRequest("embedding", time.Since(start))
		if err != nil {
			return false, errors.Wrapf(errors.Mark(err, errors.ErrEmbeddingFailed), "%s at offset %d", tr.Name, offset)
		}

		added.Append(model.ChunkRecord{
			SourceName:   tr.Name,
			SourceHash:   sourceHash,
			Offset:       offset,
			ChunkHash:    chunkHash,
			ChunkContent: chunk,
			Embedding:    vector,
		})
		embedded++
		res.Embedded++
		e.metrics.Chunk(metrics.OutcomeEmbedded)
		logger.Debug("Embedded chunk", zap.Int("offset", offset), zap.Int("dimension", len(vector)))
	}

	e.metrics.Transcript(metrics.OutcomeNew)
	return false, nil
}
