package converter

import (
	"context"
	"path/filepath"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"memo2vec/internal/app/api"
	"memo2vec/internal/app/errors"
	"memo2vec/internal/app/metrics"
	"memo2vec/internal/app/model"
	"memo2vec/internal/app/progress"
	"memo2vec/internal/app/util/files"
)

// Result summarizes one transcription run.
type Result struct {
	Found       int // audio files with the requested extension
	TooLarge    int
	Existing    int // already transcribed
	Transcribed int
}

// Converter transcribes a directory of audio files into text files.
type Converter struct {
	transcriber api.Transcriber
	logger      *zap.Logger
	metrics     *metrics.Recorder
	progress    *progress.Manager
}

// NewConverter returns a Converter. recorder and pm may be nil.
func NewConverter(transcriber api.Transcriber, logger *zap.Logger, recorder *metrics.Recorder, pm *progress.Manager) *Converter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Converter{
		transcriber: transcriber,
		logger:      logger,
		metrics:     recorder,
		progress:    pm,
	}
}

// Do transcribes every file in inputDir with extension ext and size at most
// maxBytes, writing <basename>.txt into outputDir. Files whose transcript
// already exists are skipped. The first service error stops the run; the
// transcripts written before it stay on disk.
func (c *Converter) Do(ctx context.Context, inputDir string, outputDir string, ext string, maxBytes int64) (Result, error) {
	var res Result

	absDir, err := files.GetAbsolutePath(inputDir)
	if err != nil {
		return res, err
	}
	c.logger.Info("Input directory", zap.String("dir", absDir))

	created, err := files.EnsureDir(outputDir)
	if err != nil {
		return res, errors.Mark(err, errors.ErrFileWriteFailed)
	}
	if created {
		c.logger.Info("Created output directory", zap.String("dir", outputDir))
	}

	fileInfos, err := files.GetAllFiles(absDir, ext)
	if err != nil {
		return res, err
	}
	res.Found = len(fileInfos)

	withinLimit := files.FilterBySize(fileInfos, maxBytes)
	for _, f := range lo.Without(fileInfos, withinLimit...) {
		c.logger.Info("Skipping file over size limit",
			zap.String("file", f.Name), zap.Float64("sizeMB", f.MegaBytes()))
		c.metrics.Transcription(metrics.OutcomeTooBig)
	}
	res.TooLarge = len(fileInfos) - len(withinLimit)

	bar := c.progress.NewBar(len(withinLimit), "Transcribing", "memos")
	for _, f := range withinLimit {
		start := time.Now()
		written, err := c.convertToText(ctx, f, outputDir)
		if err != nil {
			bar.Abort()
			c.metrics.Transcription(metrics.OutcomeFailed)
			return res, err
		}
		if written {
			res.Transcribed++
		} else {
			res.Existing++
		}
		bar.Increment(time.Since(start))
	}
	bar.Complete()

	c.logger.Info("Transcription finished",
		zap.Int("found", res.Found),
		zap.Int("transcribed", res.Transcribed),
		zap.Int("existing", res.Existing),
		zap.Int("tooLarge", res.TooLarge))
	return res, nil
}

func (c *Converter) convertToText(ctx context.Context, file model.FileInfo, outputDir string) (bool, error) {
	basename := files.TrimExt(file.Name)
	outputPath := filepath.Join(outputDir, basename+files.TranscriptExt)

	if files.Exists(outputPath) {
		c.logger.Info("Transcript already exists, skipping", zap.String("memo", basename))
		c.metrics.Transcription(metrics.OutcomeExists)
		return false, nil
	}

	c.logger.Info("Processing file", zap.String("file", file.Name), zap.Int("sizeMB", int(file.MegaBytes())))

	start := time.Now()
	transcription, err := c.transcriber.Transcript(ctx, file.FullPath)
	c.metrics.ObserveRequest("transcription", time.Since(start))
	if err != nil {
		return false, errors.Wrapf(errors.Mark(err, errors.ErrTranscribeFailed), "%s", file.Name)
	}

	if err := files.WriteTextFile(outputPath, transcription); err != nil {
		return false, err
	}
	c.metrics.Transcription(metrics.OutcomeWritten)
	c.logger.Info("Saved transcript", zap.String("memo", basename), zap.String("content", transcription))
	return true, nil
}
