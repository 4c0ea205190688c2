// Package pipeline runs the scoring engine over whole tender lists with
// bounded concurrency and best-effort external classification.
package pipeline

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/licitops/secop-scout/internal/ai"
	"github.com/licitops/secop-scout/internal/bidder"
	"github.com/licitops/secop-scout/internal/logger"
	"github.com/licitops/secop-scout/internal/matching"
	"github.com/licitops/secop-scout/internal/secop"
)

const (
	// defaultBatchSize bounds the external classifier request size and cost.
	defaultBatchSize = 20
	// defaultConcurrency bounds how many batches run at once.
	defaultConcurrency = 4
)

// Analyzer scores a list of tenders against one bidder profile. The profile
// and contract history are treated as read-only snapshots for the duration of
// a run; callers that mutate them concurrently must copy first.
type Analyzer struct {
	Logger     *zap.Logger
	Classifier ai.Classifier // optional; nil means rules only
	Options    matching.Options

	BatchSize   int
	Concurrency int
}

// Run analyzes every tender and returns one well-formed result per input, in
// input order. Classifier failures degrade to "hint absent" for the affected
// batch; they are logged, never propagated, because the surrounding flow
// depends on best-effort results across long lists.
func (a *Analyzer) Run(ctx context.Context, tenders *secop.Tenders, profile *bidder.Profile, contracts []bidder.ContractRecord) []*matching.Result {
	if tenders == nil || tenders.Len() == 0 {
		return []*matching.Result{}
	}

	batchSize := a.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	concurrency := a.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	items := tenders.Items
	results := make([]*matching.Result, len(items))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(concurrency)

	for start := 0; start < len(items); start += batchSize {
		end := start + batchSize
		if end > len(items) {
			end = len(items)
		}

		group.Go(func() error {
			batch := items[start:end]
			hints := a.classifyBatch(ctx, batch)

			for offset, tender := range batch {
				analysis := matching.Analyze(tender, profile, contracts, hints[tender.ID], a.Options)
				results[start+offset] = &matching.Result{Tender: tender, Analysis: analysis}

				if a.Logger != nil {
					a.Logger.Debug("tender analyzed", logger.AnalysisFields(tender.ID, analysis)...)
				}
			}
			return nil
		})
	}

	// The workers only ever return nil; the group is used for bounding.
	_ = group.Wait()

	if a.Logger != nil {
		a.Logger.Info("analysis completed",
			zap.Int("tenders", len(results)),
			zap.Int("matches", countMatches(results)),
		)
	}

	return results
}

// classifyBatch asks the external classifier for hints. Any failure means the
// whole batch proceeds without hints.
func (a *Analyzer) classifyBatch(ctx context.Context, batch []*secop.Tender) map[string]*matching.Hint {
	if a.Classifier == nil {
		return nil
	}

	hints, err := a.Classifier.Classify(ctx, batch)
	if err != nil {
		if a.Logger != nil {
			a.Logger.Warn("external classification failed, falling back to rules",
				zap.Int("batch_size", len(batch)),
				zap.Error(err),
			)
		}
		return nil
	}
	return hints
}

func countMatches(results []*matching.Result) int {
	matches := 0
	for _, result := range results {
		if result != nil && result.Analysis.Match {
			matches++
		}
	}
	return matches
}
