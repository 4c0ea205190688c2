package ai

import (
	"context"

	"github.com/licitops/secop-scout/internal/matching"
	"github.com/licitops/secop-scout/internal/secop"
)

// Classifier supplies optional classification hints for a batch of tenders,
// keyed by tender id. A tender missing from the result simply means "use the
// rules only" for that tender; the same applies to every absent hint field.
type Classifier interface {
	Classify(ctx context.Context, tenders []*secop.Tender) (map[string]*matching.Hint, error)
}
