package matching

import (
	"sort"

	"github.com/licitops/secop-scout/internal/secop"
)

// Result pairs a tender with its analysis for listing and ranking.
type Result struct {
	Tender   *secop.Tender `json:"tender"`
	Analysis Analysis      `json:"analysis"`
}

// Rank orders results in place for display: actionable before closed, then
// corporate before personal-services, then score descending. The sort is
// stable, so results that tie on all three keys keep their input order. This
// is the single ranking policy shared by every listing in the tool.
func Rank(results []*Result) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i].Analysis, results[j].Analysis

		if a.Actionable != b.Actionable {
			return a.Actionable
		}
		if a.Corporate != b.Corporate {
			return a.Corporate
		}
		return a.Score > b.Score
	})
}
