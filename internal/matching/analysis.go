// Package matching implements the opportunity matching and scoring engine:
// a pure function family that turns one tender, one bidder profile and
// optional historical data into a reproducible compatibility verdict.
package matching

import (
	"github.com/licitops/secop-scout/internal/bidder"
	"github.com/licitops/secop-scout/internal/secop"
)

// Analysis is the immutable verdict for one tender. It is created fresh per
// Analyze call and never mutated afterwards.
type Analysis struct {
	// Score is always within [0, 100].
	Score int `json:"score"`
	// Match is true iff the process is corporate and the score reaches the
	// match threshold.
	Match      bool     `json:"match"`
	Reasons    []string `json:"reasons"`
	Warnings   []string `json:"warnings"`
	Advice     string   `json:"advice"`
	Corporate  bool     `json:"corporate"`
	Actionable bool     `json:"actionable"`
}

// CapacityFunc resolves the bidder's contracting capacity from the raw
// financial indicators. The boolean is false when capacity is unavailable.
// The computation itself is owned outside this package and consumed as an
// opaque collaborator.
type CapacityFunc func(*bidder.FinancialIndicators) (float64, bool)

// Options tunes an Analyze call. The zero value picks the default capacity
// formula and the default vocabulary.
type Options struct {
	Capacity   CapacityFunc
	Vocabulary *Vocabulary
}

// Analyze scores one tender against one bidder profile. It is a pure
// function: no I/O, no shared state, and safe to call concurrently. It never
// panics and always returns a well-formed result — missing or malformed
// inputs degrade into warnings, not failures.
func Analyze(t *secop.Tender, profile *bidder.Profile, contracts []bidder.ContractRecord, hint *Hint, opts Options) Analysis {
	if t == nil {
		t = &secop.Tender{}
	}
	if profile == nil {
		profile = &bidder.Profile{}
	}

	voc := opts.Vocabulary
	if voc == nil {
		voc = DefaultVocabulary()
	}
	capacityFn := opts.Capacity
	if capacityFn == nil {
		capacityFn = bidder.Capacity
	}

	tenderCodes := ExtractCategories(t)
	agg := AggregateExperience(contracts)
	capacity, capacityAvailable := capacityFn(profile.Indicators)

	res := scorePillars(t, profile, tenderCodes, agg, capacity, capacityAvailable)

	// Pillar total is capped before any classification penalty.
	score := res.total
	if score > maxScore {
		score = maxScore
	}

	corporate := corporateByRules(voc, t)
	if hint != nil && hint.Corporate != nil {
		corporate = *hint.Corporate
	}
	if !corporate {
		score -= nonCorporatePenalty
		if score < 0 {
			score = 0
		}
		res.warnings = append(res.warnings, nonCorporateWarning)
	}

	actionable := actionableByRules(voc, t)
	if hint != nil && hint.Actionable != nil {
		actionable = *hint.Actionable
	}

	return Analysis{
		Score:      score,
		Match:      corporate && score >= matchThreshold,
		Reasons:    res.reasons,
		Warnings:   res.warnings,
		Advice:     adviceFor(t, res, score, actionable, hint),
		Corporate:  corporate,
		Actionable: actionable,
	}
}
