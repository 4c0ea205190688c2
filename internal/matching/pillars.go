package matching

import (
	"fmt"

	"github.com/licitops/secop-scout/internal/bidder"
	"github.com/licitops/secop-scout/internal/secop"
)

const (
	legalWeight      = 30
	financialWeight  = 30
	experienceWeight = 40
	locationBonus    = 5

	maxScore       = 100
	matchThreshold = 60

	nonCorporatePenalty = 40
)

// pillarResult carries the pre-classification pillar outcome. The per-pillar
// pass flags feed the advice decision tree.
type pillarResult struct {
	total int

	legalPassed      bool
	financialPassed  bool
	experiencePassed bool

	reasons  []string
	warnings []string
}

// scorePillars runs the three weighted pillars plus the location bonus.
// Every check contributes exactly one reason (pass) or one warning (fail),
// with wording specific to the cause of the failure.
func scorePillars(t *secop.Tender, profile *bidder.Profile, tenderCodes []string, agg map[string]CategoryExperience, capacity float64, capacityAvailable bool) pillarResult {
	var res pillarResult

	// Legal pillar: category compatibility.
	switch {
	case len(profile.Categories) == 0:
		res.warnings = append(res.warnings, "bidder has no registered categories")
	case len(tenderCodes) == 0:
		res.warnings = append(res.warnings, "tender publishes no usable category code")
	case anyCategoryMatch(profile.Categories, tenderCodes):
		res.legalPassed = true
		res.total += legalWeight
		res.reasons = append(res.reasons, fmt.Sprintf("tender category %s is covered by the bidder's registration", tenderCodes[0]))
	default:
		res.warnings = append(res.warnings, fmt.Sprintf("no registered category matches tender category %s", tenderCodes[0]))
	}

	// Financial pillar: capacity against the stated budget. "Not configured"
	// and "insufficient" are distinct warnings on purpose.
	switch {
	case !capacityAvailable:
		res.warnings = append(res.warnings, "no financial indicators configured at all")
	case t.Budget <= 0:
		res.warnings = append(res.warnings, "tender does not state a budget")
	case capacity >= t.Budget:
		res.financialPassed = true
		res.total += financialWeight
		res.reasons = append(res.reasons, fmt.Sprintf("contracting capacity of %.0f COP covers the %.0f COP budget", capacity, t.Budget))
	default:
		res.warnings = append(res.warnings, fmt.Sprintf("contracting capacity insufficient by %.0f COP", t.Budget-capacity))
	}

	// Experience pillar: prior contracts in matching categories.
	if exp := MatchingExperience(agg, tenderCodes); exp.Count > 0 {
		res.experiencePassed = true
		res.total += experienceWeight
		res.reasons = append(res.reasons, fmt.Sprintf("%d prior contracts in matching categories", exp.Count))
	} else {
		res.warnings = append(res.warnings, "no prior contracts in matching categories")
	}

	// Location bonus.
	if location := t.Location(); location != "" {
		res.total += locationBonus
		res.reasons = append(res.reasons, fmt.Sprintf("process located in %s", location))
	} else {
		res.warnings = append(res.warnings, "tender publishes no location")
	}

	return res
}
