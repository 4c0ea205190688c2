package matching

import (
	"fmt"

	"github.com/licitops/secop-scout/internal/secop"
)

// adviceFor selects the strategic recommendation. An external hint with
// advice text short-circuits the whole tree. Otherwise the branches are
// evaluated strictly in order: closed process, low score (most specific
// failing pillar first: legal, financial, experience), medium score, high
// score.
func adviceFor(t *secop.Tender, res pillarResult, score int, actionable bool, hint *Hint) string {
	if hint.HasAdvice() {
		return *hint.Advice
	}

	if !actionable {
		return fmt.Sprintf("Process is closed (phase %q). Use it for market analysis only.", t.Phase)
	}

	if score < matchThreshold {
		switch {
		case !res.legalPassed:
			return "Score below threshold: seek a partner registered in the tender's category before bidding."
		case !res.financialPassed:
			return "Score below threshold: the budget exceeds your contracting capacity, consider a consortium with a financially stronger partner."
		case !res.experiencePassed:
			return "Score below threshold: no track record in this category, partner with an experienced contractor."
		default:
			// Only the classification penalty dragged the score down.
			return "Challenging profile for this process, consider a strategic alliance."
		}
	}

	if score < 90 {
		if !res.financialPassed {
			return "Good candidate, but capacity is tight: a financial partner would strengthen the offer."
		}
		return "Good candidate. Prepare a competitive offer."
	}

	return "Excellent fit. Focus on competitive pricing."
}
