package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/licitops/secop-scout/internal/secop"
)

func TestAdviceFor(t *testing.T) {
	tender := &secop.Tender{Phase: "Celebrado"}

	t.Run("hint advice short-circuits everything", func(t *testing.T) {
		advice := "Hinted."
		got := adviceFor(tender, pillarResult{}, 0, false, &Hint{Advice: &advice})
		assert.Equal(t, "Hinted.", got)
	})

	t.Run("closed process mentions the phase", func(t *testing.T) {
		got := adviceFor(tender, pillarResult{}, 100, false, nil)
		assert.Contains(t, got, "Celebrado")
		assert.Contains(t, got, "market analysis")
	})

	t.Run("legal failure has priority", func(t *testing.T) {
		res := pillarResult{legalPassed: false, financialPassed: false, experiencePassed: false}
		got := adviceFor(tender, res, 40, true, nil)
		assert.Contains(t, got, "registered in the tender's category")
	})

	t.Run("financial failure comes second", func(t *testing.T) {
		res := pillarResult{legalPassed: true, financialPassed: false, experiencePassed: false}
		got := adviceFor(tender, res, 40, true, nil)
		assert.Contains(t, got, "contracting capacity")
	})

	t.Run("experience failure comes third", func(t *testing.T) {
		res := pillarResult{legalPassed: true, financialPassed: true, experiencePassed: false}
		got := adviceFor(tender, res, 40, true, nil)
		assert.Contains(t, got, "track record")
	})

	t.Run("penalty-only low score gets the generic message", func(t *testing.T) {
		res := pillarResult{legalPassed: true, financialPassed: true, experiencePassed: true}
		got := adviceFor(tender, res, 59, true, nil)
		assert.Contains(t, got, "strategic alliance")
	})

	t.Run("medium score with financial gap suggests a partner", func(t *testing.T) {
		res := pillarResult{legalPassed: true, financialPassed: false, experiencePassed: true}
		got := adviceFor(tender, res, 75, true, nil)
		assert.Contains(t, got, "financial partner")
	})

	t.Run("medium score", func(t *testing.T) {
		res := pillarResult{legalPassed: true, financialPassed: true, experiencePassed: true}
		got := adviceFor(tender, res, 75, true, nil)
		assert.Contains(t, got, "Good candidate")
	})

	t.Run("high score", func(t *testing.T) {
		res := pillarResult{legalPassed: true, financialPassed: true, experiencePassed: true}
		got := adviceFor(tender, res, 95, true, nil)
		assert.Contains(t, got, "competitive pricing")
	})
}
