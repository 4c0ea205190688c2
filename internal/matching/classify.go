package matching

import "github.com/licitops/secop-scout/internal/secop"

const nonCorporateWarning = "classified as a personal-services engagement, penalty applied"

// corporateByRules decides whether the process is a corporate contract or an
// engagement aimed at a natural person. Whitelisted contract types win over
// the description scan: an inspection contract stays corporate no matter how
// its description reads.
func corporateByRules(voc *Vocabulary, t *secop.Tender) bool {
	if voc.IsCorporateType(t.ContractType) {
		return true
	}
	return !voc.HasPersonalServicePhrase(t.Description)
}

// actionableByRules reports whether the process can still receive offers. The
// closed-phase and closed-status vocabularies are checked independently even
// though their labels overlap; both checks are kept as observed in the feed.
func actionableByRules(voc *Vocabulary, t *secop.Tender) bool {
	if voc.IsClosedPhase(t.Phase) {
		return false
	}
	if voc.IsClosedStatus(t.Status) {
		return false
	}
	return voc.IsAcceptingOffersPhase(t.Phase)
}
