package matching

import "github.com/licitops/secop-scout/internal/bidder"

// CategoryExperience summarizes historical contracts within one category key.
type CategoryExperience struct {
	Count      int
	TotalValue float64
}

// AggregateExperience maps historical contracts onto category keys. A
// contract carrying several codes counts toward each distinct key once.
// Contracts without usable codes are skipped; aggregation never fails.
func AggregateExperience(contracts []bidder.ContractRecord) map[string]CategoryExperience {
	agg := make(map[string]CategoryExperience)

	for _, contract := range contracts {
		seen := make(map[string]bool, len(contract.Codes))
		for _, code := range contract.Codes {
			key := categoryKey(code)
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true

			entry := agg[key]
			entry.Count++
			entry.TotalValue += contract.Value
			agg[key] = entry
		}
	}

	return agg
}

// MatchingExperience sums the aggregated experience across every category key
// matching one of the tender's codes.
func MatchingExperience(agg map[string]CategoryExperience, tenderCodes []string) CategoryExperience {
	var total CategoryExperience
	counted := make(map[string]bool, len(tenderCodes))

	for _, code := range tenderCodes {
		key := categoryKey(code)
		if key == "" || counted[key] {
			continue
		}
		counted[key] = true

		entry := agg[key]
		total.Count += entry.Count
		total.TotalValue += entry.TotalValue
	}

	return total
}
