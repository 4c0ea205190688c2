package bidder

// capacityMultiple mirrors how contracting entities size residual contracting
// capacity from working capital.
const capacityMultiple = 6

// Capacity turns the bidder's financial indicators into a single contracting
// capacity figure in COP. The second return value is false when no indicators
// are configured, which callers must treat as "capacity unavailable" rather
// than zero capacity.
func Capacity(ind *FinancialIndicators) (float64, bool) {
	if ind == nil {
		return 0, false
	}

	capacity := (ind.CurrentAssets - ind.CurrentLiabilities) * capacityMultiple
	if ind.AnnualRevenue > capacity {
		capacity = ind.AnnualRevenue
	}
	if capacity < 0 {
		capacity = 0
	}

	return capacity, true
}
