package discovery

import "sort"

// Rank stable-sorts records so high confidence precedes medium precedes
// low, preserving relative order within each tier, then truncates to the
// target count. No other reordering happens.
func Rank(startups []*Startup, target int) []*Startup {
	sort.SliceStable(startups, func(i, j int) bool {
		return tierRank(startups[i].Confidence) < tierRank(startups[j].Confidence)
	})
	if target > 0 && len(startups) > target {
		startups = startups[:target]
	}
	return startups
}

func tierRank(c Confidence) int {
	switch c {
	case ConfidenceHigh:
		return 0
	case ConfidenceMedium:
		return 1
	default:
		return 2
	}
}
