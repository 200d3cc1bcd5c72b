package queries

import (
	"sort"

	"pledgewall/contexts/donation-pledges/pledge-service/domain/entities"
)

// LatestPerDonor reduces a pledge set to the most recent pledge per
// distinct email. Emails are compared case-sensitively. Equal timestamps
// tie-break on the lexicographically smallest id, so the result is
// deterministic regardless of input order. The returned slice is sorted by
// email for the same reason.
func LatestPerDonor(pledges []entities.Pledge) []entities.Pledge {
	latest := make(map[string]entities.Pledge, len(pledges))
	for _, pledge := range pledges {
		current, ok := latest[pledge.Email]
		if !ok {
			latest[pledge.Email] = pledge
			continue
		}
		if pledge.Timestamp.After(current.Timestamp) ||
			(pledge.Timestamp.Equal(current.Timestamp) && pledge.ID < current.ID) {
			latest[pledge.Email] = pledge
		}
	}

	items := make([]entities.Pledge, 0, len(latest))
	for _, pledge := range latest {
		items = append(items, pledge)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Email < items[j].Email
	})
	return items
}

// TotalPledged sums amounts over the latest-per-donor set, never over raw
// records, so a donor who amended twice is counted once.
func TotalPledged(pledges []entities.Pledge) int64 {
	var total int64
	for _, pledge := range LatestPerDonor(pledges) {
		total += pledge.Amount
	}
	return total
}
