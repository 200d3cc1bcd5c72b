package application

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	pledgequeries "pledgewall/contexts/donation-pledges/pledge-service/application/queries"
	"pledgewall/contexts/donation-pledges/pledge-service/domain/entities"
)

const (
	SortAscending  = "asc"
	SortDescending = "desc"
)

// Filter is the admin view's query specification. All criteria are
// optional and combine with AND. Amount and date ranges are inclusive.
type Filter struct {
	Search        string
	MinAmount     *int64
	MaxAmount     *int64
	StartDate     *time.Time
	EndDate       *time.Time
	SortColumn    string
	SortDirection string
}

// Stats summarize the campaign. They are always computed over the
// latest-per-donor set of the full pledge population, never over the
// filtered list.
type Stats struct {
	TotalAmount   int64
	AveragePledge float64
	UniqueDonors  int
	TopDonor      *entities.Pledge
}

// Group is the filtered, sorted pledges of one email, in first-appearance
// order of the sorted result.
type Group struct {
	Email   string
	Pledges []entities.Pledge
}

// Report is the full admin view over one pledge population.
type Report struct {
	Pledges []entities.Pledge
	Groups  []Group
	Stats   Stats
}

// BuildReport filters, sorts and groups the pledge set and computes the
// summary statistics. It is a pure function of its inputs.
func BuildReport(all []entities.Pledge, filter Filter) Report {
	filtered := applyFilter(all, filter)
	sortPledges(filtered, filter)

	return Report{
		Pledges: filtered,
		Groups:  groupByEmail(filtered),
		Stats:   buildStats(all),
	}
}

func applyFilter(all []entities.Pledge, filter Filter) []entities.Pledge {
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	items := make([]entities.Pledge, 0, len(all))
	for _, pledge := range all {
		if search != "" &&
			!strings.Contains(strings.ToLower(pledge.Name), search) &&
			!strings.Contains(strings.ToLower(pledge.Email), search) &&
			!strings.Contains(strings.ToLower(pledge.Organization), search) {
			continue
		}
		if filter.MinAmount != nil && pledge.Amount < *filter.MinAmount {
			continue
		}
		if filter.MaxAmount != nil && pledge.Amount > *filter.MaxAmount {
			continue
		}
		if filter.StartDate != nil && pledge.Timestamp.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && pledge.Timestamp.After(*filter.EndDate) {
			continue
		}
		items = append(items, pledge)
	}
	return items
}

func sortPledges(items []entities.Pledge, filter Filter) {
	ascending := filter.SortDirection == SortAscending
	collator := collate.New(language.Und)

	byString := func(value func(entities.Pledge) string) func(i, j int) bool {
		return func(i, j int) bool {
			cmp := collator.CompareString(value(items[i]), value(items[j]))
			if ascending {
				return cmp < 0
			}
			return cmp > 0
		}
	}

	var less func(i, j int) bool
	switch filter.SortColumn {
	case "name":
		less = byString(func(p entities.Pledge) string { return p.Name })
	case "email":
		less = byString(func(p entities.Pledge) string { return p.Email })
	case "organization":
		less = byString(func(p entities.Pledge) string { return p.Organization })
	case "amount":
		less = func(i, j int) bool {
			if ascending {
				return items[i].Amount < items[j].Amount
			}
			return items[i].Amount > items[j].Amount
		}
	default: // timestamp
		less = func(i, j int) bool {
			if ascending {
				return items[i].Timestamp.Before(items[j].Timestamp)
			}
			return items[i].Timestamp.After(items[j].Timestamp)
		}
	}
	sort.SliceStable(items, less)
}

func groupByEmail(items []entities.Pledge) []Group {
	index := make(map[string]int, len(items))
	groups := make([]Group, 0, len(items))
	for _, pledge := range items {
		at, ok := index[pledge.Email]
		if !ok {
			index[pledge.Email] = len(groups)
			groups = append(groups, Group{Email: pledge.Email})
			at = len(groups) - 1
		}
		groups[at].Pledges = append(groups[at].Pledges, pledge)
	}
	return groups
}

func buildStats(all []entities.Pledge) Stats {
	latest := pledgequeries.LatestPerDonor(all)
	if len(latest) == 0 {
		return Stats{}
	}

	var total int64
	top := latest[0]
	for _, pledge := range latest {
		total += pledge.Amount
		if pledge.Amount > top.Amount ||
			(pledge.Amount == top.Amount && (pledge.Timestamp.Before(top.Timestamp) ||
				(pledge.Timestamp.Equal(top.Timestamp) && pledge.ID < top.ID))) {
			top = pledge
		}
	}
	return Stats{
		TotalAmount:   total,
		AveragePledge: float64(total) / float64(len(latest)),
		UniqueDonors:  len(latest),
		TopDonor:      &top,
	}
}
