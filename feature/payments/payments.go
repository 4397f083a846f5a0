package payments

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"fansly-utils/core/snapshot"
)

// Amount converts the remote fixed-point price into a dollar value.
func Amount(price int64) float64 {
	return float64(price) / 1000
}

// AccountTotal is the total spent on one account.
type AccountTotal struct {
	// Name is the account's username when known, otherwise the raw id.
	Name  string
	Price int64
}

// ByAccounts aggregates spending per account, cheapest first.
func ByAccounts(snap *snapshot.Snapshot) []AccountTotal {
	totals := map[string]int64{}
	for _, payment := range snap.Payments {
		totals[payment.AccountID] += payment.Price
	}

	out := make([]AccountTotal, 0, len(totals))
	for accountID, price := range totals {
		name := accountID
		if record := snap.AccountByID(accountID); record != nil {
			name = record.Username
		}
		out = append(out, AccountTotal{Name: name, Price: price})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Price != out[j].Price {
			return out[i].Price < out[j].Price
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// YearTotal is the total spent in one calendar year.
type YearTotal struct {
	Year  int
	Price int64
}

// ByYears aggregates spending per calendar year, oldest first.
func ByYears(snap *snapshot.Snapshot) []YearTotal {
	totals := map[int]int64{}
	for _, payment := range snap.Payments {
		totals[timestamp(payment.CreatedAt).Year()] += payment.Price
	}

	out := make([]YearTotal, 0, len(totals))
	for year, price := range totals {
		out = append(out, YearTotal{Year: year, Price: price})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// Summary is the overall spending report.
type Summary struct {
	Total int64
	First time.Time
	Last  time.Time
}

// Total sums all payments and finds the period they span. Returns nil when
// the snapshot holds no payments.
func Total(snap *snapshot.Snapshot) *Summary {
	if len(snap.Payments) == 0 {
		return nil
	}

	summary := &Summary{}
	for _, payment := range snap.Payments {
		summary.Total += payment.Price

		at := timestamp(payment.CreatedAt)
		if summary.First.IsZero() || at.Before(summary.First) {
			summary.First = at
		}
		if at.After(summary.Last) {
			summary.Last = at
		}
	}
	return summary
}

// Span renders the covered period as "2 years and 3 months". An empty
// string means the period is shorter than a month.
func (s *Summary) Span() string {
	years, months := elapsed(s.First, s.Last)
	if years == 0 && months == 0 {
		return ""
	}

	var parts []string
	if years > 0 {
		parts = append(parts, plural(years, "year"))
	}
	if months > 0 {
		parts = append(parts, plural(months, "month"))
	}
	return strings.Join(parts, " and ")
}

func elapsed(from, to time.Time) (years, months int) {
	months = (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if to.Day() < from.Day() {
		months--
	}
	if months < 0 {
		months = 0
	}
	return months / 12, months % 12
}

func plural(count int, noun string) string {
	if count == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", count, noun)
}

// timestamp converts a remote unix-milliseconds value.
func timestamp(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
