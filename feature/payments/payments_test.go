package payments

import (
	"testing"
	"time"

	"fansly-utils/core/snapshot"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ms(year int, month time.Month) int64 {
	return time.Date(year, month, 15, 12, 0, 0, 0, time.UTC).UnixMilli()
}

func testSnapshot() *snapshot.Snapshot {
	snap := snapshot.New()
	snap.Accounts = []snapshot.AccountRecord{
		{ID: "1", Username: "alice"},
		{ID: "2", Username: "bob"},
	}
	snap.Payments = []snapshot.PaymentRecord{
		{TransactionID: "t1", AccountID: "1", CreatedAt: ms(2022, time.March), Price: 10000},
		{TransactionID: "t2", AccountID: "1", CreatedAt: ms(2023, time.January), Price: 5000},
		{TransactionID: "t3", AccountID: "2", CreatedAt: ms(2023, time.June), Price: 7990},
		{TransactionID: "t4", AccountID: "unknown", CreatedAt: ms(2023, time.June), Price: 1000},
	}
	return snap
}

func TestAmount(t *testing.T) {
	assert.Equal(t, 9.99, Amount(9990))
	assert.Equal(t, 0.0, Amount(0))
}

func TestByAccounts(t *testing.T) {
	totals := ByAccounts(testSnapshot())
	require.Len(t, totals, 3)

	// Cheapest first; unknown accounts fall back to the raw id.
	assert.Equal(t, AccountTotal{Name: "unknown", Price: 1000}, totals[0])
	assert.Equal(t, AccountTotal{Name: "bob", Price: 7990}, totals[1])
	assert.Equal(t, AccountTotal{Name: "alice", Price: 15000}, totals[2])
}

func TestByYears(t *testing.T) {
	totals := ByYears(testSnapshot())
	require.Len(t, totals, 2)
	assert.Equal(t, YearTotal{Year: 2022, Price: 10000}, totals[0])
	assert.Equal(t, YearTotal{Year: 2023, Price: 13990}, totals[1])
}

func TestTotal(t *testing.T) {
	t.Run("Empty Snapshot", func(t *testing.T) {
		assert.Nil(t, Total(snapshot.New()))
	})

	t.Run("Sums And Spans", func(t *testing.T) {
		summary := Total(testSnapshot())
		require.NotNil(t, summary)
		assert.Equal(t, int64(23990), summary.Total)
		assert.Equal(t, 2022, summary.First.Year())
		assert.Equal(t, time.June, summary.Last.Month())
	})
}

func TestSummary_Span(t *testing.T) {
	tests := []struct {
		name  string
		first time.Time
		last  time.Time
		want  string
	}{
		{
			"Under A Month",
			time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2023, 1, 20, 0, 0, 0, 0, time.UTC),
			"",
		},
		{
			"Months Only",
			time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC),
			"3 months",
		},
		{
			"Single Month",
			time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2023, 2, 10, 0, 0, 0, 0, time.UTC),
			"1 month",
		},
		{
			"Years And Months",
			time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC),
			"2 years and 3 months",
		},
		{
			"Exact Years",
			time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
			"1 year",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Summary{First: tt.first, Last: tt.last}
			assert.Equal(t, tt.want, s.Span())
		})
	}
}
