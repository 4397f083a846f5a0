package snapshot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	snap := New()
	assert.NotNil(t, snap.Accounts)
	assert.NotNil(t, snap.Deleted)
	assert.NotNil(t, snap.Following)
	assert.NotNil(t, snap.Lists)
	assert.NotNil(t, snap.Payments)
}

func TestSnapshot_Lookups(t *testing.T) {
	snap := &Snapshot{
		Accounts: []AccountRecord{{ID: "1", Username: "alice"}, {ID: "2", Username: "bob"}},
		Deleted:  []string{"2"},
		Lists:    []ListRecord{{ID: "l1", Label: "favorites", Items: []string{"1"}}},
	}

	t.Run("AccountByID", func(t *testing.T) {
		assert.Equal(t, "alice", snap.AccountByID("1").Username)
		assert.Nil(t, snap.AccountByID("nope"))
	})

	t.Run("ListByLabel Is Exact", func(t *testing.T) {
		assert.Equal(t, "l1", snap.ListByLabel("favorites").ID)
		assert.Nil(t, snap.ListByLabel("Favorites"))
	})

	t.Run("DeletedSet", func(t *testing.T) {
		set := snap.DeletedSet()
		assert.Contains(t, set, "2")
		assert.NotContains(t, set, "1")
	})
}

func TestSnapshot_Canonicalize(t *testing.T) {
	snap := &Snapshot{
		Accounts: []AccountRecord{{ID: "b"}, {ID: "a"}},
		Deleted:  []string{"z", "a", "z"},
		Following: []string{
			"3", "1", "3", "2",
		},
		Lists: []ListRecord{
			{Label: "second", Items: []string{"y", "x", "y"}},
			{Label: "first"},
		},
		Payments: []PaymentRecord{{TransactionID: "t2"}, {TransactionID: "t1"}},
	}

	snap.Canonicalize()

	assert.Equal(t, "a", snap.Accounts[0].ID)
	assert.Equal(t, "b", snap.Accounts[1].ID)
	assert.Equal(t, []string{"a", "z"}, snap.Deleted)
	assert.Equal(t, []string{"1", "2", "3"}, snap.Following)
	assert.Equal(t, "first", snap.Lists[0].Label)
	assert.Equal(t, []string{"x", "y"}, snap.Lists[1].Items)
	assert.Equal(t, "t1", snap.Payments[0].TransactionID)

	// Nil slices become empty so JSON stays arrays.
	assert.NotNil(t, snap.Accounts[0].OldNames)
	assert.NotNil(t, snap.Accounts[0].Notes)
}

func TestSnapshot_CanonicalizeIsStable(t *testing.T) {
	snap := &Snapshot{
		Accounts: []AccountRecord{{ID: "b"}, {ID: "a"}},
		Deleted:  []string{"z", "a"},
	}
	snap.Canonicalize()

	first := *snap
	snap.Canonicalize()
	assert.Equal(t, first.Accounts, snap.Accounts)
	assert.Equal(t, first.Deleted, snap.Deleted)
}
