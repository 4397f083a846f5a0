package snapshot

import (
	"slices"
	"sort"
)

// NoteRecord is a private note attached to an account. Immutable once
// captured except for deletion.
type NoteRecord struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Data      string `json:"data"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt"`
}

// AccountRecord is the locally kept view of a remote account. OldNames
// accumulates every previously observed username that differs from the
// current one; it is append-only and never truncated.
type AccountRecord struct {
	ID          string       `json:"id"`
	Username    string       `json:"username"`
	DisplayName string       `json:"displayName"`
	Notes       []NoteRecord `json:"notes"`
	OldNames    []string     `json:"oldNames"`
}

// ListRecord is a curated account list. Label is the human-chosen key used
// to match a list across runs when the remote id is not known yet.
type ListRecord struct {
	ID    string   `json:"id"`
	Label string   `json:"label"`
	Items []string `json:"items"`
}

// PaymentRecord is one wallet transaction. TransactionID is the natural key
// for dedup across merges; Price is a remote fixed-point integer (real value
// = Price / 1000).
type PaymentRecord struct {
	AccountID     string `json:"accountId"`
	TransactionID string `json:"transactionId"`
	CreatedAt     int64  `json:"createdAt"`
	Price         int64  `json:"price"`
}

// Snapshot is the full local record of a user's remote account state at one
// point in time.
type Snapshot struct {
	Accounts  []AccountRecord `json:"accounts"`
	Deleted   []string        `json:"deleted"`
	Following []string        `json:"following"`
	Lists     []ListRecord    `json:"lists"`
	Payments  []PaymentRecord `json:"payments"`
}

// New returns an empty snapshot with all collections allocated, so that
// serialization produces arrays rather than nulls.
func New() *Snapshot {
	return &Snapshot{
		Accounts:  []AccountRecord{},
		Deleted:   []string{},
		Following: []string{},
		Lists:     []ListRecord{},
		Payments:  []PaymentRecord{},
	}
}

// AccountByID returns the account record with the given id, or nil.
func (s *Snapshot) AccountByID(id string) *AccountRecord {
	for i := range s.Accounts {
		if s.Accounts[i].ID == id {
			return &s.Accounts[i]
		}
	}
	return nil
}

// ListByLabel returns the list with the exact label, or nil.
func (s *Snapshot) ListByLabel(label string) *ListRecord {
	for i := range s.Lists {
		if s.Lists[i].Label == label {
			return &s.Lists[i]
		}
	}
	return nil
}

// DeletedSet returns the deleted ids as a set for membership checks.
func (s *Snapshot) DeletedSet() map[string]struct{} {
	set := make(map[string]struct{}, len(s.Deleted))
	for _, id := range s.Deleted {
		set[id] = struct{}{}
	}
	return set
}

// Canonicalize imposes the canonical sort order so that snapshot diffs stay
// stable across runs: accounts by id, lists by label, payments by
// transaction id, id sets sorted lexicographically and deduplicated.
func (s *Snapshot) Canonicalize() {
	sort.Slice(s.Accounts, func(i, j int) bool { return s.Accounts[i].ID < s.Accounts[j].ID })
	sort.Slice(s.Lists, func(i, j int) bool { return s.Lists[i].Label < s.Lists[j].Label })
	sort.Slice(s.Payments, func(i, j int) bool {
		return s.Payments[i].TransactionID < s.Payments[j].TransactionID
	})

	s.Deleted = sortedSet(s.Deleted)
	s.Following = sortedSet(s.Following)
	for i := range s.Lists {
		s.Lists[i].Items = sortedSet(s.Lists[i].Items)
	}
	for i := range s.Accounts {
		if s.Accounts[i].OldNames == nil {
			s.Accounts[i].OldNames = []string{}
		}
		if s.Accounts[i].Notes == nil {
			s.Accounts[i].Notes = []NoteRecord{}
		}
	}
}

func sortedSet(ids []string) []string {
	out := slices.Clone(ids)
	sort.Strings(out)
	return slices.Compact(out)
}
