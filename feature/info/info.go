package info

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"fansly-utils/core/api"
	"fansly-utils/core/snapshot"
)

// API is the remote surface needed for account lookups.
type API interface {
	AccountsByIDs(ctx context.Context, ids []string) ([]api.Account, error)
	AccountsByUsernames(ctx context.Context, usernames []string) ([]api.Account, error)
	AccountRaw(ctx context.Context, idOrUsername string, byID bool) (json.RawMessage, error)
}

// Result is the resolved account together with everything the local
// snapshot remembers about it.
type Result struct {
	Account   api.Account
	OldNames  []string
	Deleted   bool
	Following bool
	Lists     []string
}

// Service resolves accounts by id or username and cross-references them
// against a snapshot when one is available.
type Service struct {
	api API
}

func NewService(remote API) *Service {
	return &Service{api: remote}
}

// Lookup resolves a single account. Purely numeric queries are treated as
// ids, everything else as a username. The snapshot may be nil.
func (s *Service) Lookup(ctx context.Context, query string, snap *snapshot.Snapshot) (*Result, error) {
	var (
		accounts []api.Account
		err      error
	)
	if isNumeric(query) {
		accounts, err = s.api.AccountsByIDs(ctx, []string{query})
	} else {
		accounts, err = s.api.AccountsByUsernames(ctx, []string{query})
	}
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return s.fromSnapshot(query, snap)
	}

	result := &Result{Account: accounts[0]}
	s.annotate(result, snap)
	return result, nil
}

// Raw returns the unprojected remote payload for the account.
func (s *Service) Raw(ctx context.Context, query string) (json.RawMessage, error) {
	return s.api.AccountRaw(ctx, query, isNumeric(query))
}

// fromSnapshot falls back to the local record when the remote lookup came
// back empty, so that deleted accounts can still be inspected.
func (s *Service) fromSnapshot(query string, snap *snapshot.Snapshot) (*Result, error) {
	if snap == nil {
		return nil, api.ErrNotFound
	}

	var record *snapshot.AccountRecord
	if isNumeric(query) {
		record = snap.AccountByID(query)
	} else {
		for i := range snap.Accounts {
			if strings.EqualFold(snap.Accounts[i].Username, query) {
				record = &snap.Accounts[i]
				break
			}
		}
	}
	if record == nil {
		return nil, api.ErrNotFound
	}

	result := &Result{Account: api.Account{
		ID:          record.ID,
		Username:    record.Username,
		DisplayName: record.DisplayName,
	}}
	s.annotate(result, snap)
	return result, nil
}

func (s *Service) annotate(result *Result, snap *snapshot.Snapshot) {
	if snap == nil {
		return
	}

	id := result.Account.ID
	if record := snap.AccountByID(id); record != nil {
		result.OldNames = record.OldNames
	}
	_, result.Deleted = snap.DeletedSet()[id]
	for _, followed := range snap.Following {
		if followed == id {
			result.Following = true
			break
		}
	}
	for _, list := range snap.Lists {
		for _, item := range list.Items {
			if item == id {
				result.Lists = append(result.Lists, list.Label)
				break
			}
		}
	}
}

// Render formats the result for terminal output.
func Render(r *Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "id:           %s\n", r.Account.ID)
	fmt.Fprintf(&b, "username:     %s\n", r.Account.Username)
	fmt.Fprintf(&b, "display name: %s\n", r.Account.DisplayName)
	if len(r.OldNames) > 0 {
		fmt.Fprintf(&b, "old names:    %s\n", strings.Join(r.OldNames, ", "))
	}
	if r.Deleted {
		b.WriteString("deleted:      yes\n")
	}
	if r.Following {
		b.WriteString("following:    yes\n")
	}
	if len(r.Lists) > 0 {
		fmt.Fprintf(&b, "lists:        %s\n", strings.Join(r.Lists, ", "))
	}
	for _, note := range r.Account.Notes {
		fmt.Fprintf(&b, "note:         %s\n", note.Title)
	}
	return b.String()
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
