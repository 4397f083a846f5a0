package snapshot

import "slices"

// ReprobeFunc re-resolves account ids that were present locally but missing
// from the freshly collected remote view. It returns the records that still
// resolve and the set of ids that do not.
type ReprobeFunc func(ids []string) ([]AccountRecord, map[string]struct{}, error)

// Rename records one observed username transition.
type Rename struct {
	AccountID string
	OldName   string
	NewName   string
}

// DiffReport describes the drift detected while merging a fresh remote view
// against the previous snapshot.
type DiffReport struct {
	// Renames lists accounts whose username changed since the previous run.
	Renames []Rename
	// NewDead lists ids that stopped resolving since the previous run.
	NewDead []string
	// NewAccounts lists ids seen for the first time.
	NewAccounts []string
	// NewListMembers maps a list label to ids added since the previous run.
	NewListMembers map[string][]string
}

// Merge reconciles a freshly collected remote snapshot with the previous
// local one. The remote view is authoritative for "is it still there now";
// local history (rename log, deleted ids, once-known records) is never
// dropped. With a nil previous snapshot the result is just the canonicalized
// remote view.
//
// Accounts present only in the previous snapshot are re-probed through
// reprobe before being declared dead, so a pagination gap in the collection
// phase does not mark live accounts deleted.
func Merge(remote, previous *Snapshot, reprobe ReprobeFunc) (*Snapshot, *DiffReport, error) {
	report := &DiffReport{NewListMembers: map[string][]string{}}

	merged := New()
	merged.Accounts = slices.Clone(remote.Accounts)
	merged.Deleted = slices.Clone(remote.Deleted)
	merged.Following = slices.Clone(remote.Following)
	merged.Lists = slices.Clone(remote.Lists)
	merged.Payments = slices.Clone(remote.Payments)

	if previous == nil {
		merged.Canonicalize()
		return merged, report, nil
	}

	if err := mergeAccounts(merged, previous, reprobe, report); err != nil {
		return nil, nil, err
	}
	mergeDeleted(merged, previous)
	merged.Following = append(merged.Following, previous.Following...)
	mergeLists(merged, previous, report)
	mergePayments(merged, previous)

	mergeNewAccounts(remote, previous, report)

	merged.Canonicalize()
	return merged, report, nil
}

func mergeAccounts(merged, previous *Snapshot, reprobe ReprobeFunc, report *DiffReport) error {
	current := make(map[string]int, len(merged.Accounts))
	for i := range merged.Accounts {
		current[merged.Accounts[i].ID] = i
	}

	// Ids known before but missing from the fresh collection get one more
	// chance through the batch resolver.
	var missing []string
	for i := range previous.Accounts {
		if _, ok := current[previous.Accounts[i].ID]; !ok {
			missing = append(missing, previous.Accounts[i].ID)
		}
	}

	var revived []AccountRecord
	dead := map[string]struct{}{}
	if len(missing) > 0 && reprobe != nil {
		var err error
		revived, dead, err = reprobe(missing)
		if err != nil {
			return err
		}
	} else if reprobe == nil {
		for _, id := range missing {
			dead[id] = struct{}{}
		}
	}
	for _, record := range revived {
		merged.Accounts = append(merged.Accounts, record)
		current[record.ID] = len(merged.Accounts) - 1
	}

	for i := range previous.Accounts {
		old := &previous.Accounts[i]

		idx, ok := current[old.ID]
		if !ok {
			// Still unresolved: keep the last known record unchanged and
			// remember the id as dead. History of a once-known account is
			// never dropped.
			merged.Accounts = append(merged.Accounts, *old)
			if _, wasDead := dead[old.ID]; wasDead && !slices.Contains(previous.Deleted, old.ID) {
				report.NewDead = append(report.NewDead, old.ID)
			}
			merged.Deleted = append(merged.Deleted, old.ID)
			continue
		}

		fresh := &merged.Accounts[idx]
		fresh.OldNames = slices.Clone(old.OldNames)
		if old.Username != fresh.Username {
			fresh.OldNames = append(fresh.OldNames, old.Username)
			report.Renames = append(report.Renames, Rename{
				AccountID: old.ID,
				OldName:   old.Username,
				NewName:   fresh.Username,
			})
		}
	}
	return nil
}

// mergeDeleted keeps the deleted set monotonic: it only ever grows. A dead
// id that reappears among resolved accounts stays listed; consumers must
// intersect against accounts for current truth.
func mergeDeleted(merged, previous *Snapshot) {
	merged.Deleted = append(merged.Deleted, previous.Deleted...)
}

func mergeLists(merged, previous *Snapshot, report *DiffReport) {
	for i := range previous.Lists {
		old := &previous.Lists[i]

		fresh := merged.ListByLabel(old.Label)
		if fresh == nil {
			// Present only locally: kept as-is, not re-validated.
			merged.Lists = append(merged.Lists, *old)
			continue
		}

		before := make(map[string]struct{}, len(old.Items))
		for _, id := range old.Items {
			before[id] = struct{}{}
		}
		for _, id := range fresh.Items {
			if _, ok := before[id]; !ok {
				report.NewListMembers[old.Label] = append(report.NewListMembers[old.Label], id)
			}
		}
		fresh.Items = append(fresh.Items, old.Items...)
	}
}

// mergePayments unions by transaction id. The remote ledger is append-only
// and authoritative, so anything previously seen but absent from the fresh
// view is a pagination gap, not a removal.
func mergePayments(merged, previous *Snapshot) {
	seen := make(map[string]struct{}, len(merged.Payments))
	for _, payment := range merged.Payments {
		seen[payment.TransactionID] = struct{}{}
	}
	for _, payment := range previous.Payments {
		if _, ok := seen[payment.TransactionID]; !ok {
			merged.Payments = append(merged.Payments, payment)
		}
	}
}

func mergeNewAccounts(remote, previous *Snapshot, report *DiffReport) {
	known := make(map[string]struct{}, len(previous.Accounts))
	for i := range previous.Accounts {
		known[previous.Accounts[i].ID] = struct{}{}
	}
	for i := range remote.Accounts {
		if _, ok := known[remote.Accounts[i].ID]; !ok {
			report.NewAccounts = append(report.NewAccounts, remote.Accounts[i].ID)
		}
	}
}
