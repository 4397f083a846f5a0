package store

import (
	"fmt"

	"fansly-utils/core/snapshot"

	"gorm.io/gorm"
)

// GormStore persists the snapshot in a relational database. Save is a full
// rewrite inside one transaction; Load rebuilds the aggregate from the
// normalized tables in canonical order.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a store on an open connection and ensures the schema
// exists.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	err := db.AutoMigrate(
		&DBAccount{},
		&DBAccountName{},
		&DBNote{},
		&DBList{},
		&DBListItem{},
		&DBFollowing{},
		&DBDeleted{},
		&DBPayment{},
	)
	if err != nil {
		return nil, fmt.Errorf("migrate snapshot schema: %w", err)
	}
	return &GormStore{db: db}, nil
}

// Load reads every table and assembles the snapshot.
func (s *GormStore) Load() (*snapshot.Snapshot, error) {
	var accounts []DBAccount
	if err := s.db.Order("id").Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("load accounts: %w", err)
	}

	var following []DBFollowing
	if err := s.db.Find(&following).Error; err != nil {
		return nil, fmt.Errorf("load following: %w", err)
	}

	// An untouched database is the same as a missing snapshot file.
	if len(accounts) == 0 && len(following) == 0 {
		return nil, ErrNoSnapshot
	}

	var names []DBAccountName
	if err := s.db.Order("account_id, position").Find(&names).Error; err != nil {
		return nil, fmt.Errorf("load account names: %w", err)
	}
	var notes []DBNote
	if err := s.db.Order("account_id, id").Find(&notes).Error; err != nil {
		return nil, fmt.Errorf("load notes: %w", err)
	}
	var lists []DBList
	if err := s.db.Order("label").Find(&lists).Error; err != nil {
		return nil, fmt.Errorf("load lists: %w", err)
	}
	var items []DBListItem
	if err := s.db.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("load list items: %w", err)
	}
	var deleted []DBDeleted
	if err := s.db.Find(&deleted).Error; err != nil {
		return nil, fmt.Errorf("load deleted accounts: %w", err)
	}
	var payments []DBPayment
	if err := s.db.Order("transaction_id").Find(&payments).Error; err != nil {
		return nil, fmt.Errorf("load payments: %w", err)
	}

	namesByAccount := map[string][]string{}
	for _, name := range names {
		namesByAccount[name.AccountID] = append(namesByAccount[name.AccountID], name.Value)
	}
	notesByAccount := map[string][]snapshot.NoteRecord{}
	for _, note := range notes {
		notesByAccount[note.AccountID] = append(notesByAccount[note.AccountID], snapshot.NoteRecord{
			ID:        note.ID,
			Title:     note.Title,
			Data:      note.Data,
			CreatedAt: note.CreatedAt,
			UpdatedAt: note.UpdatedAt,
		})
	}
	itemsByList := map[string][]string{}
	for _, item := range items {
		itemsByList[item.ListID] = append(itemsByList[item.ListID], item.AccountID)
	}

	snap := snapshot.New()
	for _, account := range accounts {
		snap.Accounts = append(snap.Accounts, snapshot.AccountRecord{
			ID:          account.ID,
			Username:    account.Username,
			DisplayName: account.DisplayName,
			Notes:       notesByAccount[account.ID],
			OldNames:    namesByAccount[account.ID],
		})
	}
	for _, entry := range following {
		snap.Following = append(snap.Following, entry.AccountID)
	}
	for _, entry := range deleted {
		snap.Deleted = append(snap.Deleted, entry.AccountID)
	}
	for _, list := range lists {
		snap.Lists = append(snap.Lists, snapshot.ListRecord{
			ID:    list.ID,
			Label: list.Label,
			Items: itemsByList[list.ID],
		})
	}
	for _, payment := range payments {
		snap.Payments = append(snap.Payments, snapshot.PaymentRecord{
			AccountID:     payment.AccountID,
			TransactionID: payment.TransactionID,
			CreatedAt:     payment.CreatedAt,
			Price:         payment.Price,
		})
	}

	snap.Canonicalize()
	return snap, nil
}

// Save replaces the persisted snapshot with snap.
func (s *GormStore) Save(snap *snapshot.Snapshot) error {
	snap.Canonicalize()

	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{
			&DBPayment{}, &DBDeleted{}, &DBFollowing{}, &DBListItem{},
			&DBList{}, &DBNote{}, &DBAccountName{}, &DBAccount{},
		} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return fmt.Errorf("clear table: %w", err)
			}
		}

		var accounts []DBAccount
		var names []DBAccountName
		var notes []DBNote
		for _, account := range snap.Accounts {
			accounts = append(accounts, DBAccount{
				ID:          account.ID,
				Username:    account.Username,
				DisplayName: account.DisplayName,
			})
			for pos, name := range account.OldNames {
				names = append(names, DBAccountName{
					AccountID: account.ID,
					Position:  pos,
					Value:     name,
				})
			}
			for _, note := range account.Notes {
				notes = append(notes, DBNote{
					ID:        note.ID,
					AccountID: account.ID,
					Title:     note.Title,
					Data:      note.Data,
					CreatedAt: note.CreatedAt,
					UpdatedAt: note.UpdatedAt,
				})
			}
		}

		var lists []DBList
		var items []DBListItem
		for _, list := range snap.Lists {
			lists = append(lists, DBList{ID: list.ID, Label: list.Label})
			for _, accountID := range list.Items {
				items = append(items, DBListItem{ListID: list.ID, AccountID: accountID})
			}
		}

		var following []DBFollowing
		for _, id := range snap.Following {
			following = append(following, DBFollowing{AccountID: id})
		}
		var deleted []DBDeleted
		for _, id := range snap.Deleted {
			deleted = append(deleted, DBDeleted{AccountID: id})
		}
		var payments []DBPayment
		for _, payment := range snap.Payments {
			payments = append(payments, DBPayment{
				TransactionID: payment.TransactionID,
				AccountID:     payment.AccountID,
				CreatedAt:     payment.CreatedAt,
				Price:         payment.Price,
			})
		}

		for _, batch := range []struct {
			name string
			rows any
			size int
		}{
			{"accounts", &accounts, len(accounts)},
			{"account names", &names, len(names)},
			{"notes", &notes, len(notes)},
			{"lists", &lists, len(lists)},
			{"list items", &items, len(items)},
			{"following", &following, len(following)},
			{"deleted accounts", &deleted, len(deleted)},
			{"payments", &payments, len(payments)},
		} {
			if batch.size == 0 {
				continue
			}
			if err := tx.CreateInBatches(batch.rows, 500).Error; err != nil {
				return fmt.Errorf("insert %s: %w", batch.name, err)
			}
		}
		return nil
	})
}
