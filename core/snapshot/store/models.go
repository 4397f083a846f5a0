package store

// Relational schema for the snapshot. Mirrors the JSON document: accounts
// own their rename history and notes, lists own their memberships, payments
// key on the remote transaction id. Following and deleted are plain id
// tables because either may reference ids that no longer have an account
// record.

// DBAccount represents the 'accounts' table.
type DBAccount struct {
	ID          string `gorm:"column:id;primaryKey"`
	Username    string `gorm:"column:username;index"`
	DisplayName string `gorm:"column:display_name"`
}

// TableName overrides the table name.
func (DBAccount) TableName() string {
	return "accounts"
}

// DBAccountName represents the 'account_names' table: one row per
// previously observed username, in observation order.
type DBAccountName struct {
	ID        uint   `gorm:"column:id;primaryKey;autoIncrement"`
	AccountID string `gorm:"column:account_id;index"`
	Position  int    `gorm:"column:position"`
	Value     string `gorm:"column:value"`
}

// TableName overrides the table name.
func (DBAccountName) TableName() string {
	return "account_names"
}

// DBNote represents the 'notes' table.
type DBNote struct {
	ID        string `gorm:"column:id;primaryKey"`
	AccountID string `gorm:"column:account_id;index"`
	Title     string `gorm:"column:title"`
	Data      string `gorm:"column:data"`
	CreatedAt int64  `gorm:"column:created_at"`
	UpdatedAt int64  `gorm:"column:updated_at"`
}

// TableName overrides the table name.
func (DBNote) TableName() string {
	return "notes"
}

// DBList represents the 'lists' table.
type DBList struct {
	ID    string `gorm:"column:id;primaryKey"`
	Label string `gorm:"column:label;uniqueIndex"`
}

// TableName overrides the table name.
func (DBList) TableName() string {
	return "lists"
}

// DBListItem represents the 'list_items' association table.
type DBListItem struct {
	ListID    string `gorm:"column:list_id;primaryKey"`
	AccountID string `gorm:"column:account_id;primaryKey"`
}

// TableName overrides the table name.
func (DBListItem) TableName() string {
	return "list_items"
}

// DBFollowing represents the 'following' table.
type DBFollowing struct {
	AccountID string `gorm:"column:account_id;primaryKey"`
}

// TableName overrides the table name.
func (DBFollowing) TableName() string {
	return "following"
}

// DBDeleted represents the 'deleted_accounts' table.
type DBDeleted struct {
	AccountID string `gorm:"column:account_id;primaryKey"`
}

// TableName overrides the table name.
func (DBDeleted) TableName() string {
	return "deleted_accounts"
}

// DBPayment represents the 'payments' table.
type DBPayment struct {
	TransactionID string `gorm:"column:transaction_id;primaryKey"`
	AccountID     string `gorm:"column:account_id;index"`
	CreatedAt     int64  `gorm:"column:created_at"`
	Price         int64  `gorm:"column:price"`
}

// TableName overrides the table name.
func (DBPayment) TableName() string {
	return "payments"
}
