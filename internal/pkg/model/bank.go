package model

// Banks is a slice of Bank.
type Banks []Bank

// Bank represents a row in bank_table.
//
// Columns reference:
//   - bank_id:     integer, primary key, auto increment
//   - bank:        varchar(255), unique, not null
//   - parent_bank: varchar(255), not null, default '' (root)
//   - shares:      bigint, not null
//
// bank_id only records insertion order; bank is the key every operation uses.
type Bank struct {
	ID         int64  `gorm:"column:bank_id;primaryKey;autoIncrement" json:"-"`
	Name       string `gorm:"column:bank;size:255;not null;uniqueIndex:idx_bank_name" json:"bank"`
	ParentBank string `gorm:"column:parent_bank;size:255;not null;default:''" json:"parent_bank"`
	Shares     int64  `gorm:"column:shares;not null" json:"shares"`
}

func (Bank) TableName() string { return "bank_table" }

// IsRoot reports whether the bank has no parent.
func (b Bank) IsRoot() bool { return b.ParentBank == "" }
