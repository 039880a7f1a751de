package storage

import "time"

// KVEntryModel is the GORM model for the kv_entries table
type KVEntryModel struct {
	CreatedAt time.Time
	Key       string `gorm:"column:entry_key;primaryKey"`
	UpdatedAt time.Time
	Value     string `gorm:"type:text;not null"`
}

// TableName specifies the table name for GORM
func (KVEntryModel) TableName() string { return "kv_entries" }
