package models

import (
	"time"
)

// DBChange diisi oleh trigger database setiap kali baris orders berubah.
// ChangeMonitor mem-poll tabel ini lalu menyiarkan event ke client dapur.
type DBChange struct {
	ID         uint      `gorm:"primaryKey"`
	TableName  string    `gorm:"type:varchar(50);not null;index:idx_table_action"`
	RecordID   int64     `gorm:"not null"`
	ActionType string    `gorm:"type:varchar(10);not null;index:idx_table_action"`
	ChangedAt  time.Time `gorm:"not null"`
	Processed  bool      `gorm:"default:false;index:idx_processed"`
}
