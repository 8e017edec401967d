package utils

import (
	"sync"

	"gorm.io/gorm"
)

var (
	db     *gorm.DB
	dbOnce sync.Once
)

// InitDB menyimpan handle database proses ini. Hanya panggilan pertama
// yang berlaku; sisanya diabaikan.
func InitDB(database *gorm.DB) {
	dbOnce.Do(func() {
		db = database
	})
}

// GetDB mengembalikan handle yang disimpan InitDB, atau nil kalau
// InitDB belum pernah dipanggil.
func GetDB() *gorm.DB {
	return db
}
