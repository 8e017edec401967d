package models

import "time"

// MenuItem adalah entri katalog. Dibuat/diubah hanya lewat jalur admin;
// dari sisi customer bersifat read-only.
type MenuItem struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"type:varchar(255);not null" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	Price       float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	Category    string  `gorm:"type:varchar(50);not null;index" json:"category"`
	ImageUrl    string  `gorm:"type:varchar(255)" json:"image_url"`
	// Jangan beri tag default: gorm tidak mengikutkan field zero-value yang
	// bertag default di INSERT, sehingga available=false tersimpan true.
	Available bool      `gorm:"not null" json:"available"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// CategoryAll adalah sentinel kategori yang meloloskan semua item.
const CategoryAll = "Semua"
