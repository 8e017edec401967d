package models

import (
	"time"
)

// OrderItem adalah baris order. Harga dan nama item disalin dari MenuItem
// saat checkout supaya edit menu di kemudian hari tidak mengubah order lama.
// Sekali dibuat tidak pernah diubah atau dihapus.
type OrderItem struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	OrderID uint `gorm:"not null;index" json:"order_id"`
	// Omitting Order field from JSON to avoid recursive nesting
	Order      Order     `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	MenuItemID uint      `gorm:"not null" json:"menu_item_id"`
	MenuItem   MenuItem  `gorm:"foreignKey:MenuItemID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Quantity   int       `gorm:"not null" json:"quantity"`
	Price      float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	ItemName   string    `gorm:"type:varchar(255);not null" json:"item_name"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
}

func (oi OrderItem) Subtotal() float64 {
	return oi.Price * float64(oi.Quantity)
}
