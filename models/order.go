package models

import (
	"fmt"
	"time"
)

// Status order bergerak maju satu arah:
// pending -> preparing -> ready -> completed.
// Tidak ada jalur mundur dan tidak ada status batal.
const (
	OrderStatusPending   = "pending"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusCompleted = "completed"
)

type Order struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	CustomerName string      `gorm:"type:varchar(255);not null" json:"customer_name"`
	TableNumber  string      `gorm:"type:varchar(50);not null" json:"table_number"`
	Status       string      `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	TotalAmount  float64     `gorm:"type:decimal(10,2);not null;default:0.00" json:"total_amount"`
	Notes        string      `gorm:"type:text" json:"notes"`
	CreatedAt    time.Time   `gorm:"not null;index" json:"created_at"`
	UpdatedAt    time.Time   `gorm:"not null" json:"updated_at"`
	OrderItems   []OrderItem `gorm:"foreignKey:OrderID" json:"order_items"`
}

// NextStatus mengembalikan satu-satunya transisi maju yang sah dari status
// saat ini. ok=false berarti status sudah terminal (completed) atau tidak dikenal.
func NextStatus(status string) (string, bool) {
	switch status {
	case OrderStatusPending:
		return OrderStatusPreparing, true
	case OrderStatusPreparing:
		return OrderStatusReady, true
	case OrderStatusReady:
		return OrderStatusCompleted, true
	default:
		return "", false
	}
}

// ValidStatus memeriksa apakah s salah satu status lifecycle order.
func ValidStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusPreparing, OrderStatusReady, OrderStatusCompleted:
		return true
	}
	return false
}

// CanTransition memeriksa apakah from -> to merupakan transisi maju yang sah.
func CanTransition(from, to string) error {
	next, ok := NextStatus(from)
	if !ok {
		return fmt.Errorf("order dengan status %q sudah tidak bisa diubah", from)
	}
	if to != next {
		return fmt.Errorf("transisi %s -> %s tidak diizinkan (berikutnya: %s)", from, to, next)
	}
	return nil
}
