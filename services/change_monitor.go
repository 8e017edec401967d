package services

import (
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/dapurlink/warung-app/kds"
	"github.com/dapurlink/warung-app/models"
	"github.com/dapurlink/warung-app/utils"
)

// ChangeMonitor mem-poll tabel db_changes yang diisi trigger database dan
// menyiarkan event order ke client dapur lewat KDS hub. Ini kanal
// change-notification-nya: dashboard tidak perlu polling order sendiri.
type ChangeMonitor struct {
	DB       *gorm.DB
	StopChan chan struct{}
	Interval time.Duration
}

func NewChangeMonitor(db *gorm.DB) *ChangeMonitor {
	return &ChangeMonitor{
		DB:       db,
		StopChan: make(chan struct{}),
		Interval: 1 * time.Second,
	}
}

func (cm *ChangeMonitor) Start() {
	go func() {
		ticker := time.NewTicker(cm.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				cm.checkChanges()
			case <-cm.StopChan:
				return
			}
		}
	}()
}

func (cm *ChangeMonitor) Stop() {
	close(cm.StopChan)
}

// checkChanges mengambil perubahan yang belum diproses, menyiarkannya
// berurutan sesuai changed_at, lalu menandainya processed dalam satu
// transaksi supaya tidak ada event yang dobel atau hilang.
func (cm *ChangeMonitor) checkChanges() {
	var changes []models.DBChange

	tx := cm.DB.Begin()

	if err := tx.Where("processed = ?", false).
		Order("changed_at ASC").
		Limit(100).
		Find(&changes).Error; err != nil {
		tx.Rollback()
		log.Printf("Error fetching changes: %v", err)
		return
	}

	for _, change := range changes {
		if change.TableName == "orders" {
			cm.processOrderChange(change)
		}

		if err := tx.Model(&models.DBChange{}).
			Where("id = ?", change.ID).
			Update("processed", true).Error; err != nil {
			tx.Rollback()
			log.Printf("Error marking change as processed: %v", err)
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		log.Printf("Error committing transaction: %v", err)
		tx.Rollback()
		return
	}
}

func (cm *ChangeMonitor) processOrderChange(change models.DBChange) {
	var order models.Order

	if change.ActionType == "DELETE" {
		// Order tidak pernah dihapus oleh sistem ini
		return
	}

	if err := cm.DB.Preload("OrderItems").First(&order, change.RecordID).Error; err != nil {
		log.Printf("Error fetching order %d: %v", change.RecordID, err)
		return
	}

	switch change.ActionType {
	case "INSERT":
		kds.BroadcastOrderCreate(order)
		kds.BroadcastStaffNotification(fmt.Sprintf(
			"Pesanan baru dari %s (Meja %s) - total %s",
			order.CustomerName, order.TableNumber, utils.FormatCurrency(order.TotalAmount)))
	case "UPDATE":
		kds.BroadcastOrderUpdate(order)
	}
}
