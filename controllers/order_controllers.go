package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dapurlink/warung-app/cart"
	"github.com/dapurlink/warung-app/kds"
	"github.com/dapurlink/warung-app/models"
	"github.com/dapurlink/warung-app/utils"
)

type OrderController struct {
	DB    *gorm.DB
	Carts *cart.Store
}

func NewOrderController(db *gorm.DB, carts *cart.Store) *OrderController {
	return &OrderController{DB: db, Carts: carts}
}

// Checkout -> ubah isi cart sesi menjadi satu order berstatus pending.
// Order dan semua order item ditulis dalam SATU transaksi; harga dan nama
// item dibaca ulang dari menu_items di dalam transaksi supaya total yang
// tersimpan selalu sama dengan jumlah subtotal barisnya.
func (oc *OrderController) Checkout(c *gin.Context) {
	type ReqBody struct {
		CustomerName string `json:"customer_name"`
		TableNumber  string `json:"table_number"`
		Notes        string `json:"notes"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	customerName := strings.TrimSpace(body.CustomerName)
	tableNumber := strings.TrimSpace(body.TableNumber)

	// Validasi sebelum menyentuh database sama sekali
	if customerName == "" || tableNumber == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("Mohon isi nama dan nomor meja"))
		return
	}

	token, err := c.Cookie(CartCookieName)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("Keranjang masih kosong"))
		return
	}
	crt, ok := oc.Carts.Get(token)
	if !ok || crt.IsEmpty() {
		utils.RespondError(c, http.StatusBadRequest, errors.New("Keranjang masih kosong"))
		return
	}

	// Tolak submit kedua selama yang pertama masih jalan (double-click guard)
	if err := crt.BeginCheckout(); err != nil {
		utils.RespondError(c, http.StatusConflict, err)
		return
	}
	defer crt.EndCheckout()

	lines := crt.Lines()

	var order models.Order
	err = oc.DB.Transaction(func(tx *gorm.DB) error {
		order = models.Order{
			CustomerName: customerName,
			TableNumber:  tableNumber,
			Status:       models.OrderStatusPending,
			Notes:        body.Notes,
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		var total float64
		items := make([]models.OrderItem, 0, len(lines))
		for _, line := range lines {
			var menu models.MenuItem
			if err := tx.First(&menu, line.MenuItemID).Error; err != nil {
				return fmt.Errorf("menu %d tidak ditemukan: %w", line.MenuItemID, err)
			}

			items = append(items, models.OrderItem{
				OrderID:    order.ID,
				MenuItemID: menu.ID,
				Quantity:   line.Quantity,
				Price:      menu.Price,
				ItemName:   menu.Name,
				CreatedAt:  time.Now(),
			})
			total += menu.Price * float64(line.Quantity)
		}

		if err := tx.Create(&items).Error; err != nil {
			return err
		}

		order.TotalAmount = total
		if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).
			Update("total_amount", total).Error; err != nil {
			return err
		}

		order.OrderItems = items
		return nil
	})
	if err != nil {
		utils.ErrorLogger.Printf("Checkout failed for %s (meja %s): %v", customerName, tableNumber, err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("Gagal membuat pesanan"))
		return
	}

	// Mutasi cart diblokir selama guard dipegang, jadi Clear di sini
	// membuang persis baris yang barusan jadi order
	crt.Clear()

	// Monitor perubahan juga akan menyiarkan INSERT ini; broadcast langsung
	// supaya dashboard tidak menunggu interval polling
	kds.BroadcastOrderCreate(order)

	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// GetAllOrders -> feed dapur: semua order terbaru dulu, item di-preload
// dalam satu query (bukan satu query per order), opsional ?status=pending.
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	status := c.DefaultQuery("status", "all")
	if status != "all" && !models.ValidStatus(status) {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("status %q tidak dikenal", status))
		return
	}

	query := oc.DB.Preload("OrderItems").Order("created_at desc")
	if status != "all" {
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// GetOrderByID -> detail 1 order. Order tanpa item berarti masih dalam
// proses penulisan, bukan error.
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	idStr := c.Param("order_id")
	id, _ := strconv.Atoi(idStr)

	var order models.Order
	if err := oc.DB.Preload("OrderItems").First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// GetOrderStats -> jumlah order per status untuk badge dashboard.
func (oc *OrderController) GetOrderStats(c *gin.Context) {
	var rows []struct {
		Status string
		Count  int64
	}

	if err := oc.DB.Model(&models.Order{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	stats := map[string]int64{
		"all":                       0,
		models.OrderStatusPending:   0,
		models.OrderStatusPreparing: 0,
		models.OrderStatusReady:     0,
	}
	for _, row := range rows {
		stats["all"] += row.Count
		if _, ok := stats[row.Status]; ok {
			stats[row.Status] = row.Count
		}
	}

	utils.RespondJSON(c, http.StatusOK, "Order stats", stats)
}

// UpdateOrderStatus -> satu-satunya mutasi order: maju satu langkah di
// lifecycle. Transisi ilegal dan kegagalan tulis dua-duanya dilaporkan ke
// pemanggil, tidak ditelan.
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	orderID := c.Param("order_id")

	var order models.Order
	if err := oc.DB.First(&order, orderID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	type ReqBody struct {
		Status string `json:"status" binding:"required"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !models.ValidStatus(body.Status) {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("status %q tidak dikenal", body.Status))
		return
	}

	if err := models.CanTransition(order.Status, body.Status); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	// Update satu field saja, dibatasi id order
	if err := oc.DB.Model(&order).
		Updates(map[string]interface{}{
			"status":     body.Status,
			"updated_at": time.Now(),
		}).Error; err != nil {
		utils.ErrorLogger.Printf("Failed to update order %d status: %v", order.ID, err)
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	order.Status = body.Status
	kds.BroadcastOrderUpdate(order)
	if order.Status == models.OrderStatusReady {
		kds.BroadcastStaffNotification(fmt.Sprintf("Pesanan #%d siap diantar ke Meja %s", order.ID, order.TableNumber))
	}

	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}
