package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dapurlink/warung-app/cart"
	"github.com/dapurlink/warung-app/models"
	"github.com/dapurlink/warung-app/utils"
)

// Nama cookie sesi cart customer.
const CartCookieName = "cart_session"

type CartController struct {
	DB    *gorm.DB
	Carts *cart.Store
}

func NewCartController(db *gorm.DB, carts *cart.Store) *CartController {
	return &CartController{DB: db, Carts: carts}
}

// sessionCart mengambil cart milik cookie sesi, membuat sesi baru kalau
// cookie belum ada atau sesinya sudah disapu TTL.
func (cc *CartController) sessionCart(c *gin.Context) *cart.Cart {
	if token, err := c.Cookie(CartCookieName); err == nil {
		if crt, ok := cc.Carts.Get(token); ok {
			return crt
		}
	}

	token, crt := cc.Carts.Create()
	c.SetCookie(CartCookieName, token, 0, "/", "", false, true)
	return crt
}

type cartResponse struct {
	Items          []cart.Line `json:"items"`
	TotalAmount    float64     `json:"total_amount"`
	TotalItemCount int         `json:"total_item_count"`
}

func buildCartResponse(crt *cart.Cart) cartResponse {
	return cartResponse{
		Items:          crt.Lines(),
		TotalAmount:    crt.TotalAmount(),
		TotalItemCount: crt.TotalItemCount(),
	}
}

// GetCart -> isi cart sesi ini
func (cc *CartController) GetCart(c *gin.Context) {
	crt := cc.sessionCart(c)
	utils.RespondJSON(c, http.StatusOK, "Cart", buildCartResponse(crt))
}

// AddItem -> tambah 1 item ke cart (quantity naik 1 kalau sudah ada)
func (cc *CartController) AddItem(c *gin.Context) {
	type ReqBody struct {
		MenuItemID uint `json:"menu_item_id" binding:"required"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var menu models.MenuItem
	if err := cc.DB.First(&menu, body.MenuItemID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("menu tidak ditemukan"))
		return
	}
	if !menu.Available {
		utils.RespondError(c, http.StatusBadRequest, errors.New("menu sedang tidak tersedia"))
		return
	}

	crt := cc.sessionCart(c)
	if err := crt.Add(menu); err != nil {
		utils.RespondError(c, http.StatusConflict, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Item added", buildCartResponse(crt))
}

// UpdateItem -> set quantity satu baris; quantity 0 menghapus baris.
func (cc *CartController) UpdateItem(c *gin.Context) {
	idStr := c.Param("menu_item_id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid menu_item_id"))
		return
	}

	type ReqBody struct {
		Quantity *int `json:"quantity" binding:"required"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	crt := cc.sessionCart(c)
	if err := crt.SetQuantity(uint(id), *body.Quantity); err != nil {
		if errors.Is(err, cart.ErrCheckoutInFlight) {
			utils.RespondError(c, http.StatusConflict, err)
			return
		}
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Cart updated", buildCartResponse(crt))
}
