package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dapurlink/warung-app/models"
	"github.com/dapurlink/warung-app/utils"
)

type MenuController struct {
	DB *gorm.DB
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{DB: db}
}

// GetAllMenus -> katalog untuk customer. Hanya item available, diurutkan per
// kategori. Filter kategori dan pencarian diterapkan bersamaan (intersektif):
//
//	?category=Makanan  -> exact match, sentinel "Semua" meloloskan semuanya
//	?q=goreng          -> substring case-insensitive di name ATAU description
func (mc *MenuController) GetAllMenus(c *gin.Context) {
	category := c.DefaultQuery("category", models.CategoryAll)
	search := strings.TrimSpace(c.Query("q"))

	query := mc.DB.Where("available = ?", true).Order("category")

	if category != models.CategoryAll {
		query = query.Where("category = ?", category)
	}

	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var menus []models.MenuItem
	if err := query.Find(&menus).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of menus", menus)
}

// GetMenuByID -> detail 1 item
func (mc *MenuController) GetMenuByID(c *gin.Context) {
	idStr := c.Param("menu_id")
	id, _ := strconv.Atoi(idStr)

	var menu models.MenuItem
	if err := mc.DB.First(&menu, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu detail", menu)
}

/*
========================================
 JALUR ADMIN
========================================
*/

// GetAllMenusAdmin -> semua item termasuk yang tidak available.
func (mc *MenuController) GetAllMenusAdmin(c *gin.Context) {
	var menus []models.MenuItem
	if err := mc.DB.Order("category").Find(&menus).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menus", menus)
}

// CreateMenu
func (mc *MenuController) CreateMenu(c *gin.Context) {
	type ReqBody struct {
		Name        string  `json:"name" binding:"required"`
		Description string  `json:"description"`
		Price       float64 `json:"price" binding:"required,gte=0"`
		Category    string  `json:"category" binding:"required"`
		ImageUrl    string  `json:"image_url"`
		Available   *bool   `json:"available"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if body.Category == models.CategoryAll {
		utils.RespondError(c, http.StatusBadRequest, errors.New("kategori tidak valid"))
		return
	}

	available := true
	if body.Available != nil {
		available = *body.Available
	}

	menu := models.MenuItem{
		Name:        body.Name,
		Description: body.Description,
		Price:       body.Price,
		Category:    body.Category,
		ImageUrl:    body.ImageUrl,
		Available:   available,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := mc.DB.Create(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Menu created", menu)
}

// UpdateMenu -> partial update field menu
func (mc *MenuController) UpdateMenu(c *gin.Context) {
	idStr := c.Param("menu_id")
	id, _ := strconv.Atoi(idStr)

	var menu models.MenuItem
	if err := mc.DB.First(&menu, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("menu not found"))
		return
	}

	type ReqBody struct {
		Name        *string  `json:"name"`
		Description *string  `json:"description"`
		Price       *float64 `json:"price"`
		Category    *string  `json:"category"`
		ImageUrl    *string  `json:"image_url"`
		Available   *bool    `json:"available"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if body.Name != nil {
		menu.Name = *body.Name
	}
	if body.Description != nil {
		menu.Description = *body.Description
	}
	if body.Price != nil {
		if *body.Price < 0 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("price tidak boleh negatif"))
			return
		}
		menu.Price = *body.Price
	}
	if body.Category != nil {
		if *body.Category == models.CategoryAll {
			utils.RespondError(c, http.StatusBadRequest, errors.New("kategori tidak valid"))
			return
		}
		menu.Category = *body.Category
	}
	if body.ImageUrl != nil {
		menu.ImageUrl = *body.ImageUrl
	}
	if body.Available != nil {
		menu.Available = *body.Available
	}
	menu.UpdatedAt = time.Now()

	if err := mc.DB.Save(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu updated", menu)
}

// DeleteMenu
func (mc *MenuController) DeleteMenu(c *gin.Context) {
	idStr := c.Param("menu_id")
	id, _ := strconv.Atoi(idStr)

	if err := mc.DB.Delete(&models.MenuItem{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu deleted", gin.H{"menu_id": id})
}
