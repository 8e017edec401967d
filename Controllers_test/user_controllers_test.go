package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dapurlink/warung-app/controllers"
	"github.com/dapurlink/warung-app/models"
	"github.com/dapurlink/warung-app/utils"
)

func setupTestDBForUsers(t *testing.T) *gorm.DB {
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func setupUserRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	userCtrl := controllers.NewUserController(db)
	router.POST("/auth/register", userCtrl.Register)
	router.POST("/auth/login", userCtrl.Login)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, url string, payload interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	b, err := json.Marshal(payload)
	assert.NoError(t, err)
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(b))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestRegisterAndLogin(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForUsers(t)
	router := setupUserRouter(db)

	w, _ := postJSON(t, router, "/auth/register", map[string]interface{}{
		"name":     "Dapur Satu",
		"email":    "chef@warung.test",
		"password": "rahasia-dapur",
		"role":     "chef",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	// Password tersimpan sebagai hash
	var user models.User
	assert.NoError(t, db.Where("email = ?", "chef@warung.test").First(&user).Error)
	assert.NotEqual(t, "rahasia-dapur", user.Password)

	// Login benar -> token
	w, resp := postJSON(t, router, "/auth/login", map[string]interface{}{
		"email":    "chef@warung.test",
		"password": "rahasia-dapur",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	data := resp["data"].(map[string]interface{})
	assert.NotEmpty(t, data["token"])
	assert.Equal(t, "chef", data["user_role"])

	// Password salah -> 401
	w, _ = postJSON(t, router, "/auth/login", map[string]interface{}{
		"email":    "chef@warung.test",
		"password": "salah",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForUsers(t)
	router := setupUserRouter(db)

	w, _ := postJSON(t, router, "/auth/register", map[string]interface{}{
		"name":     "Orang Asing",
		"email":    "x@warung.test",
		"password": "password123",
		"role":     "customer",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
