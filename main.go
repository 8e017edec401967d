package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/dapurlink/warung-app/cart"
	"github.com/dapurlink/warung-app/config"
	"github.com/dapurlink/warung-app/database"
	"github.com/dapurlink/warung-app/middlewares"
	"github.com/dapurlink/warung-app/models"
	"github.com/dapurlink/warung-app/router"
	"github.com/dapurlink/warung-app/services"
	"github.com/dapurlink/warung-app/utils"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	utils.InitLogger()
}

func main() {
	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	utils.InitDB(db)

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)

	// Store cart sesi customer; sesi idle 2 jam dibuang
	carts := cart.NewStore(2 * time.Hour)
	defer carts.Stop()

	// Monitor perubahan orders -> broadcast ke dashboard dapur
	monitor := services.NewChangeMonitor(utils.GetDB())
	monitor.Interval = 500 * time.Millisecond
	monitor.Start()
	defer monitor.Stop()

	rateLimiter := middlewares.NewRateLimiter(50, 1)
	r := router.SetupRouter(db, carts, rateLimiter)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.DBChange{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")

	// Trigger hanya untuk MySQL; di sqlite ChangeMonitor tetap jalan tapi
	// tidak ada yang mengisi db_changes
	if os.Getenv("DB_DRIVER") != "sqlite" {
		if err := database.ExecuteTriggers(db); err != nil {
			utils.ErrorLogger.Printf("Error setting up triggers: %v", err)
		}
	}
}
