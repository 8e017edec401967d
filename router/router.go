package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dapurlink/warung-app/cart"
	"github.com/dapurlink/warung-app/controllers"
	"github.com/dapurlink/warung-app/middlewares"
)

// SetupRouter merangkai seluruh route. Limiter ikut dipasang di sini:
// gin mengunci chain handler saat route didaftarkan, jadi middleware yang
// di-Use setelah SetupRouter tidak akan pernah jalan.
func SetupRouter(db *gorm.DB, carts *cart.Store, limiter *middlewares.RateLimiter) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(limiter.RateLimit())

	menuCtrl := controllers.NewMenuController(db)
	cartCtrl := controllers.NewCartController(db, carts)
	orderCtrl := controllers.NewOrderController(db, carts)
	userCtrl := controllers.NewUserController(db)

	api := r.Group("/api")

	// Sisi customer: katalog, cart sesi, checkout. Tanpa login.
	api.GET("/menus", menuCtrl.GetAllMenus)
	api.GET("/menus/:menu_id", menuCtrl.GetMenuByID)

	api.GET("/cart", cartCtrl.GetCart)
	api.POST("/cart/items", cartCtrl.AddItem)
	api.PATCH("/cart/items/:menu_item_id", cartCtrl.UpdateItem)

	api.POST("/checkout", orderCtrl.Checkout)

	// Auth user internal
	auth := api.Group("/auth")
	auth.POST("/register", middlewares.NewStrictRateLimiter(), userCtrl.Register)
	auth.POST("/login", middlewares.NewStrictRateLimiter(), userCtrl.Login)
	auth.POST("/logout", middlewares.AuthMiddleware(), userCtrl.Logout)
	auth.GET("/profile", middlewares.AuthMiddleware(), userCtrl.GetProfile)

	// Sisi dapur: feed order + transisi status, perlu login
	kitchen := api.Group("/")
	kitchen.Use(middlewares.AuthMiddleware())
	kitchen.Use(middlewares.RequireRoles("chef", "staff"))
	{
		kitchen.GET("/orders", orderCtrl.GetAllOrders)
		kitchen.GET("/orders/stats", orderCtrl.GetOrderStats)
		kitchen.GET("/orders/:order_id", orderCtrl.GetOrderByID)
		kitchen.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)
	}

	// Jalur admin menu
	admin := api.Group("/admin")
	admin.Use(middlewares.AuthMiddleware())
	admin.Use(middlewares.RequireRoles("admin"))
	{
		admin.GET("/menus", menuCtrl.GetAllMenusAdmin)
		admin.POST("/menus", menuCtrl.CreateMenu)
		admin.PATCH("/menus/:menu_id", menuCtrl.UpdateMenu)
		admin.DELETE("/menus/:menu_id", menuCtrl.DeleteMenu)
	}

	// WebSocket dashboard dapur; token lewat query string
	r.GET("/api/kitchen/ws", middlewares.WebSocketAuthMiddleware(), controllers.KDSHandler)

	return r
}
