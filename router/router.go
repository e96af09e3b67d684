package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kmuchiri/jikoni-orders/controllers"
	"github.com/kmuchiri/jikoni-orders/middlewares"
	"github.com/kmuchiri/jikoni-orders/services"
)

// Deps carries everything the routes need; main wires it up once.
type Deps struct {
	Menu     *services.MenuSynchronizer
	Orders   *services.OrderSynchronizer
	Settings *services.SettingsSynchronizer
	Gate     *services.AuthGate

	NewComposer func() *services.CartComposer
}

func SetupRouter(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	// 50 req/s sustained per IP, bursts up to 100
	r.Use(middlewares.NewRateLimiter(50, 100).RateLimit())

	menuCtrl := controllers.NewMenuController(deps.Menu)
	orderCtrl := controllers.NewOrderController(deps.Orders)
	settingsCtrl := controllers.NewSettingsController(deps.Settings)
	adminCtrl := controllers.NewAdminController(deps.Gate)
	cartCtrl := controllers.NewCartController(deps.Menu, deps.NewComposer)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	r.GET("/menu", menuCtrl.GetAllMenuItems)
	r.GET("/settings", settingsCtrl.GetSettings)

	cart := r.Group("/cart")
	{
		cart.GET("", cartCtrl.GetCart)
		cart.POST("/items", cartCtrl.AddItem)
		cart.DELETE("/items/:item_id", cartCtrl.RemoveItem)
		cart.POST("/clear", cartCtrl.ClearCart)
		cart.POST("/submit", cartCtrl.Submit)
	}

	r.POST("/admin/login", middlewares.NewStrictRateLimiter(), adminCtrl.Login)

	// Live updates; admin token (query param) also unlocks order snapshots.
	r.GET("/ws", middlewares.WebSocketAuthMiddleware(), controllers.StreamHandler)

	// ----------------------------------------------------------------
	//                      ADMIN ROUTES
	// ----------------------------------------------------------------
	admin := r.Group("/admin")
	admin.Use(middlewares.AdminRequired())
	{
		admin.POST("/logout", adminCtrl.Logout)

		admin.POST("/menu", menuCtrl.CreateMenuItem)
		admin.PATCH("/menu/:item_id", menuCtrl.UpdateMenuItem)
		admin.DELETE("/menu/:item_id", menuCtrl.DeleteMenuItem)
		admin.PATCH("/menu/:item_id/availability", menuCtrl.SetAvailability)
		admin.POST("/menu/availability", menuCtrl.BulkSetAvailability)

		admin.GET("/orders", orderCtrl.GetAllOrders)
		admin.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)
		admin.DELETE("/orders/:order_id", orderCtrl.DeleteOrder)
		admin.GET("/orders/export", orderCtrl.ExportOrders)

		admin.PATCH("/settings/:setting_id", settingsCtrl.UpdateSetting)
	}

	return r
}
