package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/kmuchiri/jikoni-orders/config"
	"github.com/kmuchiri/jikoni-orders/hub"
	"github.com/kmuchiri/jikoni-orders/models"
	"github.com/kmuchiri/jikoni-orders/router"
	"github.com/kmuchiri/jikoni-orders/services"
	"github.com/kmuchiri/jikoni-orders/store"
	"github.com/kmuchiri/jikoni-orders/store/gormstore"
	"github.com/kmuchiri/jikoni-orders/store/memstore"
	"github.com/kmuchiri/jikoni-orders/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	utils.InitLogger()

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	if config.AdminSecret() == "" {
		utils.ErrorLogger.Println("ADMIN_SECRET is not set; the admin panel will stay locked")
	}

	docStore := openStore()
	defer docStore.Close()

	ctx := context.Background()

	settings := services.NewSettingsSynchronizer(docStore.Collection(models.SettingsCollection))
	settings.OnChange(hub.BroadcastSettingsUpdate)
	settings.Start(ctx)
	defer settings.Stop()

	menu := services.NewMenuSynchronizer(docStore.Collection(models.MenuCollection), models.DefaultCatalog())
	menu.OnChange(hub.BroadcastMenuUpdate)
	menu.Start(ctx)
	defer menu.Stop()

	orders := services.NewOrderSynchronizer(docStore.Collection(models.OrdersCollection))
	orders.OnChange(hub.BroadcastOrdersUpdate)
	orders.Start(ctx)
	defer orders.Stop()

	window := services.NewOrderingWindow()
	closing := func() string { return settings.Value(models.SettingOrderClosingTime) }

	r := router.SetupRouter(router.Deps{
		Menu:     menu,
		Orders:   orders,
		Settings: settings,
		Gate:     services.NewAuthGate(config.AdminSecret()),
		NewComposer: func() *services.CartComposer {
			return services.NewCartComposer(orders, window, closing)
		},
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

// openStore prefers the persistent store; if the database cannot be opened
// the app still comes up on an in-memory store seeded from the built-in
// catalog, so the menu is never missing.
func openStore() store.Store {
	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Printf("Failed to open database, falling back to in-memory store: %v", err)
		return memstore.New()
	}

	gs, err := gormstore.Open(db)
	if err != nil {
		utils.ErrorLogger.Printf("Failed to migrate document tables, falling back to in-memory store: %v", err)
		return memstore.New()
	}
	gs.Start()
	return gs
}
