package main

import (
	"log"

	"scentora-be/internal/api"
	"scentora-be/internal/cart"
	"scentora-be/internal/checkout"
	"scentora-be/internal/config"
	"scentora-be/internal/db"
	"scentora-be/internal/inventory"
	"scentora-be/internal/logger"
	"scentora-be/internal/notifier"
	"scentora-be/internal/order"
	"scentora-be/internal/product"
	"scentora-be/internal/user"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	productRepo := product.NewRepository(database)
	ledger := inventory.NewLedger(productRepo)

	userRepo := user.NewRepository(database)

	cartRepo := cart.NewRepository(database)
	cartSvc := cart.NewService(cartRepo, ledger)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo)

	var n notifier.Notifier
	smtpNotifier, err := notifier.NewSMTPNotifier(cfg)
	if err != nil {
		log.Printf("SMTP notifier disabled: %v", err)
		n = notifier.Nop{}
	} else {
		n = smtpNotifier
	}

	checkoutRepo := checkout.NewRepository(database)
	checkoutSvc := checkout.NewService(checkoutRepo, cartRepo, userRepo, n, cfg.BusinessWhatsapp)

	router := api.NewRouter(cfg.JWTSecret, api.Handlers{
		Cart:     api.NewCartHandler(cartSvc),
		Checkout: api.NewCheckoutHandler(checkoutSvc),
		Order:    api.NewOrderHandler(orderSvc),
	})

	log.Printf("server running at http://localhost:%s/", cfg.AppPort)
	log.Fatal(router.Run(":" + cfg.AppPort))
}
