package main

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/viratcollections/virat-api/controllers"
	"github.com/viratcollections/virat-api/gateway"
	"github.com/viratcollections/virat-api/initializers"
	"github.com/viratcollections/virat-api/repo"
	"github.com/viratcollections/virat-api/routes"
	"github.com/viratcollections/virat-api/services"
	"github.com/viratcollections/virat-api/workers"
)

func init() {
	initializers.LoadEnv()
	initializers.ConnectToDB()
	initializers.SyncDatabase()
}

func main() {
	db := initializers.DB

	cartRepo := repo.NewCartRepo(db)
	productRepo := repo.NewProductRepo(db)
	orderRepo := repo.NewOrderRepo(db)
	draftRepo := repo.NewDraftRepo(db)

	phonePe := gateway.NewPhonePeClient()

	catalogService := services.NewCatalogService(productRepo)
	cartService := services.NewCartService(cartRepo)
	ledgerService := services.NewLedgerService(orderRepo)
	checkoutService := services.NewCheckoutService(db, catalogService, cartRepo, orderRepo)
	paymentService := services.NewPaymentService(db, checkoutService, draftRepo, orderRepo, cartRepo, phonePe)

	worker := workers.NewReconciliationWorker(
		draftRepo,
		phonePe,
		paymentService,
		5*time.Minute,  // sweep interval
		15*time.Minute, // leave fresh drafts alone
		24*time.Hour,   // draft TTL
	)
	go worker.Run(context.Background())

	server := gin.Default()
	server.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "https://www.viratcollections.store"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.DefaultRoutes(server)
	routes.AuthRoutes(server)
	routes.ProductRoutes(server)
	routes.BannerRoutes(server)
	routes.CartRoutes(server, controllers.NewCartController(cartService))
	routes.OrderRoutes(server, controllers.NewOrderController(checkoutService, ledgerService))
	routes.PaymentRoutes(server, controllers.NewPaymentController(paymentService))

	server.Run()
}
