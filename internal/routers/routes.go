package routers

import (
	"github.com/gin-gonic/gin"

	"swiftship-api-io/api/internal/container"
	"swiftship-api-io/api/internal/middleware"
	"swiftship-api-io/api/pkg/controllers"
)

// InitRoute creates the Gin router with the full service layer wired in.
func InitRoute() *gin.Engine {
	serviceContainer := container.NewServiceContainer()
	router := gin.Default()
	router.Use(middleware.CorsMiddleware())

	api := router.Group("/v1", middleware.RateLimiter())
	{
		api.GET("/ping", controllers.Ping)

		rateRoutes(api, serviceContainer)
		shipmentRoutes(api, serviceContainer)
		addressRoutes(api, serviceContainer)
		walletRoutes(api, serviceContainer)
	}

	return router
}

// rateRoutes configures quote endpoints. They serve anonymous callers too;
// an authenticated caller gets their negotiated rates.
func rateRoutes(api *gin.RouterGroup, sc *container.ServiceContainer) {
	rates := api.Group("/rates").Use(middleware.OptionalAuthenticated())

	rates.POST("/calculate", controllers.CalculateRate(sc.RateEngine))
	rates.POST("/calculate/bulk", controllers.CalculateBulkRates(sc.RateEngine))
}

func shipmentRoutes(api *gin.RouterGroup, sc *container.ServiceContainer) {
	shipments := api.Group("/shipments").Use(middleware.Authenticated())

	shipments.GET("", controllers.GetShipments(sc.ShipmentService))
	shipments.POST("", controllers.CreateShipment(sc.ShipmentService))
	shipments.POST("/bulk", controllers.CreateBulkShipments(sc.Orchestrator))
}

func addressRoutes(api *gin.RouterGroup, sc *container.ServiceContainer) {
	addresses := api.Group("/addresses").Use(middleware.Authenticated())

	addresses.GET("", controllers.GetAddresses(sc.AddressService))
	addresses.GET("/pending", controllers.GetPendingAddresses(sc.AddressService))
	addresses.POST("", controllers.CreateAddress(sc.AddressService))
}

func walletRoutes(api *gin.RouterGroup, sc *container.ServiceContainer) {
	wallet := api.Group("/wallet").Use(middleware.Authenticated())

	wallet.GET("", controllers.GetWallet(sc.WalletService))
	wallet.GET("/transactions", controllers.GetWalletTransactions(sc.WalletService))
	wallet.GET("/cards", controllers.GetPaymentCards(sc.WalletService))
	wallet.POST("/cards", controllers.AddPaymentCard(sc.WalletService))

	admin := api.Group("/wallet").Use(middleware.Authenticated(), middleware.AdminOnly())
	admin.POST("/funds", controllers.AddFunds(sc.WalletService))
}
