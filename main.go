package main

import (
	"context"
	"log"

	"swiftship-api-io/api/internal/common"
	"swiftship-api-io/api/internal/indexer"
	"swiftship-api-io/api/internal/routers"
)

func main() {
	// Database and Redis connect at package init; ensure indexes before
	// taking traffic.
	if _, err := indexer.Ensure(context.Background(), common.DB.Database("swiftship")); err != nil {
		log.Printf("index creation incomplete: %v", err)
	}

	router := routers.InitRoute()
	err := router.Run("localhost:8080")

	if err != nil {
		println(err.Error())
		return
	}
}
