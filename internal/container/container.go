package container

import (
	"log"

	"swiftship-api-io/api/internal/store"
	"swiftship-api-io/api/pkg/services"
	"swiftship-api-io/api/pkg/util"
)

// ServiceContainer wires stores into services once at boot. Everything
// downstream of the stores is database-agnostic.
type ServiceContainer struct {
	Pincodes *services.PincodeDirectory

	ZoneResolver *services.ZoneResolver
	RateEngine   *services.RateEngine

	AddressService  *services.AddressService
	WalletService   *services.WalletService
	ShipmentService *services.ShipmentService
	Orchestrator    *services.BulkShipmentOrchestrator
}

func NewServiceContainer() *ServiceContainer {
	pincodes := services.NewPincodeDirectory(util.LoadEnvFor("PINCODE_DATA_FILE"))
	if err := pincodes.Warm(); err != nil {
		log.Fatal(err)
	}

	uploader, err := services.NewCloudinaryUploader()
	if err != nil {
		log.Fatal(err)
	}

	addressStore := store.AddressStore{}
	rateStore := store.RateStore{}
	walletStore := store.WalletStore{}
	shipmentStore := store.ShipmentStore{}
	runTx := store.TxRunner()

	zoneResolver := services.NewZoneResolver(pincodes)
	rateEngine := services.NewRateEngine(zoneResolver, rateStore)
	reconciler := services.NewAddressReconciler(addressStore, pincodes)

	return &ServiceContainer{
		Pincodes:        pincodes,
		ZoneResolver:    zoneResolver,
		RateEngine:      rateEngine,
		AddressService:  services.NewAddressService(addressStore, pincodes),
		WalletService:   services.NewWalletService(walletStore, runTx),
		ShipmentService: services.NewShipmentService(addressStore, rateEngine, walletStore, shipmentStore, uploader, runTx),
		Orchestrator: services.NewBulkShipmentOrchestrator(
			reconciler, zoneResolver, rateEngine, walletStore, shipmentStore, uploader, runTx),
	}
}
