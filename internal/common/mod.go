package common

import (
	"context"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"swiftship-api-io/api/pkg/util"
)

// Initialize db connection
func ConnectDB() (client *mongo.Client) {
	log.Println("starting MongoDB connection..")
	client, err := mongo.NewClient(options.Client().ApplyURI(util.LoadEnvFor("DATABASE_URL")))
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err = client.Connect(ctx)
	if err != nil {
		log.Fatal(err)
	}

	// try to ping the database
	err = client.Ping(ctx, nil)
	if err != nil {
		log.Fatal(err)
	}

	log.Println("MongoDB connection successful")
	return
}

// DB client instance
var DB = ConnectDB()

// GetCollection Get collection from Db
func GetCollection(client *mongo.Client, name string) (collection *mongo.Collection) {
	collection = client.Database("swiftship").Collection(name)
	return
}

// Initialize redis connection
func ConnectRedis() *redis.Client {
	addr, err := redis.ParseURL(util.LoadEnvFor("REDIS_URL"))
	if err != nil {
		log.Fatal(err)
	}

	client := redis.NewClient(addr)

	log.Println("redis connection successful..")
	return client
}

var REDIS = ConnectRedis()

// Database collections
var (
	AddressCollection        = GetCollection(DB, "Address")
	PendingAddressCollection = GetCollection(DB, "PendingAddress")
	DefaultRateCollection    = GetCollection(DB, "DefaultRate")
	UserRateCollection       = GetCollection(DB, "UserRate")
	WalletCollection         = GetCollection(DB, "Wallet")
	TransactionCollection    = GetCollection(DB, "Transaction")
	ShipmentCollection       = GetCollection(DB, "Shipment")
	PaymentCardCollection    = GetCollection(DB, "UserPaymentCard")

	Validate = validator.New()
)

const REQUEST_TIMEOUT_SECS = 2 * 60 * time.Second
