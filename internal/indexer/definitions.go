package indexer

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// caseInsensitive compares strings ignoring case and diacritics, so
// "MG Road" and "mg road" collide on the address identity index.
var caseInsensitive = &options.Collation{Locale: "en", Strength: 2}

var addressIdentityFields = []string{"user_id", "address_line", "city", "state", "zip_code"}

// Ensure creates every index the API relies on. Safe to run on every boot.
func Ensure(ctx context.Context, db *mongo.Database) (*Result, error) {
	manager := NewManager(db)

	manager.AddCompoundIndex("Address", addressIdentityFields,
		options.Index().
			SetName("address_identity_unique").
			SetUnique(true).
			SetCollation(caseInsensitive))

	manager.AddCompoundIndex("PendingAddress", addressIdentityFields,
		options.Index().
			SetName("pending_address_identity_unique").
			SetUnique(true).
			SetCollation(caseInsensitive))

	manager.AddIndex("Wallet", mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetName("wallet_user_unique").SetUnique(true),
	})

	manager.AddIndex("Transaction", mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
		Options: options.Index().SetName("transaction_user_recent"),
	})

	manager.AddIndex("Shipment", mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
		Options: options.Index().SetName("shipment_user_recent"),
	})
	manager.AddIndex("Shipment", mongo.IndexModel{
		Keys:    bson.D{{Key: "human_readable_shipment_id", Value: 1}},
		Options: options.Index().SetName("shipment_readable_id_unique").SetUnique(true),
	})

	manager.AddCompoundIndex("DefaultRate", []string{"zone_from", "zone_to", "weight_slab"},
		options.Index().SetName("default_rate_slab_unique").SetUnique(true))

	manager.AddCompoundIndex("UserRate", []string{"user_id", "zone_from", "zone_to", "weight_slab"},
		options.Index().SetName("user_rate_slab_unique").SetUnique(true))

	manager.AddIndex("UserPaymentCard", mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetName("payment_card_user"),
	})

	return manager.Create(ctx)
}
