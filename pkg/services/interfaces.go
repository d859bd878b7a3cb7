package services

import (
	"context"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"swiftship-api-io/api/pkg/models"
	"swiftship-api-io/api/pkg/util"
)

// AddressStore is the persistence surface used by the reconciler and the
// shipment flows. List and the Create methods are batched on purpose: the
// reconciler pre-fetches once per bulk submission instead of once per row.
type AddressStore interface {
	List(ctx context.Context, userID primitive.ObjectID, addressType *models.AddressType) ([]models.Address, error)
	ListPending(ctx context.Context, userID primitive.ObjectID) ([]models.PendingAddress, error)
	FindByIds(ctx context.Context, userID primitive.ObjectID, ids []primitive.ObjectID) ([]models.Address, error)
	CreateApproved(ctx context.Context, addresses []models.Address) error
	CreatePending(ctx context.Context, addresses []models.PendingAddress) error
}

// RateStore resolves exact-match rate rows for a set of lookups in one query
// per table.
type RateStore interface {
	FindUserRates(ctx context.Context, userID primitive.ObjectID, lookups []models.RateLookup) ([]models.UserRate, error)
	FindDefaultRates(ctx context.Context, lookups []models.RateLookup) ([]models.DefaultRate, error)
}

// WalletStore reads and mutates a user's wallet and ledger. Adjust applies a
// signed delta to the balance and must be called inside a transaction.
type WalletStore interface {
	Get(ctx context.Context, userID primitive.ObjectID) (*models.Wallet, error)
	Adjust(ctx context.Context, userID primitive.ObjectID, delta decimal.Decimal) error
	RecordTransaction(ctx context.Context, tx models.WalletTransaction) error
	ListTransactions(ctx context.Context, userID primitive.ObjectID, pagination util.PaginationArgs) ([]models.WalletTransaction, int64, error)

	CountCards(ctx context.Context, userID primitive.ObjectID) (int64, error)
	SaveCard(ctx context.Context, card models.PaymentCard) error
	ListCards(ctx context.Context, userID primitive.ObjectID) ([]models.PaymentCard, error)
	ClearDefaultCards(ctx context.Context, userID, exceptId primitive.ObjectID) error
}

type ShipmentStore interface {
	CreateMany(ctx context.Context, shipments []models.Shipment) error
	ListByUser(ctx context.Context, userID primitive.ObjectID, status *models.ShipmentStatus, pagination util.PaginationArgs) ([]models.Shipment, int64, error)
}

// Uploader pushes an inline base64 payload to object storage and returns the
// public URL of the stored object.
type Uploader interface {
	Upload(ctx context.Context, file models.Base64File, folder string) (string, error)
}

// TxRunner executes fn inside one atomic database transaction. Every store
// call made with the context passed to fn participates in that transaction.
type TxRunner func(ctx context.Context, fn func(ctx context.Context) (any, error)) (any, error)
