package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Wallet holds a user's prepaid balance. The balance never goes negative and
// is mutated only inside a database transaction.
type Wallet struct {
	Id        primitive.ObjectID   `bson:"_id" json:"_id"`
	UserId    primitive.ObjectID   `bson:"user_id" json:"user_id"`
	Balance   primitive.Decimal128 `bson:"balance" json:"balance"`
	UpdatedAt primitive.DateTime   `bson:"updated_at" json:"updated_at"`
}

type TransactionType string

const (
	TransactionTypeCredit TransactionType = "Credit"
	TransactionTypeDebit  TransactionType = "Debit"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "Pending"
	PaymentStatusCompleted PaymentStatus = "Completed"
	PaymentStatusFailed    PaymentStatus = "Failed"
	PaymentStatusPaid      PaymentStatus = "Paid"
)

// WalletTransaction is one append-only ledger row. Rows are never rewritten;
// only the payment status moves from Pending to Completed or Failed.
type WalletTransaction struct {
	Id              primitive.ObjectID   `bson:"_id" json:"_id"`
	UserId          primitive.ObjectID   `bson:"user_id" json:"user_id"`
	TransactionType TransactionType      `bson:"transaction_type" json:"transaction_type"`
	Amount          primitive.Decimal128 `bson:"amount" json:"amount"`
	PaymentStatus   PaymentStatus        `bson:"payment_status" json:"payment_status"`
	ShipmentId      *primitive.ObjectID  `bson:"shipment_id,omitempty" json:"shipment_id,omitempty"`
	Description     string               `bson:"description" json:"description"`
	CreatedAt       primitive.DateTime   `bson:"created_at" json:"created_at"`
}

// PaymentCard is a saved wallet-recharge instrument. Only the masked tail of
// the card number is persisted.
type PaymentCard struct {
	Id             primitive.ObjectID `bson:"_id" json:"_id"`
	UserId         primitive.ObjectID `bson:"user_id" json:"user_id"`
	CardHolderName string             `bson:"card_holder_name" json:"card_holder_name"`
	Company        string             `bson:"company" json:"company"`
	LastFourDigits string             `bson:"last_four_digits" json:"last_four_digits"`
	ExpiryMonth    string             `bson:"expiry_month" json:"expiry_month"`
	ExpiryYear     string             `bson:"expiry_year" json:"expiry_year"`
	IsDefault      bool               `bson:"is_default" json:"is_default"`
	CreatedAt      primitive.DateTime `bson:"created_at" json:"created_at"`
}

type PaymentCardRequest struct {
	CardHolderName string `json:"card_holder_name" validate:"required"`
	CardNumber     string `json:"card_number" validate:"required"`
	CVV            string `json:"cvv" validate:"required,min=3,max=4"`
	ExpiryMonth    string `json:"expiry_month" validate:"required"`
	ExpiryYear     string `json:"expiry_year" validate:"required"`
	IsDefault      bool   `json:"is_default"`
}

type AddFundsRequest struct {
	UserId      string  `json:"user_id" validate:"required"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Description string  `json:"description" validate:"required"`
}
