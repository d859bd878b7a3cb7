package util

import (
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ToDecimal128 converts an in-memory money amount to its BSON form.
func ToDecimal128(d decimal.Decimal) primitive.Decimal128 {
	v, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		LogError("converting decimal to Decimal128", err)
		return primitive.Decimal128{}
	}
	return v
}

// FromDecimal128 converts a stored money amount back to its in-memory form.
func FromDecimal128(v primitive.Decimal128) decimal.Decimal {
	d, err := decimal.NewFromString(v.String())
	if err != nil {
		LogError("converting Decimal128 to decimal", err)
		return decimal.Zero
	}
	return d
}
