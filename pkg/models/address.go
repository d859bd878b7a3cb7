package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type AddressType string

const (
	// AddressTypeWarehouse marks a pickup-capable origin address.
	AddressTypeWarehouse AddressType = "Warehouse"
	// AddressTypeUser marks a delivery destination address.
	AddressTypeUser AddressType = "User"
)

// Address is an approved address owned by one user. Once approved it is
// immutable; per user no two approved addresses may share the same
// (address_line, city, state, zip_code) tuple, compared case-insensitively.
type Address struct {
	Id          primitive.ObjectID `bson:"_id" json:"_id"`
	UserId      primitive.ObjectID `bson:"user_id" json:"user_id"`
	Name        string             `bson:"name" json:"name"`
	AddressLine string             `bson:"address_line" json:"address_line" validate:"required"`
	Landmark    string             `bson:"landmark,omitempty" json:"landmark,omitempty"`
	City        string             `bson:"city" json:"city" validate:"required"`
	State       string             `bson:"state" json:"state" validate:"required"`
	ZipCode     string             `bson:"zip_code" json:"zip_code" validate:"required,len=6,numeric"`
	Type        AddressType        `bson:"type" json:"type" validate:"required,oneof=Warehouse User"`
	CreatedAt   primitive.DateTime `bson:"created_at" json:"created_at"`
}

// PendingAddress is a pickup address awaiting admin approval. It is promoted
// to an Address (type Warehouse) or discarded by the approval workflow.
type PendingAddress struct {
	Id          primitive.ObjectID `bson:"_id" json:"_id"`
	UserId      primitive.ObjectID `bson:"user_id" json:"user_id"`
	Name        string             `bson:"name" json:"name"`
	AddressLine string             `bson:"address_line" json:"address_line"`
	Landmark    string             `bson:"landmark,omitempty" json:"landmark,omitempty"`
	City        string             `bson:"city" json:"city"`
	State       string             `bson:"state" json:"state"`
	ZipCode     string             `bson:"zip_code" json:"zip_code"`
	CreatedAt   primitive.DateTime `bson:"created_at" json:"created_at"`
}

type AddressRequest struct {
	Name        string      `json:"name" validate:"required"`
	AddressLine string      `json:"address_line" validate:"required"`
	Landmark    string      `json:"landmark"`
	City        string      `json:"city" validate:"required"`
	State       string      `json:"state" validate:"required"`
	ZipCode     string      `json:"zip_code" validate:"required,len=6,numeric"`
	Type        AddressType `json:"type" validate:"required,oneof=Warehouse User"`
}
