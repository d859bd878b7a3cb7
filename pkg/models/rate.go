package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// DefaultRate is one row of the platform-wide rate table: the base price for
// moving one weight slab between two zones. Weight slabs are discrete
// half-kilogram steps.
type DefaultRate struct {
	Id         primitive.ObjectID `bson:"_id" json:"_id"`
	ZoneFrom   string             `bson:"zone_from" json:"zone_from" validate:"required"`
	ZoneTo     string             `bson:"zone_to" json:"zone_to" validate:"required"`
	WeightSlab float64            `bson:"weight_slab" json:"weight_slab" validate:"required,gt=0"`
	Rate       float64            `bson:"rate" json:"rate" validate:"required,gt=0"`
}

// UserRate is a per-user override of a DefaultRate row.
type UserRate struct {
	Id         primitive.ObjectID `bson:"_id" json:"_id"`
	UserId     primitive.ObjectID `bson:"user_id" json:"user_id"`
	ZoneFrom   string             `bson:"zone_from" json:"zone_from"`
	ZoneTo     string             `bson:"zone_to" json:"zone_to"`
	WeightSlab float64            `bson:"weight_slab" json:"weight_slab"`
	Rate       float64            `bson:"rate" json:"rate"`
}

// RateLookup identifies one rate-table row to resolve for a shipment.
type RateLookup struct {
	ZoneFrom      string
	ZoneTo        string
	WeightSlab    float64
	PackageWeight float64
}

type RateRequest struct {
	OriginZipCode       string   `json:"origin_zip_code" validate:"required,len=6,numeric"`
	DestinationZipCode  string   `json:"destination_zip_code" validate:"required,len=6,numeric"`
	PackageWeight       float64  `json:"package_weight" validate:"required,gt=0,lte=1000"`
	DeclaredValue       *float64 `json:"declared_value,omitempty"`
	IsInsuranceSelected bool     `json:"is_insurance_selected"`
}

type BulkRateRequest struct {
	Items []RateRequest `json:"items" validate:"required,min=1,max=500,dive"`
}

// ZoneDetails is the resolved city/state pair for one end of a shipment,
// returned alongside a calculated rate for display.
type ZoneDetails struct {
	City  string `json:"city"`
	State string `json:"state"`
}
