package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type ShipmentStatus string

const (
	ShipmentStatusPendingApproval ShipmentStatus = "PendingApproval"
	ShipmentStatusApproved        ShipmentStatus = "Approved"
	ShipmentStatusRejected        ShipmentStatus = "Rejected"
)

// Shipment is created only after the wallet debit for it has succeeded.
// ShippingCost is the base rate plus the insurance premium.
type Shipment struct {
	Id                   primitive.ObjectID   `bson:"_id" json:"_id"`
	HumanReadableId      string               `bson:"human_readable_shipment_id" json:"human_readable_shipment_id"`
	UserId               primitive.ObjectID   `bson:"user_id" json:"user_id"`
	PaymentStatus        PaymentStatus        `bson:"payment_status" json:"payment_status"`
	ShipmentStatus       ShipmentStatus       `bson:"shipment_status" json:"shipment_status"`
	OriginAddressId      primitive.ObjectID   `bson:"origin_address_id" json:"origin_address_id"`
	DestinationAddressId primitive.ObjectID   `bson:"destination_address_id" json:"destination_address_id"`
	RecipientName        string               `bson:"recipient_name" json:"recipient_name"`
	RecipientMobile      string               `bson:"recipient_mobile" json:"recipient_mobile"`
	PackageImageUrl      string               `bson:"package_image_url" json:"package_image_url"`
	PackageWeight        float64              `bson:"package_weight" json:"package_weight"`
	PackageDimensions    string               `bson:"package_dimensions" json:"package_dimensions"`
	ShippingCost         primitive.Decimal128 `bson:"shipping_cost" json:"shipping_cost"`
	DeclaredValue        primitive.Decimal128 `bson:"declared_value" json:"declared_value"`
	IsInsuranceSelected  bool                 `bson:"is_insurance_selected" json:"is_insurance_selected"`
	InsurancePremium     primitive.Decimal128 `bson:"insurance_premium" json:"insurance_premium"`
	CompensationAmount   primitive.Decimal128 `bson:"compensation_amount" json:"compensation_amount"`
	InvoiceUrl           string               `bson:"invoice_url,omitempty" json:"invoice_url,omitempty"`
	CreatedAt            primitive.DateTime   `bson:"created_at" json:"created_at"`
}

// Base64File is an inline upload payload: a data URI (or bare base64 body)
// plus enough metadata to name and type the stored object.
type Base64File struct {
	Data string `json:"data" validate:"required"`
	Name string `json:"name" validate:"required"`
	Type string `json:"type" validate:"required"`
	Size int64  `json:"size"`
}

type ShipmentRequest struct {
	OriginAddressId      string      `json:"origin_address_id" validate:"required"`
	DestinationAddressId string      `json:"destination_address_id" validate:"required"`
	RecipientName        string      `json:"recipient_name" validate:"required"`
	RecipientMobile      string      `json:"recipient_mobile" validate:"required,len=10,numeric"`
	PackageWeight        float64     `json:"package_weight" validate:"required,gt=0,lte=1000"`
	PackageLength        int         `json:"package_length" validate:"required,gt=0"`
	PackageBreadth       int         `json:"package_breadth" validate:"required,gt=0"`
	PackageHeight        int         `json:"package_height" validate:"required,gt=0"`
	PackageImage         Base64File  `json:"package_image" validate:"required"`
	DeclaredValue        float64     `json:"declared_value" validate:"gte=0"`
	IsInsuranceSelected  bool        `json:"is_insurance_selected"`
	Invoice              *Base64File `json:"invoice,omitempty"`
}

// BulkShipmentItem is one row of a bulk submission. Addresses arrive as raw
// fields, not ids; the reconciler resolves or creates them.
type BulkShipmentItem struct {
	RecipientName          string      `json:"recipient_name" validate:"required"`
	RecipientMobile        string      `json:"recipient_mobile" validate:"required,len=10,numeric"`
	PackageWeight          float64     `json:"package_weight" validate:"required,gt=0,lte=1000"`
	PackageLength          int         `json:"package_length" validate:"required,gt=0"`
	PackageBreadth         int         `json:"package_breadth" validate:"required,gt=0"`
	PackageHeight          int         `json:"package_height" validate:"required,gt=0"`
	OriginAddressLine      string      `json:"origin_address_line" validate:"required"`
	OriginLandmark         string      `json:"origin_landmark"`
	OriginCity             string      `json:"origin_city" validate:"required"`
	OriginState            string      `json:"origin_state" validate:"required"`
	OriginZipCode          string      `json:"origin_zip_code" validate:"required,len=6,numeric"`
	DestinationAddressLine string      `json:"destination_address_line" validate:"required"`
	DestinationLandmark    string      `json:"destination_landmark"`
	DestinationCity        string      `json:"destination_city" validate:"required"`
	DestinationState       string      `json:"destination_state" validate:"required"`
	DestinationZipCode     string      `json:"destination_zip_code" validate:"required,len=6,numeric"`
	PackageImage           Base64File  `json:"package_image" validate:"required"`
	DeclaredValue          float64     `json:"declared_value" validate:"gte=0"`
	IsInsuranceSelected    bool        `json:"is_insurance_selected"`
	Invoice                *Base64File `json:"invoice,omitempty"`
}

type BulkShipmentRequest struct {
	Shipments []BulkShipmentItem `json:"shipments" validate:"required,min=1,max=500,dive"`
}

type BulkItemStatus string

const (
	BulkItemSuccess BulkItemStatus = "success"
	BulkItemPending BulkItemStatus = "pending"
	BulkItemError   BulkItemStatus = "error"
)

// BulkItemResult is the transient per-row outcome of a bulk submission.
// It is returned to the caller and never persisted.
type BulkItemResult struct {
	RecipientName string         `json:"recipient_name"`
	Status        BulkItemStatus `json:"status"`
	Message       string         `json:"message"`
	ShipmentId    string         `json:"shipment_id,omitempty"`
}
