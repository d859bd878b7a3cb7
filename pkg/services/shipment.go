package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"swiftship-api-io/api/pkg/apperr"
	"swiftship-api-io/api/pkg/models"
	"swiftship-api-io/api/pkg/util"
)

// GenerateShipmentID builds the human readable shipment id shown on labels
// and in the ledger, e.g. SS-RAVI-KUMAR-64F1A2B3.
func GenerateShipmentID(recipientName string) string {
	name := slug.Make(recipientName)
	if len(name) > 12 {
		name = strings.Trim(name[:12], "-")
	}
	suffix := primitive.NewObjectID().Hex()
	return strings.ToUpper(fmt.Sprintf("SS-%s-%s", name, suffix[len(suffix)-8:]))
}

// FormatDimensions renders package dimensions for display, e.g. "20x15x10 cm".
func FormatDimensions(length, breadth, height int) string {
	return fmt.Sprintf("%dx%dx%d cm", length, breadth, height)
}

// ShipmentService books single shipments against saved addresses and lists a
// user's shipment history.
type ShipmentService struct {
	addresses AddressStore
	engine    *RateEngine
	wallet    WalletStore
	shipments ShipmentStore
	uploader  Uploader
	runTx     TxRunner
}

func NewShipmentService(
	addresses AddressStore,
	engine *RateEngine,
	wallet WalletStore,
	shipments ShipmentStore,
	uploader Uploader,
	runTx TxRunner,
) *ShipmentService {
	return &ShipmentService{
		addresses: addresses,
		engine:    engine,
		wallet:    wallet,
		shipments: shipments,
		uploader:  uploader,
		runTx:     runTx,
	}
}

// Create books one shipment between two saved addresses. The wallet debit,
// ledger row and shipment record commit atomically.
func (s *ShipmentService) Create(ctx context.Context, userID primitive.ObjectID, req models.ShipmentRequest) (*models.Shipment, error) {
	originID, err := primitive.ObjectIDFromHex(req.OriginAddressId)
	if err != nil {
		return nil, apperr.New(apperr.Validation, "origin_address_id is not a valid id")
	}
	destinationID, err := primitive.ObjectIDFromHex(req.DestinationAddressId)
	if err != nil {
		return nil, apperr.New(apperr.Validation, "destination_address_id is not a valid id")
	}

	addresses, err := s.addresses.FindByIds(ctx, userID, []primitive.ObjectID{originID, destinationID})
	if err != nil {
		return nil, err
	}
	var origin, destination *models.Address
	for i := range addresses {
		switch addresses[i].Id {
		case originID:
			origin = &addresses[i]
		case destinationID:
			destination = &addresses[i]
		}
	}
	if origin == nil {
		return nil, apperr.New(apperr.NotFound, "origin address not found")
	}
	if origin.Type != models.AddressTypeWarehouse {
		return nil, apperr.New(apperr.Precondition, "origin address is not an approved pickup location")
	}
	if destination == nil {
		return nil, apperr.New(apperr.NotFound, "destination address not found")
	}

	declared := req.DeclaredValue
	quote, err := s.engine.Quote(ctx, &userID, models.RateRequest{
		OriginZipCode:       origin.ZipCode,
		DestinationZipCode:  destination.ZipCode,
		PackageWeight:       req.PackageWeight,
		DeclaredValue:       &declared,
		IsInsuranceSelected: req.IsInsuranceSelected,
	})
	if err != nil {
		return nil, err
	}

	shipmentID := primitive.NewObjectID()
	out, err := s.runTx(ctx, func(ctx context.Context) (any, error) {
		wallet, err := s.wallet.Get(ctx, userID)
		if err != nil {
			return nil, err
		}
		if util.FromDecimal128(wallet.Balance).LessThan(quote.TotalCost) {
			return nil, apperr.New(apperr.Precondition, "Insufficient wallet balance. Recharge your wallet.")
		}
		if err := s.wallet.Adjust(ctx, userID, quote.TotalCost.Neg()); err != nil {
			return nil, err
		}
		if err := s.wallet.RecordTransaction(ctx, models.WalletTransaction{
			Id:              primitive.NewObjectID(),
			UserId:          userID,
			TransactionType: models.TransactionTypeDebit,
			Amount:          util.ToDecimal128(quote.TotalCost),
			PaymentStatus:   models.PaymentStatusCompleted,
			ShipmentId:      &shipmentID,
			Description:     fmt.Sprintf("Shipment booking for %s", req.RecipientName),
			CreatedAt:       primitive.NewDateTimeFromTime(time.Now()),
		}); err != nil {
			return nil, err
		}

		imageURL, err := s.uploader.Upload(ctx, req.PackageImage, packageImageFolder)
		if err != nil {
			return nil, err
		}
		var invoiceURL string
		if req.IsInsuranceSelected && req.Invoice != nil {
			invoiceURL, err = s.uploader.Upload(ctx, *req.Invoice, invoiceFolder)
			if err != nil {
				return nil, err
			}
		}

		shipment := models.Shipment{
			Id:                   shipmentID,
			HumanReadableId:      GenerateShipmentID(req.RecipientName),
			UserId:               userID,
			PaymentStatus:        models.PaymentStatusPaid,
			ShipmentStatus:       models.ShipmentStatusPendingApproval,
			OriginAddressId:      originID,
			DestinationAddressId: destinationID,
			RecipientName:        req.RecipientName,
			RecipientMobile:      req.RecipientMobile,
			PackageImageUrl:      imageURL,
			PackageWeight:        req.PackageWeight,
			PackageDimensions:    FormatDimensions(req.PackageLength, req.PackageBreadth, req.PackageHeight),
			ShippingCost:         util.ToDecimal128(quote.TotalCost),
			DeclaredValue:        util.ToDecimal128(decimal.NewFromFloat(req.DeclaredValue)),
			IsInsuranceSelected:  req.IsInsuranceSelected,
			InsurancePremium:     util.ToDecimal128(quote.InsurancePremium),
			CompensationAmount:   util.ToDecimal128(quote.CompensationAmount),
			InvoiceUrl:           invoiceURL,
			CreatedAt:            primitive.NewDateTimeFromTime(time.Now()),
		}
		if err := s.shipments.CreateMany(ctx, []models.Shipment{shipment}); err != nil {
			return nil, err
		}
		return &shipment, nil
	})
	if err != nil {
		return nil, err
	}
	return out.(*models.Shipment), nil
}

// List returns a page of the user's shipments, newest first, optionally
// filtered by status.
func (s *ShipmentService) List(ctx context.Context, userID primitive.ObjectID, status *models.ShipmentStatus, pagination util.PaginationArgs) ([]models.Shipment, int64, error) {
	return s.shipments.ListByUser(ctx, userID, status, pagination)
}
