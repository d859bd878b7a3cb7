package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"

	"swiftship-api-io/api/pkg/apperr"
	"swiftship-api-io/api/pkg/models"
	"swiftship-api-io/api/pkg/util"
)

const (
	packageImageFolder = "shipments/packages"
	invoiceFolder      = "shipments/invoices"
)

// BulkShipmentOrchestrator books a whole bulk submission. Address
// reconciliation settles rows individually; the surviving rows are then
// priced, paid for and created atomically, so a failure anywhere in the
// paid phase leaves no shipment, no debit and no ledger row behind.
type BulkShipmentOrchestrator struct {
	reconciler *AddressReconciler
	zones      *ZoneResolver
	engine     *RateEngine
	wallet     WalletStore
	shipments  ShipmentStore
	uploader   Uploader
	runTx      TxRunner
}

func NewBulkShipmentOrchestrator(
	reconciler *AddressReconciler,
	zones *ZoneResolver,
	engine *RateEngine,
	wallet WalletStore,
	shipments ShipmentStore,
	uploader Uploader,
	runTx TxRunner,
) *BulkShipmentOrchestrator {
	return &BulkShipmentOrchestrator{
		reconciler: reconciler,
		zones:      zones,
		engine:     engine,
		wallet:     wallet,
		shipments:  shipments,
		uploader:   uploader,
		runTx:      runTx,
	}
}

// pricedRow is a ready row with its resolved charge.
type pricedRow struct {
	row          ReadyShipment
	rate         decimal.Decimal
	premium      decimal.Decimal
	compensation decimal.Decimal
}

func (p pricedRow) total() decimal.Decimal { return p.rate.Add(p.premium) }

// CreateBulkShipments books every row of a bulk submission and returns one
// result per row, in submission order. Rows settle as pending or error during
// address reconciliation; the rest are booked all-or-nothing.
func (o *BulkShipmentOrchestrator) CreateBulkShipments(ctx context.Context, userID primitive.ObjectID, items []models.BulkShipmentItem) ([]models.BulkItemResult, error) {
	ready, settled, err := o.reconciler.Reconcile(ctx, userID, items)
	if err != nil {
		return nil, err
	}

	booked := map[int]models.BulkItemResult{}
	if len(ready) > 0 {
		out, txErr := o.runTx(ctx, func(ctx context.Context) (any, error) {
			return o.bookReadyRows(ctx, userID, ready)
		})
		if txErr != nil {
			message := bookingFailureMessage(txErr)
			for _, row := range ready {
				booked[row.Index] = models.BulkItemResult{
					RecipientName: row.Item.RecipientName,
					Status:        models.BulkItemError,
					Message:       message,
				}
			}
		} else {
			booked = out.(map[int]models.BulkItemResult)
		}
	}

	results := make([]models.BulkItemResult, len(items))
	for i := range items {
		if result, ok := settled[i]; ok {
			results[i] = result
			continue
		}
		results[i] = booked[i]
	}
	return results, nil
}

// bookReadyRows prices, pays for and creates all ready rows inside one
// transaction. Any error aborts the whole batch.
func (o *BulkShipmentOrchestrator) bookReadyRows(ctx context.Context, userID primitive.ObjectID, ready []ReadyShipment) (map[int]models.BulkItemResult, error) {
	priced, err := o.priceRows(ctx, userID, ready)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, p := range priced {
		total = total.Add(p.total())
	}

	wallet, err := o.wallet.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if util.FromDecimal128(wallet.Balance).LessThan(total) {
		return nil, apperr.New(apperr.Precondition, "Insufficient wallet balance. Recharge your wallet.")
	}
	if err := o.wallet.Adjust(ctx, userID, total.Neg()); err != nil {
		return nil, err
	}
	if err := o.wallet.RecordTransaction(ctx, models.WalletTransaction{
		Id:              primitive.NewObjectID(),
		UserId:          userID,
		TransactionType: models.TransactionTypeDebit,
		Amount:          util.ToDecimal128(total),
		PaymentStatus:   models.PaymentStatusCompleted,
		Description:     fmt.Sprintf("Bulk booking of %d shipments", len(priced)),
		CreatedAt:       primitive.NewDateTimeFromTime(time.Now()),
	}); err != nil {
		return nil, err
	}

	imageURLs, invoiceURLs, err := o.uploadAttachments(ctx, priced)
	if err != nil {
		return nil, err
	}

	shipments := make([]models.Shipment, len(priced))
	results := make(map[int]models.BulkItemResult, len(priced))
	for i, p := range priced {
		item := p.row.Item
		shipment := models.Shipment{
			Id:                   primitive.NewObjectID(),
			HumanReadableId:      GenerateShipmentID(item.RecipientName),
			UserId:               userID,
			PaymentStatus:        models.PaymentStatusPaid,
			ShipmentStatus:       models.ShipmentStatusPendingApproval,
			OriginAddressId:      p.row.OriginAddressId,
			DestinationAddressId: p.row.DestinationAddressId,
			RecipientName:        item.RecipientName,
			RecipientMobile:      item.RecipientMobile,
			PackageImageUrl:      imageURLs[i],
			PackageWeight:        item.PackageWeight,
			PackageDimensions:    FormatDimensions(item.PackageLength, item.PackageBreadth, item.PackageHeight),
			ShippingCost:         util.ToDecimal128(p.total()),
			DeclaredValue:        util.ToDecimal128(decimal.NewFromFloat(item.DeclaredValue)),
			IsInsuranceSelected:  item.IsInsuranceSelected,
			InsurancePremium:     util.ToDecimal128(p.premium),
			CompensationAmount:   util.ToDecimal128(p.compensation),
			InvoiceUrl:           invoiceURLs[i],
			CreatedAt:            primitive.NewDateTimeFromTime(time.Now()),
		}
		shipments[i] = shipment
		results[p.row.Index] = models.BulkItemResult{
			RecipientName: item.RecipientName,
			Status:        models.BulkItemSuccess,
			Message:       "Shipment booked.",
			ShipmentId:    shipment.HumanReadableId,
		}
	}

	if err := o.shipments.CreateMany(ctx, shipments); err != nil {
		return nil, err
	}
	return results, nil
}

func (o *BulkShipmentOrchestrator) priceRows(ctx context.Context, userID primitive.ObjectID, ready []ReadyShipment) ([]pricedRow, error) {
	lookups := make([]models.RateLookup, len(ready))
	for i, row := range ready {
		zone, err := o.zones.Resolve(row.Item.OriginZipCode, row.Item.DestinationZipCode)
		if err != nil {
			return nil, err
		}
		lookups[i] = models.RateLookup{
			ZoneFrom:      RateOriginZone,
			ZoneTo:        zone.Zone,
			WeightSlab:    WeightSlab(row.Item.PackageWeight),
			PackageWeight: row.Item.PackageWeight,
		}
	}

	rates, err := o.engine.FindBulkRates(ctx, &userID, lookups)
	if err != nil {
		return nil, err
	}

	priced := make([]pricedRow, len(ready))
	for i, row := range ready {
		if rates[i] == nil {
			return nil, apperr.Newf(apperr.NotFound, "no rate configured for zone %s at %.1f kg", lookups[i].ZoneTo, lookups[i].WeightSlab)
		}
		premium, compensation, err := CalculateInsurancePremium(*rates[i], decimal.NewFromFloat(row.Item.DeclaredValue), row.Item.IsInsuranceSelected)
		if err != nil {
			return nil, err
		}
		priced[i] = pricedRow{row: row, rate: *rates[i], premium: premium, compensation: compensation}
	}
	return priced, nil
}

// uploadAttachments pushes package images, and invoices for insured rows,
// concurrently. Both result slices are index-aligned with priced.
func (o *BulkShipmentOrchestrator) uploadAttachments(ctx context.Context, priced []pricedRow) (imageURLs, invoiceURLs []string, err error) {
	imageURLs = make([]string, len(priced))
	invoiceURLs = make([]string, len(priced))

	group, ctx := errgroup.WithContext(ctx)
	for i, p := range priced {
		i, p := i, p
		group.Go(func() error {
			url, err := o.uploader.Upload(ctx, p.row.Item.PackageImage, packageImageFolder)
			if err != nil {
				return err
			}
			imageURLs[i] = url
			return nil
		})
		if p.row.Item.IsInsuranceSelected && p.row.Item.Invoice != nil {
			group.Go(func() error {
				url, err := o.uploader.Upload(ctx, *p.row.Item.Invoice, invoiceFolder)
				if err != nil {
					return err
				}
				invoiceURLs[i] = url
				return nil
			})
		}
	}
	if err := group.Wait(); err != nil {
		return nil, nil, err
	}
	return imageURLs, invoiceURLs, nil
}

// bookingFailureMessage is the per-row message when the paid phase aborts.
// Classified rejections surface their own message; anything else stays
// generic so internals never leak to the caller.
func bookingFailureMessage(err error) string {
	switch apperr.KindOf(err) {
	case apperr.Precondition, apperr.NotFound, apperr.Validation, apperr.External:
		return err.Error()
	default:
		return "Bulk booking failed. No shipments were created."
	}
}
