package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"swiftship-api-io/api/pkg/models"
)

// allowedPickupStates is the set of states couriers currently pick up from.
// Destinations are unrestricted.
var allowedPickupStates = []string{
	"delhi", "uttar pradesh", "haryana", "bihar", "west bengal",
}

// AddressKey is the identity of an address for reconciliation: the
// lower-cased line, city, state and zip joined together. Two rows with the
// same key are the same address regardless of casing or surrounding space.
func AddressKey(line, city, state, zip string) string {
	return strings.ToLower(fmt.Sprintf("%s-%s-%s-%s",
		strings.TrimSpace(line), strings.TrimSpace(city), strings.TrimSpace(state), strings.TrimSpace(zip)))
}

// ReadyShipment is a bulk row whose both addresses resolved to approved
// records. Index is the row's position in the original submission.
type ReadyShipment struct {
	Index                int
	Item                 models.BulkShipmentItem
	OriginAddressId      primitive.ObjectID
	DestinationAddressId primitive.ObjectID
}

// AddressReconciler turns the raw address fields of a bulk submission into
// address ids. Origins must be approved pickup locations; new ones are queued
// for admin approval when the pickup state is serviceable. Destinations are
// created on the fly.
type AddressReconciler struct {
	addresses AddressStore
	pincodes  *PincodeDirectory
}

func NewAddressReconciler(addresses AddressStore, pincodes *PincodeDirectory) *AddressReconciler {
	return &AddressReconciler{addresses: addresses, pincodes: pincodes}
}

// Reconcile splits the submission into rows ready for booking and rows
// already settled with a pending or error outcome. The settled map is keyed
// by the row's position in items. The store is read twice and written at
// most twice, regardless of the number of rows.
func (r *AddressReconciler) Reconcile(ctx context.Context, userID primitive.ObjectID, items []models.BulkShipmentItem) ([]ReadyShipment, map[int]models.BulkItemResult, error) {
	approvedByKey, err := r.fetchApproved(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	pendingByKey, err := r.fetchPending(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	settled := make(map[int]models.BulkItemResult)
	withOrigin := make([]ReadyShipment, 0, len(items))
	newPending := make([]models.PendingAddress, 0)
	queuedPending := make(map[string]bool)

	for i, item := range items {
		originKey := AddressKey(item.OriginAddressLine, item.OriginCity, item.OriginState, item.OriginZipCode)

		if origin, ok := approvedByKey[originKey]; ok {
			withOrigin = append(withOrigin, ReadyShipment{Index: i, Item: item, OriginAddressId: origin.Id})
			continue
		}
		if _, ok := pendingByKey[originKey]; ok {
			settled[i] = models.BulkItemResult{
				RecipientName: item.RecipientName,
				Status:        models.BulkItemPending,
				Message:       "Origin address is already awaiting admin approval.",
			}
			continue
		}
		if queuedPending[originKey] {
			settled[i] = models.BulkItemResult{
				RecipientName: item.RecipientName,
				Status:        models.BulkItemPending,
				Message:       "New origin address sent for admin approval.",
			}
			continue
		}

		if msg := r.pickupRejection(item); msg != "" {
			settled[i] = models.BulkItemResult{
				RecipientName: item.RecipientName,
				Status:        models.BulkItemError,
				Message:       msg,
			}
			continue
		}

		newPending = append(newPending, models.PendingAddress{
			Id:          primitive.NewObjectID(),
			UserId:      userID,
			Name:        item.RecipientName,
			AddressLine: item.OriginAddressLine,
			Landmark:    item.OriginLandmark,
			City:        item.OriginCity,
			State:       item.OriginState,
			ZipCode:     item.OriginZipCode,
			CreatedAt:   primitive.NewDateTimeFromTime(time.Now()),
		})
		queuedPending[originKey] = true
		settled[i] = models.BulkItemResult{
			RecipientName: item.RecipientName,
			Status:        models.BulkItemPending,
			Message:       "New origin address sent for admin approval.",
		}
	}

	if len(newPending) > 0 {
		if err := r.addresses.CreatePending(ctx, newPending); err != nil {
			return nil, nil, err
		}
	}

	ready, err := r.resolveDestinations(ctx, userID, withOrigin, approvedByKey)
	if err != nil {
		return nil, nil, err
	}
	return ready, settled, nil
}

// pickupRejection reports why an unknown origin cannot enter the approval
// queue, or "" when it can.
func (r *AddressReconciler) pickupRejection(item models.BulkShipmentItem) string {
	details, ok := r.pincodes.Lookup(item.OriginZipCode)
	if !ok {
		return fmt.Sprintf("Origin pincode '%s' could not be verified.", item.OriginZipCode)
	}
	if !strings.EqualFold(details.State, item.OriginState) {
		return fmt.Sprintf("Origin pincode '%s' does not belong to '%s'.", item.OriginZipCode, item.OriginState)
	}
	if !containsString(allowedPickupStates, strings.ToLower(item.OriginState)) {
		return fmt.Sprintf("Pickup from '%s' is not available.", item.OriginState)
	}
	return ""
}

// resolveDestinations fills in destination ids for rows that already have an
// approved origin, creating missing destination addresses in one batch.
func (r *AddressReconciler) resolveDestinations(ctx context.Context, userID primitive.ObjectID, rows []ReadyShipment, approvedByKey map[string]models.Address) ([]ReadyShipment, error) {
	newAddresses := make([]models.Address, 0)
	for _, row := range rows {
		key := AddressKey(row.Item.DestinationAddressLine, row.Item.DestinationCity, row.Item.DestinationState, row.Item.DestinationZipCode)
		if _, ok := approvedByKey[key]; ok {
			continue
		}
		address := models.Address{
			Id:          primitive.NewObjectID(),
			UserId:      userID,
			Name:        row.Item.RecipientName,
			AddressLine: row.Item.DestinationAddressLine,
			Landmark:    row.Item.DestinationLandmark,
			City:        row.Item.DestinationCity,
			State:       row.Item.DestinationState,
			ZipCode:     row.Item.DestinationZipCode,
			Type:        models.AddressTypeUser,
			CreatedAt:   primitive.NewDateTimeFromTime(time.Now()),
		}
		approvedByKey[key] = address
		newAddresses = append(newAddresses, address)
	}

	if len(newAddresses) > 0 {
		if err := r.addresses.CreateApproved(ctx, newAddresses); err != nil {
			return nil, err
		}
	}

	ready := make([]ReadyShipment, len(rows))
	for i, row := range rows {
		key := AddressKey(row.Item.DestinationAddressLine, row.Item.DestinationCity, row.Item.DestinationState, row.Item.DestinationZipCode)
		row.DestinationAddressId = approvedByKey[key].Id
		ready[i] = row
	}
	return ready, nil
}

func (r *AddressReconciler) fetchApproved(ctx context.Context, userID primitive.ObjectID) (map[string]models.Address, error) {
	addresses, err := r.addresses.List(ctx, userID, nil)
	if err != nil {
		return nil, err
	}
	byKey := make(map[string]models.Address, len(addresses))
	for _, a := range addresses {
		byKey[AddressKey(a.AddressLine, a.City, a.State, a.ZipCode)] = a
	}
	return byKey, nil
}

func (r *AddressReconciler) fetchPending(ctx context.Context, userID primitive.ObjectID) (map[string]models.PendingAddress, error) {
	pending, err := r.addresses.ListPending(ctx, userID)
	if err != nil {
		return nil, err
	}
	byKey := make(map[string]models.PendingAddress, len(pending))
	for _, p := range pending {
		byKey[AddressKey(p.AddressLine, p.City, p.State, p.ZipCode)] = p
	}
	return byKey, nil
}
