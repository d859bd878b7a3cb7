package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"swiftship-api-io/api/pkg/models"
)

func warehouseAddress(userID primitive.ObjectID) models.Address {
	return models.Address{
		Id:          primitive.NewObjectID(),
		UserId:      userID,
		Name:        "Main Warehouse",
		AddressLine: "12 MG Road",
		City:        "New Delhi",
		State:       "Delhi",
		ZipCode:     "110001",
		Type:        models.AddressTypeWarehouse,
	}
}

func bulkItem(originLine, originCity, originState, originZip string) models.BulkShipmentItem {
	return models.BulkShipmentItem{
		RecipientName:          "Ravi Kumar",
		RecipientMobile:        "9876543210",
		PackageWeight:          0.5,
		PackageLength:          10,
		PackageBreadth:         10,
		PackageHeight:          10,
		OriginAddressLine:      originLine,
		OriginCity:             originCity,
		OriginState:            originState,
		OriginZipCode:          originZip,
		DestinationAddressLine: "7 Marine Drive",
		DestinationCity:        "Mumbai",
		DestinationState:       "Maharashtra",
		DestinationZipCode:     "400001",
		PackageImage:           models.Base64File{Data: "aGk=", Name: "pkg.jpg", Type: "image/jpeg"},
	}
}

func TestReconcileApprovedOriginCreatesDestination(t *testing.T) {
	userID := primitive.NewObjectID()
	origin := warehouseAddress(userID)
	addresses := &fakeAddressStore{approved: []models.Address{origin}}
	reconciler := NewAddressReconciler(addresses, indiaDirectory(t))

	ready, settled, err := reconciler.Reconcile(context.Background(), userID,
		[]models.BulkShipmentItem{bulkItem("12 MG Road", "New Delhi", "Delhi", "110001")})
	require.NoError(t, err)
	assert.Empty(t, settled)
	require.Len(t, ready, 1)

	assert.Equal(t, 0, ready[0].Index)
	assert.Equal(t, origin.Id, ready[0].OriginAddressId)
	assert.False(t, ready[0].DestinationAddressId.IsZero())

	require.Len(t, addresses.createdApproved, 1)
	created := addresses.createdApproved[0]
	assert.Equal(t, models.AddressTypeUser, created.Type)
	assert.Equal(t, ready[0].DestinationAddressId, created.Id)
}

func TestReconcileMatchesAddressesCaseInsensitively(t *testing.T) {
	userID := primitive.NewObjectID()
	origin := warehouseAddress(userID)
	addresses := &fakeAddressStore{approved: []models.Address{origin}}
	reconciler := NewAddressReconciler(addresses, indiaDirectory(t))

	ready, settled, err := reconciler.Reconcile(context.Background(), userID,
		[]models.BulkShipmentItem{bulkItem("  12 mg road ", "NEW DELHI", "delhi", "110001")})
	require.NoError(t, err)
	assert.Empty(t, settled)
	require.Len(t, ready, 1)
	assert.Equal(t, origin.Id, ready[0].OriginAddressId)
}

func TestReconcileNewServiceableOriginGoesPending(t *testing.T) {
	userID := primitive.NewObjectID()
	addresses := &fakeAddressStore{}
	reconciler := NewAddressReconciler(addresses, indiaDirectory(t))

	// Two rows with the same unknown origin queue a single approval request.
	items := []models.BulkShipmentItem{
		bulkItem("45 Connaught Place", "New Delhi", "Delhi", "110001"),
		bulkItem("45 Connaught Place", "New Delhi", "Delhi", "110001"),
	}
	ready, settled, err := reconciler.Reconcile(context.Background(), userID, items)
	require.NoError(t, err)
	assert.Empty(t, ready)
	require.Len(t, settled, 2)

	for i := 0; i < 2; i++ {
		assert.Equal(t, models.BulkItemPending, settled[i].Status)
		assert.Equal(t, "New origin address sent for admin approval.", settled[i].Message)
	}
	assert.Len(t, addresses.createdPending, 1)
}

func TestReconcileOriginAlreadyPending(t *testing.T) {
	userID := primitive.NewObjectID()
	addresses := &fakeAddressStore{pending: []models.PendingAddress{{
		Id:          primitive.NewObjectID(),
		UserId:      userID,
		AddressLine: "45 Connaught Place",
		City:        "New Delhi",
		State:       "Delhi",
		ZipCode:     "110001",
	}}}
	reconciler := NewAddressReconciler(addresses, indiaDirectory(t))

	_, settled, err := reconciler.Reconcile(context.Background(), userID,
		[]models.BulkShipmentItem{bulkItem("45 Connaught Place", "New Delhi", "Delhi", "110001")})
	require.NoError(t, err)
	require.Len(t, settled, 1)
	assert.Equal(t, models.BulkItemPending, settled[0].Status)
	assert.Equal(t, "Origin address is already awaiting admin approval.", settled[0].Message)
	assert.Empty(t, addresses.createdPending)
}

func TestReconcileUnserviceablePickupState(t *testing.T) {
	userID := primitive.NewObjectID()
	addresses := &fakeAddressStore{}
	reconciler := NewAddressReconciler(addresses, indiaDirectory(t))

	_, settled, err := reconciler.Reconcile(context.Background(), userID,
		[]models.BulkShipmentItem{bulkItem("7 Marine Drive", "Mumbai", "Maharashtra", "400001")})
	require.NoError(t, err)
	require.Len(t, settled, 1)
	assert.Equal(t, models.BulkItemError, settled[0].Status)
	assert.Equal(t, "Pickup from 'Maharashtra' is not available.", settled[0].Message)
	assert.Empty(t, addresses.createdPending)
}

func TestReconcileOriginPincodeMismatch(t *testing.T) {
	userID := primitive.NewObjectID()
	addresses := &fakeAddressStore{}
	reconciler := NewAddressReconciler(addresses, indiaDirectory(t))

	// 400001 resolves to Maharashtra, not Delhi.
	_, settled, err := reconciler.Reconcile(context.Background(), userID,
		[]models.BulkShipmentItem{bulkItem("45 Connaught Place", "New Delhi", "Delhi", "400001")})
	require.NoError(t, err)
	require.Len(t, settled, 1)
	assert.Equal(t, models.BulkItemError, settled[0].Status)
	assert.Contains(t, settled[0].Message, "does not belong to")
}

func TestReconcileSharedDestinationCreatedOnce(t *testing.T) {
	userID := primitive.NewObjectID()
	origin := warehouseAddress(userID)
	addresses := &fakeAddressStore{approved: []models.Address{origin}}
	reconciler := NewAddressReconciler(addresses, indiaDirectory(t))

	items := []models.BulkShipmentItem{
		bulkItem("12 MG Road", "New Delhi", "Delhi", "110001"),
		bulkItem("12 MG Road", "New Delhi", "Delhi", "110001"),
	}
	ready, settled, err := reconciler.Reconcile(context.Background(), userID, items)
	require.NoError(t, err)
	assert.Empty(t, settled)
	require.Len(t, ready, 2)

	assert.Len(t, addresses.createdApproved, 1)
	assert.Equal(t, ready[0].DestinationAddressId, ready[1].DestinationAddressId)
}
