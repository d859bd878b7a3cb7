package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"swiftship-api-io/api/pkg/apperr"
	"swiftship-api-io/api/pkg/models"
)

func addressRequest(addressType models.AddressType) models.AddressRequest {
	return models.AddressRequest{
		Name:        "Ravi Kumar",
		AddressLine: "7 Marine Drive",
		City:        "Mumbai",
		State:       "Maharashtra",
		ZipCode:     "400001",
		Type:        addressType,
	}
}

func TestCreateUserAddress(t *testing.T) {
	store := &fakeAddressStore{}
	service := NewAddressService(store, indiaDirectory(t))

	created, err := service.Create(context.Background(), primitive.NewObjectID(), addressRequest(models.AddressTypeUser))
	require.NoError(t, err)
	require.NotNil(t, created.Address)
	assert.Nil(t, created.Pending)
	assert.Equal(t, models.AddressTypeUser, created.Address.Type)
	assert.Len(t, store.createdApproved, 1)
}

func TestCreateWarehouseAddressGoesPending(t *testing.T) {
	store := &fakeAddressStore{}
	service := NewAddressService(store, indiaDirectory(t))

	request := models.AddressRequest{
		Name:        "Main Warehouse",
		AddressLine: "12 MG Road",
		City:        "New Delhi",
		State:       "Delhi",
		ZipCode:     "110001",
		Type:        models.AddressTypeWarehouse,
	}
	created, err := service.Create(context.Background(), primitive.NewObjectID(), request)
	require.NoError(t, err)
	assert.Nil(t, created.Address)
	require.NotNil(t, created.Pending)
	assert.Len(t, store.createdPending, 1)
	assert.Empty(t, store.createdApproved)
}

func TestCreateDuplicateAddressIsConflict(t *testing.T) {
	store := &fakeAddressStore{}
	service := NewAddressService(store, indiaDirectory(t))
	userID := primitive.NewObjectID()

	_, err := service.Create(context.Background(), userID, addressRequest(models.AddressTypeUser))
	require.NoError(t, err)

	// Resubmitting the same normalized tuple trips the unique identity
	// index instead of inserting a second row.
	request := addressRequest(models.AddressTypeUser)
	request.AddressLine = "  7 MARINE DRIVE "
	_, err = service.Create(context.Background(), userID, request)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.Conflict))
	assert.Len(t, store.createdApproved, 1)
}

func TestCreateWarehouseAddressUnserviceableState(t *testing.T) {
	service := NewAddressService(&fakeAddressStore{}, indiaDirectory(t))

	_, err := service.Create(context.Background(), primitive.NewObjectID(), addressRequest(models.AddressTypeWarehouse))
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.Precondition))
}

func TestCreateAddressZipStateMismatch(t *testing.T) {
	service := NewAddressService(&fakeAddressStore{}, indiaDirectory(t))

	request := addressRequest(models.AddressTypeUser)
	request.State = "Delhi"
	_, err := service.Create(context.Background(), primitive.NewObjectID(), request)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.Validation))
}

func TestCreateAddressUnknownZip(t *testing.T) {
	service := NewAddressService(&fakeAddressStore{}, indiaDirectory(t))

	request := addressRequest(models.AddressTypeUser)
	request.ZipCode = "999999"
	_, err := service.Create(context.Background(), primitive.NewObjectID(), request)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.NotFound))
}
