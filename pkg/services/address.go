package services

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"swiftship-api-io/api/pkg/apperr"
	"swiftship-api-io/api/pkg/models"
)

// AddressCreation is the outcome of a single address submission. Destination
// addresses are approved immediately; pickup addresses land in the approval
// queue, so exactly one of the two fields is set.
type AddressCreation struct {
	Address *models.Address        `json:"address,omitempty"`
	Pending *models.PendingAddress `json:"pending,omitempty"`
}

// AddressService manages a user's address book.
type AddressService struct {
	addresses AddressStore
	pincodes  *PincodeDirectory
}

func NewAddressService(addresses AddressStore, pincodes *PincodeDirectory) *AddressService {
	return &AddressService{addresses: addresses, pincodes: pincodes}
}

func (s *AddressService) List(ctx context.Context, userID primitive.ObjectID, addressType *models.AddressType) ([]models.Address, error) {
	return s.addresses.List(ctx, userID, addressType)
}

func (s *AddressService) ListPending(ctx context.Context, userID primitive.ObjectID) ([]models.PendingAddress, error) {
	return s.addresses.ListPending(ctx, userID)
}

// Create saves one address. The zip code must resolve and match the given
// state. Warehouse addresses additionally require a serviceable pickup state
// and are queued for admin approval rather than saved directly.
func (s *AddressService) Create(ctx context.Context, userID primitive.ObjectID, req models.AddressRequest) (*AddressCreation, error) {
	details, ok := s.pincodes.Lookup(req.ZipCode)
	if !ok {
		return nil, apperr.Newf(apperr.NotFound, "unknown pincode: %s", req.ZipCode)
	}
	if !strings.EqualFold(details.State, req.State) {
		return nil, apperr.Newf(apperr.Validation, "pincode %s does not belong to %s", req.ZipCode, req.State)
	}

	if req.Type == models.AddressTypeWarehouse {
		if !containsString(allowedPickupStates, strings.ToLower(req.State)) {
			return nil, apperr.Newf(apperr.Precondition, "Pickup from '%s' is not available.", req.State)
		}
		pending := models.PendingAddress{
			Id:          primitive.NewObjectID(),
			UserId:      userID,
			Name:        req.Name,
			AddressLine: req.AddressLine,
			Landmark:    req.Landmark,
			City:        req.City,
			State:       req.State,
			ZipCode:     req.ZipCode,
			CreatedAt:   primitive.NewDateTimeFromTime(time.Now()),
		}
		if err := s.addresses.CreatePending(ctx, []models.PendingAddress{pending}); err != nil {
			return nil, err
		}
		return &AddressCreation{Pending: &pending}, nil
	}

	address := models.Address{
		Id:          primitive.NewObjectID(),
		UserId:      userID,
		Name:        req.Name,
		AddressLine: req.AddressLine,
		Landmark:    req.Landmark,
		City:        req.City,
		State:       req.State,
		ZipCode:     req.ZipCode,
		Type:        models.AddressTypeUser,
		CreatedAt:   primitive.NewDateTimeFromTime(time.Now()),
	}
	if err := s.addresses.CreateApproved(ctx, []models.Address{address}); err != nil {
		return nil, err
	}
	return &AddressCreation{Address: &address}, nil
}
