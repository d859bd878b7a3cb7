package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"swiftship-api-io/api/pkg/apperr"
	"swiftship-api-io/api/pkg/models"
	"swiftship-api-io/api/pkg/util"
)

func testDirectory(t *testing.T, entries map[string]PincodeDetails) *PincodeDirectory {
	t.Helper()

	raw, err := json.Marshal(entries)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "pincodes.json")
	require.NoError(t, os.WriteFile(path, raw, 0o600))
	return NewPincodeDirectory(path)
}

// indiaDirectory covers the pincodes the service tests route between.
func indiaDirectory(t *testing.T) *PincodeDirectory {
	t.Helper()
	return testDirectory(t, map[string]PincodeDetails{
		"110001": {City: "New Delhi", State: "Delhi"},
		"110092": {City: "New Delhi", State: "Delhi"},
		"122001": {City: "Gurugram", State: "Haryana"},
		"201301": {City: "Noida", State: "Uttar Pradesh"},
		"226001": {City: "Lucknow", State: "Uttar Pradesh"},
		"302001": {City: "Jaipur", State: "Rajasthan"},
		"400001": {City: "Mumbai", State: "Maharashtra"},
		"600001": {City: "Chennai", State: "Tamil Nadu"},
		"700001": {City: "Kolkata", State: "West Bengal"},
		"190001": {City: "Srinagar", State: "Jammu and Kashmir"},
	})
}

type fakeRateStore struct {
	defaults []models.DefaultRate
	users    []models.UserRate
}

func lookupMatches(zoneFrom, zoneTo string, slab float64, lookups []models.RateLookup) bool {
	for _, l := range lookups {
		if l.ZoneFrom == zoneFrom && l.ZoneTo == zoneTo && l.WeightSlab == slab {
			return true
		}
	}
	return false
}

func (f *fakeRateStore) FindDefaultRates(_ context.Context, lookups []models.RateLookup) ([]models.DefaultRate, error) {
	var rows []models.DefaultRate
	for _, row := range f.defaults {
		if lookupMatches(row.ZoneFrom, row.ZoneTo, row.WeightSlab, lookups) {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (f *fakeRateStore) FindUserRates(_ context.Context, userID primitive.ObjectID, lookups []models.RateLookup) ([]models.UserRate, error) {
	var rows []models.UserRate
	for _, row := range f.users {
		if row.UserId == userID && lookupMatches(row.ZoneFrom, row.ZoneTo, row.WeightSlab, lookups) {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

type fakeAddressStore struct {
	approved []models.Address
	pending  []models.PendingAddress

	createdApproved []models.Address
	createdPending  []models.PendingAddress
}

func (f *fakeAddressStore) List(_ context.Context, userID primitive.ObjectID, addressType *models.AddressType) ([]models.Address, error) {
	var out []models.Address
	for _, a := range f.approved {
		if a.UserId != userID {
			continue
		}
		if addressType != nil && a.Type != *addressType {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeAddressStore) ListPending(_ context.Context, userID primitive.ObjectID) ([]models.PendingAddress, error) {
	var out []models.PendingAddress
	for _, p := range f.pending {
		if p.UserId == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeAddressStore) FindByIds(_ context.Context, userID primitive.ObjectID, ids []primitive.ObjectID) ([]models.Address, error) {
	var out []models.Address
	for _, a := range f.approved {
		if a.UserId != userID {
			continue
		}
		for _, id := range ids {
			if a.Id == id {
				out = append(out, a)
			}
		}
	}
	return out, nil
}

// CreateApproved mirrors the unique index on the normalized per-user
// identity tuple: inserting a duplicate comes back as a conflict.
func (f *fakeAddressStore) CreateApproved(_ context.Context, addresses []models.Address) error {
	for _, a := range addresses {
		for _, existing := range f.approved {
			if existing.UserId == a.UserId &&
				AddressKey(existing.AddressLine, existing.City, existing.State, existing.ZipCode) ==
					AddressKey(a.AddressLine, a.City, a.State, a.ZipCode) {
				return apperr.New(apperr.Conflict, "address already exists")
			}
		}
	}
	f.approved = append(f.approved, addresses...)
	f.createdApproved = append(f.createdApproved, addresses...)
	return nil
}

func (f *fakeAddressStore) CreatePending(_ context.Context, addresses []models.PendingAddress) error {
	for _, a := range addresses {
		for _, existing := range f.pending {
			if existing.UserId == a.UserId &&
				AddressKey(existing.AddressLine, existing.City, existing.State, existing.ZipCode) ==
					AddressKey(a.AddressLine, a.City, a.State, a.ZipCode) {
				return apperr.New(apperr.Conflict, "address is already awaiting approval")
			}
		}
	}
	f.pending = append(f.pending, addresses...)
	f.createdPending = append(f.createdPending, addresses...)
	return nil
}

type fakeWalletStore struct {
	balance decimal.Decimal

	adjustments []decimal.Decimal
	ledger      []models.WalletTransaction
	cards       []models.PaymentCard
}

func (f *fakeWalletStore) Get(_ context.Context, userID primitive.ObjectID) (*models.Wallet, error) {
	return &models.Wallet{
		Id:        primitive.NewObjectID(),
		UserId:    userID,
		Balance:   util.ToDecimal128(f.balance),
		UpdatedAt: primitive.NewDateTimeFromTime(time.Now()),
	}, nil
}

func (f *fakeWalletStore) Adjust(_ context.Context, _ primitive.ObjectID, delta decimal.Decimal) error {
	f.adjustments = append(f.adjustments, delta)
	f.balance = f.balance.Add(delta)
	return nil
}

func (f *fakeWalletStore) RecordTransaction(_ context.Context, tx models.WalletTransaction) error {
	f.ledger = append(f.ledger, tx)
	return nil
}

func (f *fakeWalletStore) ListTransactions(_ context.Context, _ primitive.ObjectID, _ util.PaginationArgs) ([]models.WalletTransaction, int64, error) {
	return f.ledger, int64(len(f.ledger)), nil
}

func (f *fakeWalletStore) CountCards(_ context.Context, _ primitive.ObjectID) (int64, error) {
	return int64(len(f.cards)), nil
}

func (f *fakeWalletStore) SaveCard(_ context.Context, card models.PaymentCard) error {
	f.cards = append(f.cards, card)
	return nil
}

func (f *fakeWalletStore) ListCards(_ context.Context, _ primitive.ObjectID) ([]models.PaymentCard, error) {
	return f.cards, nil
}

func (f *fakeWalletStore) ClearDefaultCards(_ context.Context, _ primitive.ObjectID, exceptId primitive.ObjectID) error {
	for i := range f.cards {
		if f.cards[i].Id != exceptId {
			f.cards[i].IsDefault = false
		}
	}
	return nil
}

type fakeShipmentStore struct {
	created []models.Shipment
}

func (f *fakeShipmentStore) CreateMany(_ context.Context, shipments []models.Shipment) error {
	f.created = append(f.created, shipments...)
	return nil
}

func (f *fakeShipmentStore) ListByUser(_ context.Context, userID primitive.ObjectID, status *models.ShipmentStatus, _ util.PaginationArgs) ([]models.Shipment, int64, error) {
	var out []models.Shipment
	for _, s := range f.created {
		if s.UserId != userID {
			continue
		}
		if status != nil && s.ShipmentStatus != *status {
			continue
		}
		out = append(out, s)
	}
	return out, int64(len(out)), nil
}

// fakeUploader is called from concurrent upload goroutines, so the
// recorded URLs are guarded by a mutex.
type fakeUploader struct {
	mu      sync.Mutex
	uploads []string
	err     error
}

func (f *fakeUploader) Upload(_ context.Context, file models.Base64File, folder string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	url := fmt.Sprintf("https://cdn.test/%s/%s", folder, strings.ToLower(file.Name))
	f.uploads = append(f.uploads, url)
	return url, nil
}

// passthroughTx runs the callback directly; rollback behavior is asserted
// through the absence of store writes before the failure point.
func passthroughTx(ctx context.Context, fn func(ctx context.Context) (any, error)) (any, error) {
	return fn(ctx)
}
