package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"swiftship-api-io/api/pkg/apperr"
	"swiftship-api-io/api/pkg/models"
	"swiftship-api-io/api/pkg/util"
)

func validCardRequest() models.PaymentCardRequest {
	return models.PaymentCardRequest{
		CardHolderName: "Ravi Kumar",
		CardNumber:     "4242424242424242",
		CVV:            "123",
		ExpiryMonth:    "12",
		ExpiryYear:     "2030",
	}
}

func TestAddFundsCreditsWalletAndLedger(t *testing.T) {
	wallet := &fakeWalletStore{balance: d(100)}
	service := NewWalletService(wallet, passthroughTx)

	userID := primitive.NewObjectID()
	updated, err := service.AddFunds(context.Background(), models.AddFundsRequest{
		UserId:      userID.Hex(),
		Amount:      500,
		Description: "Manual recharge",
	})
	require.NoError(t, err)
	assert.True(t, util.FromDecimal128(updated.Balance).Equal(d(600)))

	require.Len(t, wallet.ledger, 1)
	assert.Equal(t, models.TransactionTypeCredit, wallet.ledger[0].TransactionType)
	assert.True(t, util.FromDecimal128(wallet.ledger[0].Amount).Equal(d(500)))
	assert.Equal(t, "Manual recharge", wallet.ledger[0].Description)
}

func TestAddFundsRejectsMalformedUserId(t *testing.T) {
	service := NewWalletService(&fakeWalletStore{}, passthroughTx)

	_, err := service.AddFunds(context.Background(), models.AddFundsRequest{
		UserId: "not-an-id",
		Amount: 500,
	})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.Validation))
}

func TestSaveCardMasksNumber(t *testing.T) {
	wallet := &fakeWalletStore{}
	service := NewWalletService(wallet, passthroughTx)

	card, err := service.SaveCard(context.Background(), primitive.NewObjectID(), validCardRequest())
	require.NoError(t, err)
	assert.Equal(t, "4242", card.LastFourDigits)
	assert.NotEmpty(t, card.Company)

	require.Len(t, wallet.cards, 1)
}

func TestSaveCardRejectsBadNumber(t *testing.T) {
	service := NewWalletService(&fakeWalletStore{}, passthroughTx)

	request := validCardRequest()
	request.CardNumber = "1234567890123456"
	_, err := service.SaveCard(context.Background(), primitive.NewObjectID(), request)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.Validation))
}

func TestSaveCardEnforcesLimit(t *testing.T) {
	wallet := &fakeWalletStore{}
	for i := 0; i < maxSavedCards; i++ {
		wallet.cards = append(wallet.cards, models.PaymentCard{Id: primitive.NewObjectID()})
	}
	service := NewWalletService(wallet, passthroughTx)

	_, err := service.SaveCard(context.Background(), primitive.NewObjectID(), validCardRequest())
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.Precondition))
}

func TestSaveCardDefaultClearsOthers(t *testing.T) {
	wallet := &fakeWalletStore{cards: []models.PaymentCard{
		{Id: primitive.NewObjectID(), IsDefault: true},
	}}
	service := NewWalletService(wallet, passthroughTx)

	request := validCardRequest()
	request.IsDefault = true
	card, err := service.SaveCard(context.Background(), primitive.NewObjectID(), request)
	require.NoError(t, err)
	assert.True(t, card.IsDefault)

	require.Len(t, wallet.cards, 2)
	assert.False(t, wallet.cards[0].IsDefault)
}
