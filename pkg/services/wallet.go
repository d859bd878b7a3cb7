package services

import (
	"context"
	"time"

	creditcard "github.com/durango/go-credit-card"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"swiftship-api-io/api/pkg/apperr"
	"swiftship-api-io/api/pkg/models"
	"swiftship-api-io/api/pkg/util"
)

const maxSavedCards = 5

// WalletService reads balances, credits funds and manages saved recharge
// cards. Debits happen only through the shipment booking flows.
type WalletService struct {
	wallet WalletStore
	runTx  TxRunner
}

func NewWalletService(wallet WalletStore, runTx TxRunner) *WalletService {
	return &WalletService{wallet: wallet, runTx: runTx}
}

func (s *WalletService) GetWallet(ctx context.Context, userID primitive.ObjectID) (*models.Wallet, error) {
	return s.wallet.Get(ctx, userID)
}

func (s *WalletService) ListTransactions(ctx context.Context, userID primitive.ObjectID, pagination util.PaginationArgs) ([]models.WalletTransaction, int64, error) {
	return s.wallet.ListTransactions(ctx, userID, pagination)
}

// AddFunds credits a user's wallet. Admin-only; the credit and its ledger row
// commit atomically.
func (s *WalletService) AddFunds(ctx context.Context, req models.AddFundsRequest) (*models.Wallet, error) {
	userID, err := primitive.ObjectIDFromHex(req.UserId)
	if err != nil {
		return nil, apperr.New(apperr.Validation, "user_id is not a valid id")
	}
	amount := decimal.NewFromFloat(req.Amount)

	_, err = s.runTx(ctx, func(ctx context.Context) (any, error) {
		if err := s.wallet.Adjust(ctx, userID, amount); err != nil {
			return nil, err
		}
		return nil, s.wallet.RecordTransaction(ctx, models.WalletTransaction{
			Id:              primitive.NewObjectID(),
			UserId:          userID,
			TransactionType: models.TransactionTypeCredit,
			Amount:          util.ToDecimal128(amount),
			PaymentStatus:   models.PaymentStatusCompleted,
			Description:     req.Description,
			CreatedAt:       primitive.NewDateTimeFromTime(time.Now()),
		})
	})
	if err != nil {
		return nil, err
	}
	return s.wallet.Get(ctx, userID)
}

// SaveCard validates a card and stores its masked form. The raw number and
// CVV are never persisted.
func (s *WalletService) SaveCard(ctx context.Context, userID primitive.ObjectID, req models.PaymentCardRequest) (*models.PaymentCard, error) {
	count, err := s.wallet.CountCards(ctx, userID)
	if err != nil {
		return nil, err
	}
	if count >= maxSavedCards {
		return nil, apperr.Newf(apperr.Precondition, "you can save at most %d cards", maxSavedCards)
	}

	card := creditcard.Card{
		Number: req.CardNumber,
		Cvv:    req.CVV,
		Month:  req.ExpiryMonth,
		Year:   req.ExpiryYear,
	}
	if err := card.Validate(true); err != nil {
		return nil, apperr.Wrap(apperr.Validation, err, "card details are invalid")
	}
	company, err := card.MethodValidate()
	if err != nil {
		return nil, apperr.Wrap(apperr.Validation, err, "card network is not recognized")
	}
	lastFour, err := card.LastFour()
	if err != nil {
		return nil, apperr.Wrap(apperr.Validation, err, "card number is too short")
	}

	saved := models.PaymentCard{
		Id:             primitive.NewObjectID(),
		UserId:         userID,
		CardHolderName: req.CardHolderName,
		Company:        company.Long,
		LastFourDigits: lastFour,
		ExpiryMonth:    req.ExpiryMonth,
		ExpiryYear:     req.ExpiryYear,
		IsDefault:      req.IsDefault,
		CreatedAt:      primitive.NewDateTimeFromTime(time.Now()),
	}
	if req.IsDefault {
		if err := s.wallet.ClearDefaultCards(ctx, userID, saved.Id); err != nil {
			return nil, err
		}
	}
	if err := s.wallet.SaveCard(ctx, saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

func (s *WalletService) ListCards(ctx context.Context, userID primitive.ObjectID) ([]models.PaymentCard, error) {
	return s.wallet.ListCards(ctx, userID)
}
