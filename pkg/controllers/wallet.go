package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"swiftship-api-io/api/internal/cache"
	"swiftship-api-io/api/internal/common"
	"swiftship-api-io/api/pkg/models"
	"swiftship-api-io/api/pkg/services"
	"swiftship-api-io/api/pkg/util"
)

// GetWallet - fetch the caller's balance.
func GetWallet(walletService *services.WalletService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), common.REQUEST_TIMEOUT_SECS)
		defer cancel()

		userID, err := currentUserID(c)
		if err != nil {
			util.HandleError(c, http.StatusUnauthorized, err, "authentication required")
			return
		}

		wallet, err := walletService.GetWallet(ctx, userID)
		if err != nil {
			util.HandleAppError(c, err)
			return
		}

		util.HandleSuccess(c, http.StatusOK, "Wallet fetched!", wallet)
	}
}

// GetWalletTransactions - page through the caller's ledger, newest first.
func GetWalletTransactions(walletService *services.WalletService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), common.REQUEST_TIMEOUT_SECS)
		defer cancel()

		userID, err := currentUserID(c)
		if err != nil {
			util.HandleError(c, http.StatusUnauthorized, err, "authentication required")
			return
		}

		pagination := paginationFromQuery(c)
		transactions, count, err := walletService.ListTransactions(ctx, userID, pagination)
		if err != nil {
			util.HandleAppError(c, err)
			return
		}

		util.HandleSuccessMeta(c, http.StatusOK, "Transactions fetched!", transactions, util.Pagination{
			Limit: pagination.Limit,
			Skip:  pagination.Skip,
			Count: count,
		})
	}
}

// AddFunds - credit a user's wallet. Admin only.
func AddFunds(walletService *services.WalletService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), common.REQUEST_TIMEOUT_SECS)
		defer cancel()

		var request models.AddFundsRequest
		if err := c.BindJSON(&request); err != nil {
			util.HandleError(c, http.StatusBadRequest, err, "invalid request body")
			return
		}
		if validationErr := common.Validate.Struct(&request); validationErr != nil {
			util.HandleError(c, http.StatusUnprocessableEntity, validationErr, validationErr.Error())
			return
		}

		wallet, err := walletService.AddFunds(ctx, request)
		if err != nil {
			util.HandleAppError(c, err)
			return
		}

		cache.Publish(c, cache.InvalidateUserWallet, request.UserId)
		cache.Publish(c, cache.InvalidateUserTransactions, request.UserId)

		util.HandleSuccess(c, http.StatusOK, "Funds added!", wallet)
	}
}

// GetPaymentCards - list the caller's saved cards.
func GetPaymentCards(walletService *services.WalletService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), common.REQUEST_TIMEOUT_SECS)
		defer cancel()

		userID, err := currentUserID(c)
		if err != nil {
			util.HandleError(c, http.StatusUnauthorized, err, "authentication required")
			return
		}

		cards, err := walletService.ListCards(ctx, userID)
		if err != nil {
			util.HandleAppError(c, err)
			return
		}

		util.HandleSuccess(c, http.StatusOK, "Payment cards fetched!", cards)
	}
}

// AddPaymentCard - validate and save a recharge card in masked form.
func AddPaymentCard(walletService *services.WalletService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), common.REQUEST_TIMEOUT_SECS)
		defer cancel()

		var request models.PaymentCardRequest
		if err := c.BindJSON(&request); err != nil {
			util.HandleError(c, http.StatusBadRequest, err, "invalid request body")
			return
		}
		if validationErr := common.Validate.Struct(&request); validationErr != nil {
			util.HandleError(c, http.StatusUnprocessableEntity, validationErr, validationErr.Error())
			return
		}

		userID, err := currentUserID(c)
		if err != nil {
			util.HandleError(c, http.StatusUnauthorized, err, "authentication required")
			return
		}

		card, err := walletService.SaveCard(ctx, userID, request)
		if err != nil {
			util.HandleAppError(c, err)
			return
		}

		cache.Publish(c, cache.InvalidateUserPaymentCards, userID.Hex())

		util.HandleSuccess(c, http.StatusCreated, "Payment card saved!", card)
	}
}
