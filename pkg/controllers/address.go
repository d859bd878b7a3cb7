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

// GetAddresses - list the caller's approved addresses, optionally filtered
// by type.
func GetAddresses(addressService *services.AddressService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), common.REQUEST_TIMEOUT_SECS)
		defer cancel()

		userID, err := currentUserID(c)
		if err != nil {
			util.HandleError(c, http.StatusUnauthorized, err, "authentication required")
			return
		}

		var addressType *models.AddressType
		if value := c.Query("type"); value != "" {
			t := models.AddressType(value)
			addressType = &t
		}

		addresses, err := addressService.List(ctx, userID, addressType)
		if err != nil {
			util.HandleAppError(c, err)
			return
		}

		util.HandleSuccess(c, http.StatusOK, "Addresses fetched!", addresses)
	}
}

// GetPendingAddresses - list the caller's pickup addresses still awaiting
// admin approval.
func GetPendingAddresses(addressService *services.AddressService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), common.REQUEST_TIMEOUT_SECS)
		defer cancel()

		userID, err := currentUserID(c)
		if err != nil {
			util.HandleError(c, http.StatusUnauthorized, err, "authentication required")
			return
		}

		pending, err := addressService.ListPending(ctx, userID)
		if err != nil {
			util.HandleAppError(c, err)
			return
		}

		util.HandleSuccess(c, http.StatusOK, "Pending addresses fetched!", pending)
	}
}

// CreateAddress - save a new address. Warehouse submissions land in the
// approval queue instead of the address book.
func CreateAddress(addressService *services.AddressService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), common.REQUEST_TIMEOUT_SECS)
		defer cancel()

		var request models.AddressRequest
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

		created, err := addressService.Create(ctx, userID, request)
		if err != nil {
			util.HandleAppError(c, err)
			return
		}

		cache.Publish(c, cache.InvalidateUserAddresses, userID.Hex())

		message := "Address created!"
		if created.Pending != nil {
			message = "Address sent for admin approval."
		}
		util.HandleSuccess(c, http.StatusCreated, message, created)
	}
}
