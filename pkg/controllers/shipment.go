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

// CreateShipment - book one shipment between two saved addresses.
func CreateShipment(shipmentService *services.ShipmentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), common.REQUEST_TIMEOUT_SECS)
		defer cancel()

		var request models.ShipmentRequest
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

		shipment, err := shipmentService.Create(ctx, userID, request)
		if err != nil {
			util.HandleAppError(c, err)
			return
		}

		cache.Publish(c, cache.InvalidateUserShipments, userID.Hex())
		cache.Publish(c, cache.InvalidateUserWallet, userID.Hex())

		util.HandleSuccess(c, http.StatusCreated, "Shipment booked!", shipment)
	}
}

// CreateBulkShipments - book a whole batch in one call. The response carries
// one result per submitted row, in order.
func CreateBulkShipments(orchestrator *services.BulkShipmentOrchestrator) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), common.REQUEST_TIMEOUT_SECS)
		defer cancel()

		var request models.BulkShipmentRequest
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

		results, err := orchestrator.CreateBulkShipments(ctx, userID, request.Shipments)
		if err != nil {
			util.HandleAppError(c, err)
			return
		}

		cache.Publish(c, cache.InvalidateUserShipments, userID.Hex())
		cache.Publish(c, cache.InvalidateUserWallet, userID.Hex())
		cache.Publish(c, cache.InvalidateUserAddresses, userID.Hex())

		util.HandleSuccess(c, http.StatusOK, "Bulk booking processed!", results)
	}
}

// GetShipments - list the caller's shipments, newest first.
func GetShipments(shipmentService *services.ShipmentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), common.REQUEST_TIMEOUT_SECS)
		defer cancel()

		userID, err := currentUserID(c)
		if err != nil {
			util.HandleError(c, http.StatusUnauthorized, err, "authentication required")
			return
		}

		var status *models.ShipmentStatus
		if value := c.Query("status"); value != "" {
			s := models.ShipmentStatus(value)
			status = &s
		}

		pagination := paginationFromQuery(c)
		shipments, count, err := shipmentService.List(ctx, userID, status, pagination)
		if err != nil {
			util.HandleAppError(c, err)
			return
		}

		util.HandleSuccessMeta(c, http.StatusOK, "Shipments fetched!", shipments, util.Pagination{
			Limit: pagination.Limit,
			Skip:  pagination.Skip,
			Count: count,
		})
	}
}
