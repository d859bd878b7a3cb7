package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"swiftship-api-io/api/internal/common"
	"swiftship-api-io/api/pkg/models"
	"swiftship-api-io/api/pkg/services"
	"swiftship-api-io/api/pkg/util"
)

// CalculateRate - price one shipment without booking it. Anonymous callers
// are quoted from the platform default table; authenticated callers get
// their negotiated overrides.
func CalculateRate(engine *services.RateEngine) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), common.REQUEST_TIMEOUT_SECS)
		defer cancel()

		var request models.RateRequest
		if err := c.BindJSON(&request); err != nil {
			util.HandleError(c, http.StatusBadRequest, err, "invalid request body")
			return
		}
		if validationErr := common.Validate.Struct(&request); validationErr != nil {
			util.HandleError(c, http.StatusUnprocessableEntity, validationErr, validationErr.Error())
			return
		}

		quote, err := engine.Quote(ctx, optionalUserID(c), request)
		if err != nil {
			util.HandleAppError(c, err)
			return
		}

		util.HandleSuccess(c, http.StatusOK, "Rate calculated!", quote)
	}
}

// CalculateBulkRates - price a batch of shipments in one call. Rows fail
// independently; the response preserves submission order.
func CalculateBulkRates(engine *services.RateEngine) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), common.REQUEST_TIMEOUT_SECS)
		defer cancel()

		var request models.BulkRateRequest
		if err := c.BindJSON(&request); err != nil {
			util.HandleError(c, http.StatusBadRequest, err, "invalid request body")
			return
		}
		if validationErr := common.Validate.Struct(&request); validationErr != nil {
			util.HandleError(c, http.StatusUnprocessableEntity, validationErr, validationErr.Error())
			return
		}

		results, err := engine.QuoteBulk(ctx, optionalUserID(c), request.Items)
		if err != nil {
			util.HandleAppError(c, err)
			return
		}

		util.HandleSuccess(c, http.StatusOK, "Rates calculated!", results)
	}
}
