package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"swiftship-api-io/api/internal/middleware"
	"swiftship-api-io/api/pkg/util"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// currentUserID resolves the authenticated user's object id from the request
// claim.
func currentUserID(c *gin.Context) (primitive.ObjectID, error) {
	claim, ok := middleware.Claim(c)
	if !ok {
		return primitive.NilObjectID, errors.New("missing authentication claim")
	}
	return claim.GetUserObjectId()
}

// optionalUserID resolves the user id when a valid claim is present, nil
// otherwise. Used by routes that also serve anonymous callers.
func optionalUserID(c *gin.Context) *primitive.ObjectID {
	claim, ok := middleware.Claim(c)
	if !ok {
		return nil
	}
	userID, err := claim.GetUserObjectId()
	if err != nil {
		return nil
	}
	return &userID
}

func paginationFromQuery(c *gin.Context) util.PaginationArgs {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))
	if err != nil || limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	skip, err := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if err != nil || skip < 0 {
		skip = 0
	}

	return util.PaginationArgs{Limit: limit, Skip: skip, Sort: c.DefaultQuery("sort", "created_at")}
}
