package util

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"swiftship-api-io/api/pkg/apperr"
)

type SuccessResponse struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

func HandleSuccess(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, SuccessResponse{
		Status:  statusCode,
		Message: message,
		Data:    data,
		Meta:    nil,
	})
}

func HandleSuccessMeta(c *gin.Context, statusCode int, message string, data, meta interface{}) {
	c.JSON(statusCode, SuccessResponse{
		Status:  statusCode,
		Message: message,
		Data:    data,
		Meta:    meta,
	})
}

type ErrorResponse struct {
	Error string `json:"error,omitempty"`
}

func HandleError(c *gin.Context, statusCode int, err error, message string) {
	log.Println(err)
	c.JSON(statusCode, ErrorResponse{
		Error: message,
	})
}

// HandleAppError maps a classified service error onto an HTTP status.
func HandleAppError(c *gin.Context, err error) {
	log.Println(err)
	c.JSON(statusForKind(apperr.KindOf(err)), ErrorResponse{
		Error: err.Error(),
	})
}

func statusForKind(kind apperr.Kind) int {
	switch kind {
	case apperr.Validation:
		return http.StatusUnprocessableEntity
	case apperr.NotFound:
		return http.StatusNotFound
	case apperr.Precondition:
		return http.StatusPreconditionFailed
	case apperr.Conflict:
		return http.StatusConflict
	case apperr.External:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

type PaginationArgs struct {
	Limit int
	Skip  int
	Sort  string
}

type Pagination struct {
	Limit int   `json:"limit"`
	Skip  int   `json:"skip"`
	Count int64 `json:"count"`
}
