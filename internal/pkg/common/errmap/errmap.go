// Package errmap maps accounting store errors onto HTTP status codes.
package errmap

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"fluxacct/client/acctdb"
	"fluxacct/internal/pkg/common/response"
)

// Status returns the HTTP status for err.
func Status(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, acctdb.ErrDuplicateKey):
		return http.StatusConflict
	case errors.Is(err, acctdb.ErrParentNotFound):
		return http.StatusUnprocessableEntity
	case errors.Is(err, acctdb.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, acctdb.ErrInvalidArgument), errors.Is(err, acctdb.ErrInvalidField):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// JSON writes err as a response.Response detail with the matching status.
func JSON(c *gin.Context, err error) {
	c.JSON(Status(err), response.Response{Detail: err.Error()})
}
