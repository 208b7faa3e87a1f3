package response

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Err struct {
	Err            error  `json:"-"`
	HTTPStatusCode int    `json:"-"`
	StatusText     string `json:"status"`
	ErrorText      string `json:"error,omitempty"`
	RequestID      string `json:"request_id,omitempty"`
}

func (e *Err) Error() string {
	if e.Err == nil {
		return e.StatusText
	}
	return e.Err.Error()
}

// RenderErr writes e as JSON. Server side failures are logged with the request id and
// their detail is hidden from the client.
func RenderErr(ctx *gin.Context, e *Err) {
	e.RequestID = requestid.Get(ctx)

	if e.HTTPStatusCode >= http.StatusInternalServerError {
		zap.L().Error(e.StatusText,
			zap.String("request_id", e.RequestID),
			zap.String("path", ctx.FullPath()),
			zap.Error(e.Err),
		)
		e.ErrorText = ""
	}

	ctx.JSON(e.HTTPStatusCode, e)
}

func newErr(err error, status int) *Err {
	e := &Err{
		Err:            err,
		HTTPStatusCode: status,
		StatusText:     http.StatusText(status),
	}
	if err != nil {
		e.ErrorText = err.Error()
	}
	return e
}

func ErrBadRequest(err error) *Err {
	return newErr(err, http.StatusBadRequest)
}

func ErrUnauthorized(err error) *Err {
	return newErr(err, http.StatusUnauthorized)
}

func ErrPermissionDenied(err error) *Err {
	return newErr(err, http.StatusForbidden)
}

func ErrNotFound(resource, field string, value interface{}) *Err {
	return newErr(fmt.Errorf("%s with %s %v not found", resource, field, value), http.StatusNotFound)
}

func ErrConflict(err error) *Err {
	return newErr(err, http.StatusConflict)
}

func ErrUnprocessable(err error) *Err {
	return newErr(err, http.StatusUnprocessableEntity)
}

func ErrInternalServerError(err error) *Err {
	return newErr(err, http.StatusInternalServerError)
}
