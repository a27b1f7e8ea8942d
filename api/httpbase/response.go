package httpbase

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// R is the error response envelope. Successful responses return their
// payload directly.
type R struct {
	Msg string `json:"msg"`
}

// BadRequest responds with a JSON-formatted error message.
func BadRequest(c *gin.Context, errMsg string) {
	c.PureJSON(http.StatusBadRequest, R{
		Msg: errMsg,
	})
}

// ServerError responds with a JSON-formatted error message.
func ServerError(c *gin.Context, err error) {
	c.PureJSON(http.StatusInternalServerError, R{
		Msg: err.Error(),
	})
}

// NotFoundError responds with a JSON-formatted error message.
func NotFoundError(c *gin.Context, err error) {
	c.PureJSON(http.StatusNotFound, R{
		Msg: err.Error(),
	})
}
