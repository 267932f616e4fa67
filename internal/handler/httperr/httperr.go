package httperr

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const HeaderRetryAfter = "Retry-After"

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: NewResponse(status, msg, detail),
	})
	c.AbortWithStatusJSON(status, NewResponse(status, msg, detail))
}

// AbortRateLimited answers 429 and tells the client when the window reopens.
func AbortRateLimited(c *gin.Context, err error, retryAfterSeconds int) {
	c.Header(HeaderRetryAfter, strconv.Itoa(retryAfterSeconds))
	AbortWithError(c, http.StatusTooManyRequests, err,
		"Too many requests. Please try again later.",
		gin.H{"retry_after": retryAfterSeconds})
}

func NewResponse(status int, msg string, detail any) Response {
	resp := Response{Status: status, Detail: detail}
	resp.Error.Message = msg
	return resp
}
