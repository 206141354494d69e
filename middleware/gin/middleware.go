package ginmw

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reoring/mapjson"
	"github.com/reoring/mapjson/middleware"
	"github.com/reoring/mapjson/source/gojson"
)

// DecodeJSON reads the request body into a mapjson.Value (using opt, or
// DefaultDecodeOpt when omitted), stores it in the request context, and on
// failure responds 400 with an error payload.
func DecodeJSON(opt ...gojson.DecodeOpt) gin.HandlerFunc {
	o := middleware.DefaultDecodeOpt()
	if len(opt) > 0 {
		o = opt[0]
	}
	return func(c *gin.Context) {
		v, err := middleware.DecodeBody(c.Request.Body, o)
		if err != nil {
			JSON(c, http.StatusBadRequest, middleware.ErrorPayload(err))
			c.Abort()
			return
		}
		c.Request = c.Request.WithContext(middleware.ContextWithValue(c.Request.Context(), v))
		c.Next()
	}
}

// GetValue fetches the decoded request body from gin.Context.
func GetValue(c *gin.Context) (mapjson.Value, bool) {
	return middleware.ValueFromContext(c.Request.Context())
}

// JSON streams v as the response body. When encoding fails before anything
// was sent, a 500 error payload is written instead and the error is recorded
// on the context.
func JSON(c *gin.Context, code int, v mapjson.Value, opt ...mapjson.EncodeOpt) {
	started, err := middleware.WriteJSON(c.Writer, code, v, opt...)
	if err == nil {
		return
	}
	_ = c.Error(err)
	if !started {
		_ = middleware.WriteError(c.Writer, http.StatusInternalServerError, err)
	}
}
