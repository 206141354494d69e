package echomw

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/reoring/mapjson"
	"github.com/reoring/mapjson/middleware"
	"github.com/reoring/mapjson/source/gojson"
)

// DecodeJSON reads the request body into a mapjson.Value, stores it in the
// request context on success, or returns 400 with an error payload.
func DecodeJSON(opt ...gojson.DecodeOpt) echo.MiddlewareFunc {
	o := middleware.DefaultDecodeOpt()
	if len(opt) > 0 {
		o = opt[0]
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			v, err := middleware.DecodeBody(c.Request().Body, o)
			if err != nil {
				return JSON(c, http.StatusBadRequest, middleware.ErrorPayload(err))
			}
			ctx := middleware.ContextWithValue(c.Request().Context(), v)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// GetValue fetches the decoded request body from echo.Context.
func GetValue(c echo.Context) (mapjson.Value, bool) {
	return middleware.ValueFromContext(c.Request().Context())
}

// JSON streams v as the response body. When encoding fails before anything
// was sent, a 500 error payload is written instead.
func JSON(c echo.Context, code int, v mapjson.Value, opt ...mapjson.EncodeOpt) error {
	started, err := middleware.WriteJSON(c.Response(), code, v, opt...)
	if err != nil && !started {
		c.Logger().Errorf("mapjson: encode response: %v", err)
		return middleware.WriteError(c.Response(), http.StatusInternalServerError, err)
	}
	return err
}
