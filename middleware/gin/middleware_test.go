package ginmw_test

import (
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/reoring/mapjson"
	ginmw "github.com/reoring/mapjson/middleware/gin"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/echo", ginmw.DecodeJSON(), func(c *gin.Context) {
		v, _ := ginmw.GetValue(c)
		ginmw.JSON(c, http.StatusCreated, mapjson.Map{"got": v})
	})
	r.GET("/bad", func(c *gin.Context) {
		ginmw.JSON(c, http.StatusOK, mapjson.Map{"n": mapjson.Double(math.NaN())})
	})
	return r
}

func TestDecodeJSON_AndJSON(t *testing.T) {
	r := newRouter()
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"z":null,"y":"s"}`)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Body.String(); got != `{"got":{"y":"s","z":null}}` {
		t.Fatalf("body %s", got)
	}
}

func TestDecodeJSON_Rejects(t *testing.T) {
	r := newRouter()
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"a":`)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestJSON_EncodeFailure(t *testing.T) {
	r := newRouter()
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bad", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"code":"invalid_number"`) {
		t.Fatalf("body %s", rec.Body.String())
	}
}
