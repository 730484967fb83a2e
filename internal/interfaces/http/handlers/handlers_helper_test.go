package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"

	"crowdfund.backend/internal/interfaces/http/middleware"
)

var (
	testCaller = common.HexToAddress("0x00000000000000000000000000000000000000b1")
	testToken  = common.HexToAddress("0x3333333333333333333333333333333333333333")
)

func withCaller(c *gin.Context) {
	c.Set(middleware.AccountKey, testCaller)
	c.Next()
}

func doJSON(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
