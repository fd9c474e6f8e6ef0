package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbnu/campus-ontology/internal/apperrors"
)

func init() { gin.SetMode(gin.TestMode) }

func serve(t *testing.T, reqID string, h gin.HandlerFunc) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", h)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if reqID != "" {
		req.Header.Set("X-Request-ID", reqID)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestRequestID_ReusesSaneHeader(t *testing.T) {
	w, body := serve(t, "trace-123", func(c *gin.Context) { Success(c, http.StatusOK, nil) })
	assert.Equal(t, "trace-123", w.Header().Get("X-Request-ID"))
	assert.Equal(t, "trace-123", body.Metadata.RequestID)
}

func TestRequestID_ReplacesBadHeader(t *testing.T) {
	w, body := serve(t, "has space", func(c *gin.Context) { Success(c, http.StatusOK, nil) })
	assert.NotEqual(t, "has space", w.Header().Get("X-Request-ID"))
	assert.Len(t, body.Metadata.RequestID, 36)
}

func TestFailErr_MapsTaxonomy(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   ErrCode
	}{
		{fmt.Errorf("student STD-1: %w", apperrors.ErrNotFound), http.StatusNotFound, ErrNotFound},
		{apperrors.NewConnectivityError("neo4j", fmt.Errorf("refused")), http.StatusServiceUnavailable, ErrGraphUnavailable},
		{fmt.Errorf("boom"), http.StatusInternalServerError, ErrInternal},
	}
	for _, tc := range cases {
		w, body := serve(t, "", func(c *gin.Context) { FailErr(c, tc.err) })
		assert.Equal(t, tc.status, w.Code)
		require.NotNil(t, body.Error)
		assert.Equal(t, tc.code, body.Error.Code)
		assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	}
}
