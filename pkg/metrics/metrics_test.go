package metrics

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler(t *testing.T) {
	assert := assert.New(t)
	h := Handler()

	{
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.Equal(http.StatusOK, rec.Code)
		assert.Equal("OK", rec.Body.String())
	}

	{
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/version", nil))
		assert.Equal(http.StatusOK, rec.Code)
		var info map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
		assert.Contains(info, "short")
	}

	{
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(http.StatusOK, rec.Code)
		assert.Contains(rec.Body.String(), "go_goroutines")
	}
}

func TestRunServerDisabled(t *testing.T) {
	called := false
	err := RunServer(t.Context(), func() { called = true }, "")
	assert.NoError(t, err)
	assert.False(t, called)
}
