package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCompressedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	cm := NewCompressionMiddleware(DefaultCompressionConfig())

	r := gin.New()
	r.Use(cm.Handler())
	r.GET("/json", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"payload": strings.Repeat("x", 2048)})
	})
	r.GET("/binary", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/octet-stream", []byte{0x01, 0x02, 0x03})
	})
	return r
}

func TestCompressesJSONForGzipClients(t *testing.T) {
	router := newCompressedRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/json", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "gzip", w.Header().Get("Content-Encoding"))

	gr, err := gzip.NewReader(w.Body)
	require.NoError(t, err)
	body, err := io.ReadAll(gr)
	require.NoError(t, err)
	assert.Contains(t, string(body), "payload")
}

func TestSkipsClientsWithoutGzip(t *testing.T) {
	router := newCompressedRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/json", nil)
	router.ServeHTTP(w, req)

	assert.Empty(t, w.Header().Get("Content-Encoding"))
	assert.Contains(t, w.Body.String(), "payload")
}

func TestSkipsUnlistedContentTypes(t *testing.T) {
	router := newCompressedRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/binary", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	router.ServeHTTP(w, req)

	assert.Empty(t, w.Header().Get("Content-Encoding"))
	assert.Equal(t, []byte{0x01, 0x02, 0x03}, w.Body.Bytes())
}
