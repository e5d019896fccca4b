package middleware

import (
	"compress/gzip"
	"io"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

// CompressionConfig holds configuration for response compression
type CompressionConfig struct {
	CompressionLevel int      // Gzip compression level (1-9)
	ContentTypes     []string // Content types to compress
}

// DefaultCompressionConfig returns the default compression configuration
func DefaultCompressionConfig() CompressionConfig {
	return CompressionConfig{
		CompressionLevel: 6,
		ContentTypes: []string{
			"application/json",
			"text/plain",
			"text/html",
		},
	}
}

// CompressionMiddleware provides gzip compression for HTTP responses
type CompressionMiddleware struct {
	config CompressionConfig
	pool   sync.Pool
}

// NewCompressionMiddleware creates a new compression middleware
func NewCompressionMiddleware(config CompressionConfig) *CompressionMiddleware {
	level := config.CompressionLevel
	if level < gzip.BestSpeed || level > gzip.BestCompression {
		level = gzip.DefaultCompression
	}
	return &CompressionMiddleware{
		config: config,
		pool: sync.Pool{
			New: func() interface{} {
				gz, _ := gzip.NewWriterLevel(io.Discard, level)
				return gz
			},
		},
	}
}

// Handler returns a Gin middleware that gzip-compresses responses for
// clients that accept it.
func (cm *CompressionMiddleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.Contains(c.GetHeader("Accept-Encoding"), "gzip") {
			c.Next()
			return
		}

		gz := cm.pool.Get().(*gzip.Writer)
		defer cm.pool.Put(gz)
		gz.Reset(c.Writer)

		wrapper := &gzipWriter{ResponseWriter: c.Writer, gz: gz, cm: cm}
		c.Writer = wrapper
		c.Header("Vary", "Accept-Encoding")

		c.Next()

		wrapper.close()
	}
}

// shouldCompress checks if the content type should be compressed
func (cm *CompressionMiddleware) shouldCompress(contentType string) bool {
	for _, ct := range cm.config.ContentTypes {
		if strings.Contains(contentType, ct) {
			return true
		}
	}
	return false
}

// gzipWriter compresses the body when the content type qualifies. The
// decision is deferred to the first write, after handlers have set headers.
type gzipWriter struct {
	gin.ResponseWriter
	gz       *gzip.Writer
	cm       *CompressionMiddleware
	decided  bool
	compress bool
}

func (w *gzipWriter) decide() {
	if w.decided {
		return
	}
	w.decided = true
	w.compress = w.cm.shouldCompress(w.Header().Get("Content-Type"))
	if w.compress {
		w.Header().Set("Content-Encoding", "gzip")
		w.Header().Del("Content-Length")
	}
}

func (w *gzipWriter) Write(data []byte) (int, error) {
	w.decide()
	if !w.compress {
		return w.ResponseWriter.Write(data)
	}
	return w.gz.Write(data)
}

func (w *gzipWriter) WriteString(s string) (int, error) {
	return w.Write([]byte(s))
}

func (w *gzipWriter) close() {
	if w.compress {
		w.gz.Close()
	}
}
