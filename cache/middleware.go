package cache

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/gin-gonic/gin"
)

// responseWriter holds the body back so the ETag can be set before sending.
type responseWriter struct {
	gin.ResponseWriter
	body   *bytes.Buffer
	status int
}

func (w *responseWriter) Write(b []byte) (int, error) {
	return w.body.Write(b)
}

func (w *responseWriter) WriteString(s string) (int, error) {
	return w.body.WriteString(s)
}

func (w *responseWriter) WriteHeader(code int) {
	w.status = code
}

func (w *responseWriter) WriteHeaderNow() {}

func (w *responseWriter) Status() int {
	return w.status
}

func (w *responseWriter) Written() bool {
	return w.body.Len() > 0
}

func (w *responseWriter) Size() int {
	return w.body.Len()
}

// ETag computes a weak validator for successful GET responses and answers
// 304 when the client already holds the same body.
func ETag() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.Next()
			return
		}

		original := c.Writer
		writer := &responseWriter{
			ResponseWriter: original,
			body:           bytes.NewBuffer(nil),
			status:         http.StatusOK,
		}
		c.Writer = writer

		completed := false
		defer func() {
			// a panicking handler leaves the response to the recovery middleware
			c.Writer = original
			if !completed {
				return
			}
			if writer.status != http.StatusOK {
				original.WriteHeader(writer.status)
				original.Write(writer.body.Bytes())
				return
			}
			writeTagged(c, original, writer.body.Bytes())
		}()

		c.Next()
		completed = true
	}
}

// writeTagged sends body with its ETag, or 304 when the client already has it.
func writeTagged(c *gin.Context, original gin.ResponseWriter, body []byte) {
	tag := Tag(body)
	original.Header().Set("ETag", tag)
	if matches(c.GetHeader("If-None-Match"), tag) {
		original.Header().Del("Content-Type")
		original.WriteHeader(http.StatusNotModified)
		original.WriteHeaderNow()
		return
	}

	original.WriteHeader(http.StatusOK)
	original.Write(body)
}

// Tag returns the weak ETag for body.
func Tag(body []byte) string {
	return fmt.Sprintf(`W/"%016x"`, xxhash.Sum64(body))
}

func matches(header, tag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || candidate == tag || "W/"+candidate == tag {
			return true
		}
	}
	return false
}
