// pkg/middleware/debugwrite.go
package middleware

import (
	"log"
	"net/http"
	"os"
	"runtime/debug"
	"strings"
	"sync/atomic"
)

// DebugWriteHeader logs a stack trace when a handler calls WriteHeader
// twice, which otherwise only shows up as a terse net/http warning. Off
// unless VIISP_DEBUG_DOUBLE_WRITE is set to 1/true/yes; the passthrough
// costs nothing when disabled.
func DebugWriteHeader() func(http.Handler) http.Handler {
	v := strings.ToLower(os.Getenv("VIISP_DEBUG_DOUBLE_WRITE"))
	if !(strings.HasPrefix(v, "1") || strings.HasPrefix(v, "t") || strings.HasPrefix(v, "y")) {
		return func(next http.Handler) http.Handler { return next }
	}
	log.Println("double-write detection enabled")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(&writeOnceWriter{ResponseWriter: w, method: r.Method, path: r.URL.Path}, r)
		})
	}
}

type writeOnceWriter struct {
	http.ResponseWriter
	wrote  int32
	method string
	path   string
	code   int
}

func (d *writeOnceWriter) WriteHeader(code int) {
	if atomic.CompareAndSwapInt32(&d.wrote, 0, 1) {
		d.code = code
		d.ResponseWriter.WriteHeader(code)
		return
	}
	log.Printf("double WriteHeader: %s %s first=%d second=%d\n%s", d.method, d.path, d.code, code, debug.Stack())
}

func (d *writeOnceWriter) Write(b []byte) (int, error) {
	if atomic.LoadInt32(&d.wrote) == 0 {
		d.WriteHeader(http.StatusOK)
	}
	return d.ResponseWriter.Write(b)
}
