package reqid

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, header string) (seen string, echoed string) {
	t.Helper()
	h := Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = FromCtx(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(Header, header)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return seen, rec.Header().Get(Header)
}

func TestMiddleware_GeneratesID(t *testing.T) {
	seen, echoed := serve(t, "")

	_, err := uuid.Parse(seen)
	require.NoError(t, err)
	assert.Equal(t, seen, echoed)
}

func TestMiddleware_ReusesUpstreamID(t *testing.T) {
	seen, echoed := serve(t, "gateway-42")
	assert.Equal(t, "gateway-42", seen)
	assert.Equal(t, "gateway-42", echoed)
}

func TestMiddleware_ReplacesUnsafeID(t *testing.T) {
	seen, _ := serve(t, "bad id\nwith newline")
	assert.NotEqual(t, "bad id\nwith newline", seen)
	_, err := uuid.Parse(seen)
	assert.NoError(t, err)
}
