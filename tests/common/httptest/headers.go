//go:build unit || e2e

package httptest

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func AssertHeaders(t *testing.T, w *httptest.ResponseRecorder, expected map[string]string) {
	t.Helper()
	for k, v := range expected {
		assert.Equal(t, v, w.Header().Get(k), "header %s mismatch", k)
	}
}

// AssertRateLimited checks a 429 with the given Retry-After value.
func AssertRateLimited(t *testing.T, w *httptest.ResponseRecorder, retryAfter string) {
	t.Helper()
	assert.Equal(t, 429, w.Code, "expected 429, body: %s", w.Body.String())
	assert.Equal(t, retryAfter, w.Header().Get("Retry-After"))
}
