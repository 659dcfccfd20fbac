package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestComputeApproximateRequestSize(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/v1/upload/success-rate", strings.NewReader("body"))
	req.Host = "localhost"
	req.Header.Set("X-Referer", "dashboard")

	size := computeApproximateRequestSize(req)

	// path + method + proto + header + host + content length
	want := len("/api/v1/upload/success-rate") + len("POST") + len("HTTP/1.1") +
		len("X-Referer") + len("dashboard") + len("localhost") + len("body")
	require.Equal(t, want, size)
}

func TestMillisecondsSince(t *testing.T) {
	start := time.Now().Add(-250 * time.Millisecond)

	elapsed := MillisecondsSince(start)

	require.GreaterOrEqual(t, elapsed, 250.0)
	require.Less(t, elapsed, 10000.0)
}
