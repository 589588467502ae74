package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// remoteAddrSeen runs one request through TrustedRealIP and reports the
// RemoteAddr the inner handler observed.
func remoteAddrSeen(t *testing.T, trusted []string, remoteAddr string, headers map[string]string) string {
	t.Helper()

	var seen string
	h := TrustedRealIP(trusted)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.RemoteAddr
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = remoteAddr
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	h.ServeHTTP(httptest.NewRecorder(), req)
	return seen
}

func TestTrustedRealIP(t *testing.T) {
	tests := []struct {
		name       string
		trusted    []string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{
			name:       "untrusted client cannot spoof",
			trusted:    nil,
			remoteAddr: "203.0.113.7:4312",
			headers:    map[string]string{"X-Real-IP": "10.0.0.1"},
			want:       "203.0.113.7:4312",
		},
		{
			name:       "trusted proxy real ip honored",
			trusted:    []string{"127.0.0.0/8"},
			remoteAddr: "127.0.0.1:9000",
			headers:    map[string]string{"X-Real-IP": "203.0.113.7"},
			want:       "203.0.113.7",
		},
		{
			name:       "trusted proxy forwarded-for chain takes first hop",
			trusted:    []string{"127.0.0.0/8"},
			remoteAddr: "127.0.0.1:9000",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.2"},
			want:       "203.0.113.7",
		},
		{
			name:       "single ip entry counts as trusted",
			trusted:    []string{"192.0.2.50"},
			remoteAddr: "192.0.2.50:1234",
			headers:    map[string]string{"X-Real-IP": "203.0.113.9"},
			want:       "203.0.113.9",
		},
		{
			name:       "invalid header value keeps original",
			trusted:    []string{"127.0.0.0/8"},
			remoteAddr: "127.0.0.1:9000",
			headers:    map[string]string{"X-Real-IP": "not-an-ip"},
			want:       "127.0.0.1:9000",
		},
		{
			name:       "no headers keeps original",
			trusted:    []string{"127.0.0.0/8"},
			remoteAddr: "127.0.0.1:9000",
			headers:    nil,
			want:       "127.0.0.1:9000",
		},
		{
			name:       "invalid cidr entry is skipped",
			trusted:    []string{"nonsense", ""},
			remoteAddr: "127.0.0.1:9000",
			headers:    map[string]string{"X-Real-IP": "203.0.113.7"},
			want:       "127.0.0.1:9000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := remoteAddrSeen(t, tt.trusted, tt.remoteAddr, tt.headers)
			if got != tt.want {
				t.Errorf("RemoteAddr = %q, want %q", got, tt.want)
			}
		})
	}
}
