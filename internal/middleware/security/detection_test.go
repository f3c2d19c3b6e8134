package security

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestClientIP(t *testing.T) {
	d := NewDetector()

	cases := []struct {
		name   string
		remote string
		xff    string
		xri    string
		want   string
	}{
		{"direct", "203.0.113.7:5000", "", "", "203.0.113.7"},
		{"untrusted peer ignores headers", "203.0.113.7:5000", "198.51.100.1", "", "203.0.113.7"},
		{"trusted proxy forwards", "10.1.2.3:80", "198.51.100.1, 10.1.2.3", "", "198.51.100.1"},
		{"real ip fallback", "127.0.0.1:80", "garbage", "198.51.100.9", "198.51.100.9"},
		{"no port", "192.0.2.4", "", "", "192.0.2.4"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tc.remote
			if tc.xff != "" {
				r.Header.Set("X-Forwarded-For", tc.xff)
			}
			if tc.xri != "" {
				r.Header.Set("X-Real-IP", tc.xri)
			}
			if got := d.ClientIP(r); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestAddTrustedProxy(t *testing.T) {
	d := NewDetector()
	if err := d.AddTrustedProxy("not-a-cidr"); err == nil {
		t.Fatal("expected error for invalid CIDR")
	}
	if err := d.AddTrustedProxy("203.0.113.0/24"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "203.0.113.7:5000"
	r.Header.Set("X-Forwarded-For", "198.51.100.1")
	if got := d.ClientIP(r); got != "198.51.100.1" {
		t.Fatalf("expected forwarded IP, got %q", got)
	}
}

func TestSuspicious(t *testing.T) {
	d := NewDetector()
	for _, target := range []string{"/?category=career", "/ui/goals?goal=3", "/static/app.css"} {
		if d.Suspicious(httptest.NewRequest(http.MethodGet, target, nil)) {
			t.Fatalf("%s flagged as suspicious", target)
		}
	}
	for _, target := range []string{"/.env", "/wp-admin/", "/?goal=" + strings.Repeat("a", maxURLLength)} {
		if !d.Suspicious(httptest.NewRequest(http.MethodGet, target, nil)) {
			t.Fatalf("%s not flagged", target)
		}
	}
	if d.SuspiciousCount() != 3 {
		t.Fatalf("expected 3 flagged requests, got %d", d.SuspiciousCount())
	}
}
