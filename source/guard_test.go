package source

import (
	"net"
	"testing"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name         string
		url          string
		allowPrivate bool
		wantErr      bool
	}{
		{
			name: "https URL",
			url:  "https://bartoc.org/api/registry.json",
		},
		{
			name: "http URL",
			url:  "http://example.com/kos.json",
		},
		{
			name:    "ftp scheme rejected",
			url:     "ftp://example.com/kos.json",
			wantErr: true,
		},
		{
			name:    "file scheme rejected",
			url:     "file:///etc/passwd",
			wantErr: true,
		},
		{
			name:    "localhost rejected",
			url:     "http://localhost:8080/kos.json",
			wantErr: true,
		},
		{
			name:    "loopback IP rejected",
			url:     "http://127.0.0.1/kos.json",
			wantErr: true,
		},
		{
			name:    "IPv6 loopback rejected",
			url:     "http://[::1]/kos.json",
			wantErr: true,
		},
		{
			name:    ".local domain rejected",
			url:     "https://fileserver.local/kos.json",
			wantErr: true,
		},
		{
			name:    ".internal domain rejected",
			url:     "https://registry.internal/kos.json",
			wantErr: true,
		},
		{
			name:    "private IP 192.168.x.x rejected",
			url:     "https://192.168.1.10/kos.json",
			wantErr: true,
		},
		{
			name:    "private IP 10.x.x.x rejected",
			url:     "https://10.0.0.1/kos.json",
			wantErr: true,
		},
		{
			name:         "loopback allowed when opted in",
			url:          "http://127.0.0.1:9099/kos.json",
			allowPrivate: true,
		},
		{
			name:         "scheme check survives opt in",
			url:          "ftp://127.0.0.1/kos.json",
			allowPrivate: true,
			wantErr:      true,
		},
		{
			name:    "missing host",
			url:     "http://",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.url, tt.allowPrivate)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q, %v) error = %v, wantErr %v", tt.url, tt.allowPrivate, err, tt.wantErr)
			}
		})
	}
}

func TestIsPrivateIP(t *testing.T) {
	tests := []struct {
		ip       string
		expected bool
	}{
		// IPv4 private ranges
		{"192.168.1.1", true},
		{"10.0.0.1", true},
		{"172.16.0.1", true},
		{"172.31.255.255", true},
		{"127.0.0.1", true},
		{"169.254.1.1", true}, // IPv4 link-local

		// IPv4 public
		{"8.8.8.8", false},
		{"1.1.1.1", false},

		// CGNAT
		{"100.64.0.1", true},
		{"100.127.255.255", true},

		// IPv6
		{"::1", true},                // IPv6 loopback
		{"::ffff:192.168.1.1", true}, // IPv4-mapped private
		{"::ffff:127.0.0.1", true},   // IPv4-mapped loopback
		{"::ffff:8.8.8.8", false},    // IPv4-mapped public
		{"fe80::1", true},            // IPv6 link-local
		{"fc00::1", true},            // IPv6 unique local
	}

	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			ip := net.ParseIP(tt.ip)
			if ip == nil {
				t.Fatalf("failed to parse IP: %s", tt.ip)
			}
			if got := IsPrivateIP(ip); got != tt.expected {
				t.Errorf("IsPrivateIP(%q) = %v, want %v", tt.ip, got, tt.expected)
			}
		})
	}
}
