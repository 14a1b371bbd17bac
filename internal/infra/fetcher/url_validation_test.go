package fetcher

import (
	"errors"
	"net"
	"testing"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		denyPrivateIPs bool
		wantErr        error
	}{
		{name: "ftp scheme", url: "ftp://example.com/file", denyPrivateIPs: true, wantErr: ErrInvalidURL},
		{name: "file scheme", url: "file:///etc/passwd", denyPrivateIPs: true, wantErr: ErrInvalidURL},
		{name: "no scheme", url: "example.com/article", denyPrivateIPs: true, wantErr: ErrInvalidURL},
		{name: "empty host", url: "http://", denyPrivateIPs: true, wantErr: ErrInvalidURL},
		{name: "malformed", url: "http://[::1", denyPrivateIPs: true, wantErr: ErrInvalidURL},
		{name: "loopback", url: "http://127.0.0.1/", denyPrivateIPs: true, wantErr: ErrPrivateIP},
		{name: "ipv6 loopback", url: "http://[::1]:8080/", denyPrivateIPs: true, wantErr: ErrPrivateIP},
		{name: "10/8", url: "http://10.0.0.1/", denyPrivateIPs: true, wantErr: ErrPrivateIP},
		{name: "172.16/12", url: "http://172.16.5.4/", denyPrivateIPs: true, wantErr: ErrPrivateIP},
		{name: "192.168/16", url: "https://192.168.1.1/admin", denyPrivateIPs: true, wantErr: ErrPrivateIP},
		{name: "link local metadata", url: "http://169.254.169.254/latest/meta-data", denyPrivateIPs: true, wantErr: ErrPrivateIP},
		{name: "unspecified", url: "http://0.0.0.0/", denyPrivateIPs: true, wantErr: ErrPrivateIP},
		{name: "public ip", url: "http://93.184.216.34/", denyPrivateIPs: true},
		{name: "loopback allowed", url: "http://127.0.0.1:8080/", denyPrivateIPs: false},
		{name: "scheme still checked when allowed", url: "gopher://127.0.0.1/", denyPrivateIPs: false, wantErr: ErrInvalidURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateURL(tt.url, tt.denyPrivateIPs)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("validateURL(%q) error = %v, want nil", tt.url, err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("validateURL(%q) error = %v, want %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestIsPrivateIP(t *testing.T) {
	tests := []struct {
		ip   string
		want bool
	}{
		{"127.0.0.1", true},
		{"10.1.2.3", true},
		{"172.31.255.255", true},
		{"172.32.0.1", false},
		{"192.168.0.1", true},
		{"169.254.1.1", true},
		{"fe80::1", true},
		{"fc00::1", true},
		{"8.8.8.8", false},
		{"2001:4860:4860::8888", false},
	}

	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			if got := isPrivateIP(net.ParseIP(tt.ip)); got != tt.want {
				t.Errorf("isPrivateIP(%s) = %v, want %v", tt.ip, got, tt.want)
			}
		})
	}
}

func TestMediaTypeOf(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		body    string
		want    string
		wantErr bool
	}{
		{name: "html with charset", header: "text/html; charset=utf-8", want: "text/html"},
		{name: "xhtml", header: "application/xhtml+xml", want: "application/xhtml+xml"},
		{name: "plain text", header: "text/plain", want: "text/plain"},
		{name: "sniffed html", body: "<!DOCTYPE html><html><body>hi</body></html>", want: "text/html"},
		{name: "sniffed text", body: "just some words", want: "text/plain"},
		{name: "json rejected", header: "application/json", wantErr: true},
		{name: "pdf rejected", header: "application/pdf", wantErr: true},
		{name: "malformed header", header: "text/html; =", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := mediaTypeOf(tt.header, []byte(tt.body))
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedContent) {
					t.Errorf("mediaTypeOf() error = %v, want ErrUnsupportedContent", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("mediaTypeOf() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("mediaTypeOf() = %q, want %q", got, tt.want)
			}
		})
	}
}
