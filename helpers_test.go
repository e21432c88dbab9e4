package guidebook

import "testing"

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base     string
		segments []string
		expected string
	}{
		{"https://example.com", nil, "https://example.com/"},
		{"https://example.com", []string{"guide", "routing"}, "https://example.com/guide/routing"},
		{"https://example.com/docs", []string{"sitemap.xml"}, "https://example.com/docs/sitemap.xml"},
		{"https://example.com", []string{"guide", "a b"}, "https://example.com/guide/a%20b"},
	}
	for _, tt := range tests {
		if got := BuildURL(tt.base, tt.segments...); got != tt.expected {
			t.Errorf("BuildURL(%q, %v) = %q, want %q", tt.base, tt.segments, got, tt.expected)
		}
	}
}
