package config

import "testing"

func TestRewriteLocalhost(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"http://localhost:8000/", "http://host.docker.internal:8000/"},
		{"http://127.0.0.1/api/", "http://host.docker.internal/api/"},
		{"https://api.vuet.app/", "https://api.vuet.app/"},
		{"::not a url", "::not a url"},
	}
	for _, tt := range tests {
		if got := rewriteLocalhost(tt.in); got != tt.want {
			t.Errorf("rewriteLocalhost(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsRunningInDocker_Cached(t *testing.T) {
	first := IsRunningInDocker()
	if second := IsRunningInDocker(); second != first {
		t.Errorf("expected cached result %v, got %v", first, second)
	}
}
