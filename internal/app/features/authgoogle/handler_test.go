package authgoogle

import "testing"

func TestSanitizeReturnURL(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"/qna", "/qna"},
		{"/friends?sort=new", "/friends?sort=new"},
		{"https://evil.example.com/", ""},
		{"//evil.example.com/", ""},
		{"qna", ""},
	}
	for _, tc := range cases {
		if got := sanitizeReturnURL(tc.in); got != tc.want {
			t.Errorf("sanitizeReturnURL(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestIsConfigured(t *testing.T) {
	h := &Handler{}
	if h.IsConfigured() {
		t.Error("empty handler should not be configured")
	}
	h.ClientID = "id"
	if h.IsConfigured() {
		t.Error("missing secret should not be configured")
	}
	h.ClientSecret = "secret"
	if !h.IsConfigured() {
		t.Error("expected configured")
	}
}
