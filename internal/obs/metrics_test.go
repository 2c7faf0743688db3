package obs

import "testing"

func TestCanonicalPath(t *testing.T) {
	cases := map[string]string{
		"":                            "/",
		"/metrics":                    "/metrics",
		"/health":                     "/health",
		"/resources":                  "/resources",
		"/resources/abc":              "/resources/:id",
		"/resources/abc?x=1":          "/resources/:id",
		"/resources/abc/members":      "/resources/:id/members",
		"/resources/abc/members/m1":   "/resources/:id/members/:memberId",
		"/resources/abc/extra":        "/resources/abc/extra",
		"/api/v1/resources/abc":       "/api/v1/resources/:id",
		"/api/v1/auth/login":          "/api/v1/auth/login",
		"/auth/me":                    "/auth/me",
	}
	for input, expected := range cases {
		if got := CanonicalPath(input); got != expected {
			t.Fatalf("CanonicalPath(%q)=%q, want %q", input, got, expected)
		}
	}
}
