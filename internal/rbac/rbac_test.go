package rbac

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCheckerDefaults(t *testing.T) {
	c := NewChecker(nil)
	cases := []struct {
		role, perm string
		want       bool
	}{
		{"player", "quiz:start", true},
		{"player", "check:multi", true},
		{"player", "worksheet:generate", false},
		{"player", "logs:view", false},
		{"parent", "worksheet:generate", true},
		{"stranger", "quiz:start", false},
	}
	for _, tc := range cases {
		if got := c.Has(tc.role, tc.perm); got != tc.want {
			t.Errorf("Has(%s, %s) = %v", tc.role, tc.perm, got)
		}
	}
	if !c.Any("player", "logs:view", "topic:view") || c.Any("player", "logs:view", "worksheet:edit") {
		t.Fatal("Any mismatch")
	}
}

func TestRequire(t *testing.T) {
	h := Require("logs:view")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	for role, want := range map[string]int{"parent": http.StatusOK, "player": http.StatusForbidden, "": http.StatusForbidden} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(WithRole(context.Background(), role))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != want {
			t.Errorf("role %q: code %d, want %d", role, rec.Code, want)
		}
	}
}

func TestRequireAny(t *testing.T) {
	h := RequireAny("worksheet:edit", "topic:view")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithRole(context.Background(), "player"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("player code %d, want 200", rec.Code)
	}
}
