package common

import (
	"context"
	"net/http"
	"testing"
)

func TestRequestHeaderCaseInsensitive(t *testing.T) {
	req := &Request{
		Headers: map[string]string{
			"authorization": "Bearer abc",
			"X-Request-Id":  "r1",
		},
	}

	if got := req.Header("Authorization"); got != "Bearer abc" {
		t.Errorf("Expected case-insensitive header lookup, got %q", got)
	}
	if got := req.Header("x-request-id"); got != "r1" {
		t.Errorf("Expected case-insensitive header lookup, got %q", got)
	}
	if got := req.Header("X-Missing"); got != "" {
		t.Errorf("Expected empty string for missing header, got %q", got)
	}
}

func TestRequestContextDefault(t *testing.T) {
	req := &Request{}
	if req.Context() == nil {
		t.Fatal("Expected Context to never return nil")
	}

	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "v")
	req2 := req.WithContext(ctx)
	if req2.Context().Value(key{}) != "v" {
		t.Error("Expected WithContext to carry the given context")
	}
	if req.Context().Value(key{}) != nil {
		t.Error("Expected the original request to be unchanged")
	}
}

func TestAuthContextRolesAndPermissions(t *testing.T) {
	ctx := &AuthContext{
		UserID:      "u1",
		Roles:       []string{"user", "coach"},
		Permissions: []string{"clients:read"},
	}

	if !ctx.Authenticated() {
		t.Error("Expected context with user ID to be authenticated")
	}
	if !ctx.HasRole("coach") {
		t.Error("Expected HasRole to find an existing role")
	}
	if ctx.HasRole("admin") {
		t.Error("Expected HasRole to reject a missing role")
	}
	if !ctx.HasPermission("clients:read") {
		t.Error("Expected HasPermission to find an existing permission")
	}
	if ctx.HasPermission("clients:write") {
		t.Error("Expected HasPermission to reject a missing permission")
	}

	var nilCtx *AuthContext
	if nilCtx.Authenticated() || nilCtx.HasRole("admin") || nilCtx.HasPermission("x") {
		t.Error("Expected nil context to carry no identity, roles, or permissions")
	}
}

func TestNewResponseDefaults(t *testing.T) {
	resp := NewResponse(http.StatusOK, `{}`)
	if resp.Headers["Content-Type"] != "application/json" {
		t.Errorf("Expected JSON content type by default, got %q", resp.Headers["Content-Type"])
	}
	if resp.IsBase64Encoded {
		t.Error("Expected IsBase64Encoded to default to false")
	}
}

func TestNewErrorResponseBody(t *testing.T) {
	resp := NewErrorResponse(http.StatusForbidden, "insufficient permissions")
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("Expected status code %d, got %d", http.StatusForbidden, resp.StatusCode)
	}
	if resp.Body != `{"error":"insufficient permissions"}` {
		t.Errorf("Unexpected error body %q", resp.Body)
	}
}
