package auth

import "testing"

func TestDefaultPolicyUserResourcePrefixes(t *testing.T) {
	p := DefaultPolicy()

	allowed := []string{
		"/api/users/u1",
		"/api/meals",
		"/api/foods/search",
		"/api/workouts/w9/sets",
		"/api/reminders",
		"/api/progress/weight",
	}
	for _, path := range allowed {
		if !p.allowsUserResource(path) {
			t.Errorf("Expected %q to be a user resource", path)
		}
	}

	denied := []string{"/api/coach/clients", "/api/plans", "/internal/debug"}
	for _, path := range denied {
		if p.allowsUserResource(path) {
			t.Errorf("Expected %q not to be a user resource", path)
		}
	}
}

func TestPolicyRuleLookup(t *testing.T) {
	p := DefaultPolicy()

	rule := p.rule("GET", "/api/coach/clients/c1")
	if rule == nil {
		t.Fatal("Expected a rule for GET under /api/coach/clients")
	}
	if len(rule.Required) != 1 || rule.Required[0] != "clients:read" {
		t.Errorf("Expected clients:read to be required, got %v", rule.Required)
	}

	if p.rule("PATCH", "/api/coach/clients") != nil {
		t.Error("Expected no rule for an unlisted method")
	}
	if p.rule("GET", "/api/meals") != nil {
		t.Error("Expected no rule for a path outside the table")
	}
}

func TestPolicyRuleFirstMatchWins(t *testing.T) {
	p := &Policy{
		Rules: []PermissionRule{
			{PathPrefix: "/api/plans", Method: "GET", Required: []string{"plans:read"}},
			{PathPrefix: "/api/plans/templates", Method: "GET", Required: []string{"templates:read"}},
		},
	}

	rule := p.rule("GET", "/api/plans/templates/t1")
	if rule == nil || rule.Required[0] != "plans:read" {
		t.Errorf("Expected the first matching rule in table order to be decisive, got %v", rule)
	}
}
