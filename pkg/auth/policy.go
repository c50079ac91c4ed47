package auth

import "strings"

// PermissionRule maps a resource path prefix and HTTP method to the set
// of permission names a caller must hold. A request matching the prefix
// and method is allowed by the permission check only when every required
// permission is present; when no rule matches, the check is not decisive
// and evaluation falls through to the ownership check.
type PermissionRule struct {
	PathPrefix string
	Method     string
	Required   []string
}

// Policy is the declarative authorization rule set: role allow-lists,
// the permission rule table, and the path parameter conventionally
// identifying the target user for ownership checks. The decision engine
// is pure logic over this data.
type Policy struct {
	// AdminRole is allowed unconditionally, for any resource.
	AdminRole string

	// UserRole is allowed for resources under UserResourcePrefixes.
	UserRole             string
	UserResourcePrefixes []string

	// Rules is the permission table, consulted in order; the first rule
	// whose prefix and method match the request is the decisive one.
	Rules []PermissionRule

	// OwnerParam names the path parameter holding the target user's id.
	// A request whose OwnerParam value equals the caller's user id is
	// allowed regardless of roles and permissions.
	OwnerParam string
}

// DefaultPolicy returns the rule set shared by the fitness services:
// admins may do anything, plain users may reach their own meal, food,
// workout, reminder, and progress resources, and the coach and plan
// surfaces require explicit permissions.
func DefaultPolicy() *Policy {
	return &Policy{
		AdminRole: "admin",
		UserRole:  "user",
		UserResourcePrefixes: []string{
			"/api/users",
			"/api/meals",
			"/api/foods",
			"/api/workouts",
			"/api/reminders",
			"/api/progress",
		},
		Rules: []PermissionRule{
			{PathPrefix: "/api/coach/clients", Method: "GET", Required: []string{"clients:read"}},
			{PathPrefix: "/api/coach/clients", Method: "POST", Required: []string{"clients:write"}},
			{PathPrefix: "/api/coach/clients", Method: "PUT", Required: []string{"clients:write"}},
			{PathPrefix: "/api/coach/clients", Method: "DELETE", Required: []string{"clients:write"}},
			{PathPrefix: "/api/plans", Method: "GET", Required: []string{"plans:read"}},
			{PathPrefix: "/api/plans", Method: "POST", Required: []string{"plans:write"}},
			{PathPrefix: "/api/plans", Method: "PUT", Required: []string{"plans:write"}},
			{PathPrefix: "/api/reports", Method: "GET", Required: []string{"reports:read"}},
		},
		OwnerParam: "userId",
	}
}

// allowsUserResource reports whether path falls under one of the
// user-resource prefixes.
func (p *Policy) allowsUserResource(path string) bool {
	for _, prefix := range p.UserResourcePrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// rule returns the first permission rule matching the method and path,
// or nil when the permission check is not decisive for this request.
func (p *Policy) rule(method, path string) *PermissionRule {
	for i := range p.Rules {
		r := &p.Rules[i]
		if r.Method == method && strings.HasPrefix(path, r.PathPrefix) {
			return r
		}
	}
	return nil
}
