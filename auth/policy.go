package auth

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/upb/eventflow/models"
)

// Permission decides whether an identity may use a matched route.
// params holds the path components captured by "*" pattern segments.
type Permission func(identity Identity, params []string) bool

// RouteRule binds a path pattern and method set to a permission
type RouteRule struct {
	Name       string
	Pattern    PathPattern
	Methods    []string // empty matches any method
	Permission Permission
}

func (r *RouteRule) matches(method, requestPath string) ([]string, bool) {
	if len(r.Methods) > 0 && !containsMethod(r.Methods, method) {
		return nil, false
	}
	return r.Pattern.Match(requestPath)
}

// Decision is the outcome of a policy evaluation
type Decision struct {
	Allowed bool
	// Rule names the rule that decided, empty when the default deny applied.
	// For logging only; never expose it to clients.
	Rule string
}

// AccessPolicy evaluates an ordered rule table. The first rule whose
// pattern and method match decides; no match denies.
type AccessPolicy struct {
	rules []RouteRule
}

// NewAccessPolicy creates a policy with the EventFlow rule table
func NewAccessPolicy() *AccessPolicy {
	return NewAccessPolicyWithRules(DefaultRules())
}

// NewAccessPolicyWithRules creates a policy over the given rules.
// The slice is copied so the table cannot change after construction.
func NewAccessPolicyWithRules(rules []RouteRule) *AccessPolicy {
	return &AccessPolicy{rules: append([]RouteRule(nil), rules...)}
}

// DefaultRules returns the EventFlow rule table in evaluation order
func DefaultRules() []RouteRule {
	return []RouteRule{
		{
			Name:       "create-event",
			Pattern:    CompilePattern("/api/events"),
			Methods:    []string{http.MethodPost},
			Permission: anyRole(models.RoleOrganizer, models.RoleAdmin),
		},
		{
			// Ownership of the specific event is checked by the handler.
			Name:       "modify-event",
			Pattern:    CompilePattern("/api/events/*"),
			Methods:    []string{http.MethodPut, http.MethodDelete},
			Permission: anyRole(models.RoleOrganizer, models.RoleAdmin),
		},
		{
			Name:       "register-for-event",
			Pattern:    CompilePattern("/api/events/*/register"),
			Methods:    []string{http.MethodPost},
			Permission: anyRole(models.RoleAttendee),
		},
		{
			Name:       "view-user-registrations",
			Pattern:    CompilePattern("/api/users/*/registrations"),
			Methods:    []string{http.MethodGet},
			Permission: selfOrAdmin(0),
		},
		{
			Name:       "venues",
			Pattern:    CompilePattern("/api/venues"),
			Methods:    []string{http.MethodGet, http.MethodPost},
			Permission: anyRole(models.RoleOrganizer, models.RoleAdmin),
		},
		{
			// Narrower than venues: admin is not implied here.
			Name:       "organizer-namespace",
			Pattern:    CompilePattern("/api/organizer/**"),
			Permission: anyRole(models.RoleOrganizer),
		},
		{
			Name:       "admin-registrations",
			Pattern:    CompilePattern("/api/admin/registrations"),
			Methods:    []string{http.MethodGet},
			Permission: anyRole(models.RoleAdmin),
		},
	}
}

// Permit reports whether the identity may perform method on path
func (p *AccessPolicy) Permit(identity Identity, method, requestPath string) bool {
	return p.Evaluate(identity, method, requestPath).Allowed
}

// Evaluate runs the rule table and reports which rule decided
func (p *AccessPolicy) Evaluate(identity Identity, method, requestPath string) Decision {
	method = strings.ToUpper(method)
	normalized := NormalizePath(requestPath)

	for i := range p.rules {
		rule := &p.rules[i]
		params, ok := rule.matches(method, normalized)
		if !ok {
			continue
		}
		return Decision{
			Allowed: rule.Permission != nil && rule.Permission(identity, params),
			Rule:    rule.Name,
		}
	}
	return Decision{}
}

func anyRole(roles ...models.UserRole) Permission {
	return func(identity Identity, _ []string) bool {
		return identity.HasRole(roles...)
	}
}

// selfOrAdmin grants access when the captured id at index equals the
// subject, or the identity is an admin. A malformed id denies.
func selfOrAdmin(index int) Permission {
	return func(identity Identity, params []string) bool {
		id, ok := intParam(params, index)
		if !ok {
			return false
		}
		return identity.SubjectID == id || identity.IsAdmin()
	}
}

func intParam(params []string, index int) (int, bool) {
	if index < 0 || index >= len(params) {
		return 0, false
	}
	id, err := strconv.Atoi(params[index])
	if err != nil {
		return 0, false
	}
	return id, true
}

func containsMethod(methods []string, method string) bool {
	for _, m := range methods {
		if m == method {
			return true
		}
	}
	return false
}
