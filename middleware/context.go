package middleware

import (
	"context"

	"github.com/upb/eventflow/auth"
)

// Context key type to avoid collisions
type contextKey string

const (
	// RequestIDKey is the context key for request ID
	RequestIDKey contextKey = "request_id"

	// IdentityKey is the context key for the authenticated identity
	IdentityKey contextKey = "identity"

	// RouteRuleKey is the context key for the policy rule that admitted the request
	RouteRuleKey contextKey = "route_rule"
)

// GetRequestIDFromContext retrieves the request ID from context
func GetRequestIDFromContext(ctx context.Context) string {
	if val := ctx.Value(RequestIDKey); val != nil {
		if requestID, ok := val.(string); ok {
			return requestID
		}
	}
	return ""
}

// WithRequestID adds a request ID to the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// GetIdentityFromContext retrieves the authenticated identity from context.
// The second return value is false on public routes.
func GetIdentityFromContext(ctx context.Context) (auth.Identity, bool) {
	if val := ctx.Value(IdentityKey); val != nil {
		if identity, ok := val.(auth.Identity); ok {
			return identity, true
		}
	}
	return auth.Identity{}, false
}

// WithIdentity adds an authenticated identity to the context
func WithIdentity(ctx context.Context, identity auth.Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, identity)
}

// GetRouteRuleFromContext retrieves the name of the rule that admitted the request
func GetRouteRuleFromContext(ctx context.Context) string {
	if val := ctx.Value(RouteRuleKey); val != nil {
		if rule, ok := val.(string); ok {
			return rule
		}
	}
	return ""
}

// WithRouteRule records the admitting rule in the context
func WithRouteRule(ctx context.Context, rule string) context.Context {
	return context.WithValue(ctx, RouteRuleKey, rule)
}
