package auth

import (
	"net/http"
	"strings"
)

// AuthPathPrefix is the identity-issuance namespace; mutations under it are public
const AuthPathPrefix = "/api/auth"

// protectedReadPatterns lists GET routes that require authentication, in match order
var protectedReadPatterns = []string{
	"/api/users/*/registrations",
	"/api/admin/registrations",
	"/api/venues",
	"/api/organizer/events",
	"/api/organizer/events/*/registrations",
}

// RouteDecision is the outcome of classifying a request
type RouteDecision struct {
	// RequiresAuth is false for public routes
	RequiresAuth bool
	// Pattern is the protected GET pattern that matched, empty otherwise
	Pattern string
}

// IsPublic reports whether the request may proceed without identity
func (d RouteDecision) IsPublic() bool {
	return !d.RequiresAuth
}

// RouteClassifier decides which requests require authentication.
// Mutations are private by default; reads are private only when listed.
type RouteClassifier struct {
	authPrefix     string
	protectedReads []PathPattern
}

// NewRouteClassifier creates a classifier with the EventFlow route table
func NewRouteClassifier() *RouteClassifier {
	patterns := make([]PathPattern, 0, len(protectedReadPatterns))
	for _, p := range protectedReadPatterns {
		patterns = append(patterns, CompilePattern(p))
	}
	return &RouteClassifier{
		authPrefix:     AuthPathPrefix,
		protectedReads: patterns,
	}
}

// Classify decides whether the request requires authentication
func (c *RouteClassifier) Classify(method, requestPath string) RouteDecision {
	p := NormalizePath(requestPath)

	switch strings.ToUpper(method) {
	case http.MethodOptions:
		return RouteDecision{}
	case http.MethodPost, http.MethodPut, http.MethodDelete:
		if c.isAuthPath(p) {
			return RouteDecision{}
		}
		return RouteDecision{RequiresAuth: true}
	case http.MethodGet:
		for _, pattern := range c.protectedReads {
			if _, ok := pattern.Match(p); ok {
				return RouteDecision{RequiresAuth: true, Pattern: pattern.String()}
			}
		}
		// The router keeps empty components as empty parameters, so a path
		// like /api/users//registrations still reaches a protected handler.
		if HasEmptySegment(requestPath) {
			return RouteDecision{RequiresAuth: true}
		}
	}

	return RouteDecision{}
}

func (c *RouteClassifier) isAuthPath(p string) bool {
	return p == c.authPrefix || strings.HasPrefix(p, c.authPrefix+"/")
}
