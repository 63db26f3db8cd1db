package middleware

import (
	"net/http"
	"strings"

	"github.com/upb/eventflow/auth"
	"github.com/upb/eventflow/utils"
	"go.uber.org/zap"
)

const bearerPrefix = "Bearer "

// Rejection bodies never name the rule or the reason
const (
	unauthorizedMessage = "Unauthorized"
	forbiddenMessage    = "Forbidden"
)

// TokenVerifier turns a bearer token into an identity
type TokenVerifier interface {
	Verify(token string) (auth.Identity, error)
}

// RouteClassifier decides whether a request needs an identity
type RouteClassifier interface {
	Classify(method, path string) auth.RouteDecision
}

// AccessPolicy decides whether an identity may perform a request
type AccessPolicy interface {
	Evaluate(identity auth.Identity, method, path string) auth.Decision
}

// AuthGate authenticates and authorizes every request before routing.
// It holds no mutable state and performs no I/O.
type AuthGate struct {
	verifier   TokenVerifier
	classifier RouteClassifier
	policy     AccessPolicy
	logger     *zap.Logger
}

// NewAuthGate creates a new AuthGate
func NewAuthGate(verifier TokenVerifier, classifier RouteClassifier, policy AccessPolicy, logger *zap.Logger) *AuthGate {
	return &AuthGate{
		verifier:   verifier,
		classifier: classifier,
		policy:     policy,
		logger:     logger,
	}
}

// Handler is the middleware entry point.
//
// Public routes proceed without an identity. Protected routes need a
// valid "Authorization: Bearer <token>" header (401 otherwise) and a
// policy grant (403 otherwise). On success the identity is attached to
// the request context.
func (g *AuthGate) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		requestID := GetRequestIDFromContext(ctx)
		method := r.Method
		path := routingPath(r)

		if g.classifier.Classify(method, path).IsPublic() {
			next.ServeHTTP(w, r)
			return
		}

		token, err := extractBearerToken(r)
		if err != nil {
			g.logger.Warn("authentication rejected",
				zap.String("request_id", requestID),
				zap.String("method", method),
				zap.String("path", path),
				zap.Error(err))
			_ = utils.WriteUnauthorized(w, unauthorizedMessage)
			return
		}

		identity, err := g.verifier.Verify(token)
		if err != nil {
			g.logger.Warn("token verification failed",
				zap.String("request_id", requestID),
				zap.String("method", method),
				zap.String("path", path),
				zap.Error(err))
			_ = utils.WriteUnauthorized(w, unauthorizedMessage)
			return
		}

		ctx = WithIdentity(ctx, identity)

		decision := g.policy.Evaluate(identity, method, path)
		if !decision.Allowed {
			g.logger.Warn("authorization denied",
				zap.String("request_id", requestID),
				zap.String("method", method),
				zap.String("path", path),
				zap.Int("subject_id", identity.SubjectID),
				zap.String("role", string(identity.Role)),
				zap.String("rule", decision.Rule))
			_ = utils.WriteForbidden(w, forbiddenMessage)
			return
		}

		ctx = WithRouteRule(ctx, decision.Rule)

		g.logger.Debug("request authorized",
			zap.String("request_id", requestID),
			zap.Int("subject_id", identity.SubjectID),
			zap.String("role", string(identity.Role)),
			zap.String("rule", decision.Rule))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// routingPath returns the path chi routes on, so the gate classifies
// exactly what the router will dispatch.
func routingPath(r *http.Request) string {
	if r.URL.RawPath != "" {
		return r.URL.RawPath
	}
	return r.URL.Path
}

// extractBearerToken returns the token from an "Authorization: Bearer <token>" header
func extractBearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", auth.ErrUnauthenticated
	}

	token, ok := strings.CutPrefix(header, bearerPrefix)
	if !ok || token == "" || strings.ContainsAny(token, " \t") {
		return "", auth.ErrMalformedHeader
	}
	return token, nil
}

