package identity

import (
	"context"
	"net/http"
	"strings"

	"github.com/gadisewa/backend/core"
	"github.com/gadisewa/backend/pkg/tenant"
)

type claimsKey struct{}

// ClaimsFromContext returns the authenticated principal's claims.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(*Claims)
	return c, ok && c != nil
}

// Authenticator verifies the bearer token and pins it to the request's
// resolved scope: a token issued for garage A is rejected on garage B's
// subdomain and on the platform surface, and a platform token is rejected
// on any garage subdomain. Scope mismatches look identical to a bad token.
func Authenticator(tokens *TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				core.Error(w, r, core.ErrUnauthorized)
				return
			}

			claims, err := tokens.Verify(raw)
			if err != nil {
				core.Error(w, r, core.ErrUnauthorized)
				return
			}

			tenantID, hasTenant := tenant.IDFromContext(r.Context())
			switch {
			case claims.GarageID == nil && hasTenant:
				core.Error(w, r, core.ErrUnauthorized)
				return
			case claims.GarageID != nil && (!hasTenant || *claims.GarageID != tenantID):
				core.Error(w, r, core.ErrUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
