package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/treasuryofflair/flairmarket/pkg/auth"
	"github.com/treasuryofflair/flairmarket/pkg/response"
)

// Identity is the authenticated seller attached to a request.
type Identity struct {
	ID    uint
	Name  string
	Email string
}

// Resolver confirms a token's subject still exists and returns the live
// identity. Tokens for deleted accounts must not pass.
type Resolver func(ctx context.Context, id uint) (Identity, bool)

type identityKey struct{}

// IdentityFromCtx returns the authenticated identity set by Auth.
func IdentityFromCtx(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// Auth validates the Bearer token and reloads the seller through resolve
// before letting the request through. A valid signature alone is not
// enough; the account must still exist.
func Auth(resolve Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				response.Unauthorized(w)
				return
			}
			token := strings.TrimPrefix(header, "Bearer ")
			if token == "" {
				response.Unauthorized(w)
				return
			}

			claims, err := auth.ValidateToken(token)
			if err != nil {
				response.Unauthorized(w)
				return
			}

			identity, ok := resolve(r.Context(), claims.SellerID)
			if !ok {
				response.Unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey{}, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
