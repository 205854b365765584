package httpx

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/contratos/internal/access"
	"github.com/MrJamesThe3rd/contratos/internal/apperr"
)

var errUnauthenticated = errors.New("unauthenticated")

// Claims is the bearer token issued by the user administration module.
type Claims struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	RelationID string `json:"relation_id,omitempty"`
	jwt.RegisteredClaims
}

type actorKey struct{}

// ActorFrom returns the authenticated actor stored by Authenticate.
func ActorFrom(ctx context.Context) (access.Actor, bool) {
	a, ok := ctx.Value(actorKey{}).(access.Actor)
	return a, ok
}

func WithActor(ctx context.Context, a access.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, a)
}

// Authenticate verifies the HS256 bearer token and stores the actor it
// names in the request context.
func Authenticate(secret []byte, issuer string) func(http.Handler) http.Handler {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, err := actorFromRequest(r, parser, secret)
			if err != nil {
				JSON(w, http.StatusUnauthorized, errorResponse{Error: "token inválido o ausente", Kind: "unauthenticated"})
				return
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

func actorFromRequest(r *http.Request, parser *jwt.Parser, secret []byte) (access.Actor, error) {
	raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || raw == "" {
		return access.Actor{}, errUnauthenticated
	}

	var claims Claims

	if _, err := parser.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) { return secret, nil }); err != nil {
		return access.Actor{}, err
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return access.Actor{}, errUnauthenticated
	}

	actor := access.Actor{
		ID:    id,
		Name:  claims.Name,
		Email: claims.Email,
		Role:  access.Role(claims.Role),
	}

	if claims.RelationID != "" {
		rel, err := uuid.Parse(claims.RelationID)
		if err != nil {
			return access.Actor{}, errUnauthenticated
		}

		actor.RelationID = &rel
	}

	return actor, nil
}

// Actor returns the request's actor, writing 401 when there is none.
func Actor(w http.ResponseWriter, r *http.Request) (access.Actor, bool) {
	a, ok := ActorFrom(r.Context())
	if !ok {
		Error(w, r, apperr.New(apperr.Forbidden, "sesión no iniciada"))
	}

	return a, ok
}
